package domain

import (
	"sync"
	"time"
)

// Profile is the cached identity of the logged-in account.
type Profile struct {
	mu     sync.RWMutex
	jid    JID
	name   string
	imgURL string
}

func NewProfile(jid JID, name string) *Profile {
	return &Profile{jid: jid, name: name}
}

func (p *Profile) JID() JID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.jid
}

func (p *Profile) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

func (p *Profile) ImgURL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.imgURL
}

func (p *Profile) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

func (p *Profile) SetImgURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.imgURL = url
}

// Existence is the outcome of a determined reachability check.
type Existence struct {
	Exists     bool
	JID        JID
	IsBusiness bool
}

type BusinessProfile struct {
	JID     JID
	Profile map[string]any
}

type Story struct {
	Unread   int
	Count    int
	Messages []any
}

type PresenceType string

const (
	PresenceAvailable   PresenceType = "available"
	PresenceComposing   PresenceType = "composing"
	PresenceRecording   PresenceType = "recording"
	PresencePaused      PresenceType = "paused"
	PresenceUnavailable PresenceType = "unavailable"
)

type BlockAction string

const (
	BlockAdd    BlockAction = "add"
	BlockRemove BlockAction = "remove"
)

// Contact is the cached directory entry of another user.
type Contact struct {
	JID       JID
	Name      string
	Status    string
	ImgURL    string
	UpdatedAt time.Time
}
