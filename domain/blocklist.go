package domain

import (
	"sync"

	"github.com/samber/lo"
)

// Blocklist is the process-wide ordered list of blocked identities.
// Holders share one instance by reference.
type Blocklist struct {
	mu   sync.RWMutex
	jids []JID
}

func NewBlocklist(jids ...JID) *Blocklist {
	return &Blocklist{jids: lo.Uniq(jids)}
}

// Add appends jid unless it is already blocked. It reports whether the list changed.
func (b *Blocklist) Add(jid JID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if lo.Contains(b.jids, jid) {
		return false
	}
	b.jids = append(b.jids, jid)
	return true
}

// Remove drops jid from the list. It reports whether the list changed.
func (b *Blocklist) Remove(jid JID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	index := lo.IndexOf(b.jids, jid)
	if index == -1 {
		return false
	}
	b.jids = append(b.jids[:index], b.jids[index+1:]...)
	return true
}

func (b *Blocklist) Contains(jid JID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lo.Contains(b.jids, jid)
}

// List returns a copy in insertion order.
func (b *Blocklist) List() []JID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]JID, len(b.jids))
	copy(out, b.jids)
	return out
}

func (b *Blocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.jids)
}
