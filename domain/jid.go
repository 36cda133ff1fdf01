package domain

import (
	"strings"
)

// JID names a user, group or broadcast list in the directory.
// Only the canonical form produced by NormalizeJID is used as a cache or lock key.
type JID string

const (
	UserServer      = "s.whatsapp.net"
	LegacyServer    = "c.us"
	GroupServer     = "g.us"
	BroadcastServer = "broadcast"
)

func (j JID) String() string { return string(j) }

// User returns the part before the first '@', or the whole value when there is none.
func (j JID) User() string {
	user, _, _ := strings.Cut(string(j), "@")
	return user
}

// Server returns the part after the first '@', empty when there is none.
func (j JID) Server() string {
	_, server, _ := strings.Cut(string(j), "@")
	return server
}

func (j JID) IsGroup() bool { return j.Server() == GroupServer }

func (j JID) IsBroadcast() bool { return j.Server() == BroadcastServer }

// PhonePart extracts the raw identifier before the first '@'.
// Malformed input without a separator is returned whole.
func PhonePart(str string) string {
	return JID(str).User()
}

// WhatsAppID rewrites the legacy user suffix to the canonical one.
func WhatsAppID(jid string) JID {
	return JID(strings.Replace(jid, "@"+LegacyServer, "@"+UserServer, 1))
}

// WithLegacyServer swaps the canonical user suffix for the legacy one,
// as some queries still expect it.
func WithLegacyServer(jid JID) string {
	return strings.Replace(string(jid), "@"+UserServer, "@"+LegacyServer, 1)
}

// NormalizeJID canonicalizes a phone number or identifier.
// A bare phone number ("+33 6 12-34-56-78") becomes "33612345678@s.whatsapp.net",
// the server part is lowercased and the legacy suffix is rewritten.
func NormalizeJID(raw string) (JID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	user, server, hasServer := strings.Cut(raw, "@")
	if !hasServer {
		phone := digitsOnly(user)
		if phone == "" {
			return "", false
		}
		return JID(phone + "@" + UserServer), true
	}
	server = strings.ToLower(strings.TrimSpace(server))
	user = strings.TrimSpace(user)
	if user == "" || server == "" {
		return "", false
	}
	switch server {
	case LegacyServer:
		server = UserServer
	case UserServer:
	default:
		return JID(user + "@" + server), true
	}
	phone := digitsOnly(user)
	if phone == "" {
		return "", false
	}
	return JID(phone + "@" + server), true
}

// digitsOnly drops the formatting characters people put in phone numbers.
// Anything that is neither a digit nor a known separator invalidates the input.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return ""
		}
	}
	return b.String()
}
