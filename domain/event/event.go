// Package event defines the change notifications emitted by directory operations.
// Exactly one event is emitted per successful state-mutating call.
package event

import (
	"time"
	"wa-directory/domain"
)

type Kind string

const (
	ContactUpdate   Kind = "contact-update"
	ChatUpdate      Kind = "chat-update"
	BlocklistUpdate Kind = "blocklist-update"
)

type DomainEvent interface {
	Kind() Kind
	OccurredAt() time.Time
}

// ContactUpdated carries only the fields that changed, nil pointers are untouched fields.
type ContactUpdated struct {
	JID    domain.JID
	Name   *string
	Status *string
	ImgURL *string
	At     time.Time
}

func (ContactUpdated) Kind() Kind { return ContactUpdate }

func (c ContactUpdated) OccurredAt() time.Time { return c.At }

type ChatUpdated struct {
	JID    domain.JID
	ImgURL *string
	At     time.Time
}

func (ChatUpdated) Kind() Kind { return ChatUpdate }

func (c ChatUpdated) OccurredAt() time.Time { return c.At }

type BlocklistUpdated struct {
	Added   []domain.JID
	Removed []domain.JID
	At      time.Time
}

func (BlocklistUpdated) Kind() Kind { return BlocklistUpdate }

func (b BlocklistUpdated) OccurredAt() time.Time { return b.At }
