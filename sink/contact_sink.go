package sink

import (
	"context"
	"wa-directory/domain/event"
	"wa-directory/repositories"
)

// ContactSink keeps the contact cache in line with contact-update events.
type ContactSink struct {
	repository repositories.IContactRepository
}

func NewContactSink(repository repositories.IContactRepository) ContactSink {
	return ContactSink{repository: repository}
}

func (c ContactSink) Consume(ctx context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.ContactUpdated)
	if !ok {
		return nil
	}
	_, err := c.repository.ApplyUpdate(ctx, evt)
	return err
}
