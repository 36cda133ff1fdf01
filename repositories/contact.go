package repositories

import (
	"context"
	"errors"
	"log/slog"
	"wa-directory/domain"
	"wa-directory/domain/event"

	"github.com/dgraph-io/badger/v4"
)

const contactPrefix = "contact:"

type IContactRepository interface {
	GetContact(ctx context.Context, jid domain.JID) (domain.Contact, bool, error)
	ApplyUpdate(ctx context.Context, update event.ContactUpdated) (domain.Contact, error)
}

// ContactRepository caches what the directory learnt about contacts.
type ContactRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewContactRepository(db *badger.DB, log *slog.Logger) *ContactRepository {
	return &ContactRepository{db: db, log: log}
}

func (r *ContactRepository) GetContact(ctx context.Context, jid domain.JID) (domain.Contact, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contact{}, false, err
	}
	var contact domain.Contact
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		contact, found, err = getContact(txn, jid)
		return err
	})
	return contact, found, err
}

// ApplyUpdate merges the changed fields of update into the cached contact,
// creating it on first sight.
func (r *ContactRepository) ApplyUpdate(ctx context.Context, update event.ContactUpdated) (domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contact{}, err
	}
	var contact domain.Contact
	err := r.db.Update(func(txn *badger.Txn) error {
		current, _, err := getContact(txn, update.JID)
		if err != nil {
			return err
		}
		current.JID = update.JID
		if update.Name != nil {
			current.Name = *update.Name
		}
		if update.Status != nil {
			current.Status = *update.Status
		}
		if update.ImgURL != nil {
			current.ImgURL = *update.ImgURL
		}
		current.UpdatedAt = update.At.UTC()
		data, err := encodeContact(current)
		if err != nil {
			return err
		}
		contact = current
		return txn.Set([]byte(contactPrefix+string(update.JID)), data)
	})
	return contact, err
}

func getContact(txn *badger.Txn, jid domain.JID) (domain.Contact, bool, error) {
	item, err := txn.Get([]byte(contactPrefix + string(jid)))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Contact{}, false, nil
	}
	if err != nil {
		return domain.Contact{}, false, err
	}
	var contact domain.Contact
	err = item.Value(func(val []byte) error {
		contact, err = decodeContact(val)
		return err
	})
	return contact, err == nil, err
}
