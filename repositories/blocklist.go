package repositories

import (
	"context"
	"errors"
	"wa-directory/domain"

	"github.com/dgraph-io/badger/v4"
)

const blocklistKey = "blocklist"

type IBlocklistRepository interface {
	Load(ctx context.Context) ([]domain.JID, error)
	Save(ctx context.Context, jids []domain.JID) error
}

// BlocklistRepository keeps the last known blocklist snapshot, in order.
type BlocklistRepository struct {
	db *badger.DB
}

func NewBlocklistRepository(db *badger.DB) *BlocklistRepository {
	return &BlocklistRepository{db: db}
}

func (r *BlocklistRepository) Load(ctx context.Context) ([]domain.JID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var jids []domain.JID
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(blocklistKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			jids, err = decodeJIDs(val)
			return err
		})
	})
	return jids, err
}

func (r *BlocklistRepository) Save(ctx context.Context, jids []domain.JID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeJIDs(jids)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(blocklistKey), data)
	})
}
