package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"wa-directory/domain"
	dirErrors "wa-directory/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	chatPrefix      = "chat:"
	chatIndexPrefix = "chatidx:"
)

// ChatRepository is the ordered chat collection, kept in BadgerDB.
// A chat lives under "chat:{ordering key}" so that a prefix scan walks the
// collection in ordering key order; "chatidx:{jid}" points to that key.
type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChatRepository(db *badger.DB, log *slog.Logger) *ChatRepository {
	return &ChatRepository{db: db, log: log}
}

// Paginated returns up to count chats accepted by predicate, starting strictly
// after before. A nil predicate accepts every chat.
func (r *ChatRepository) Paginated(ctx context.Context, before *domain.Cursor,
	count int, predicate domain.ChatPredicate) ([]domain.ChatRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var chats []domain.ChatRecord
	if count <= 0 {
		return chats, nil
	}
	prefix := []byte(chatPrefix)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := prefix
		if before != nil {
			seekKey = []byte(chatPrefix + string(*before))
		}
		it.Seek(seekKey)
		if before != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix) && len(chats) < count; it.Next() {
			var chat domain.ChatRecord
			err := it.Item().Value(func(val []byte) error {
				var err error
				chat, err = decodeChat(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("chat %s: %w", it.Item().Key(), err)
			}
			if predicate == nil || predicate(chat) {
				chats = append(chats, chat)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *ChatRepository) Get(ctx context.Context, jid domain.JID) (domain.ChatRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatRecord{}, false, err
	}
	var chat domain.ChatRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		chat, err = getChat(txn, jid)
		return err
	})
	if errors.Is(err, dirErrors.ErrChatNotFound) {
		return domain.ChatRecord{}, false, nil
	}
	if err != nil {
		return domain.ChatRecord{}, false, err
	}
	return chat, true, nil
}

// UpdateImage changes the image reference of a stored chat, leaving its position untouched.
func (r *ChatRepository) UpdateImage(ctx context.Context, jid domain.JID, imgURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		chat, err := getChat(txn, jid)
		if err != nil {
			return err
		}
		chat.ImgURL = imgURL
		data, err := encodeChat(chat)
		if err != nil {
			return err
		}
		return txn.Set(chatKey(chat), data)
	})
}

// Upsert stores chat, moving it when its ordering key changed.
func (r *ChatRepository) Upsert(ctx context.Context, chat domain.ChatRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeChat(chat)
	if err != nil {
		return err
	}
	newKey := chatKey(chat)
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(chatIndexKey(chat.JID))
		switch {
		case err == nil:
			oldKey, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if string(oldKey) != string(newKey) {
				if err = txn.Delete(oldKey); err != nil {
					return err
				}
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		if err = txn.Set(newKey, data); err != nil {
			return err
		}
		return txn.Set(chatIndexKey(chat.JID), newKey)
	})
}

func getChat(txn *badger.Txn, jid domain.JID) (domain.ChatRecord, error) {
	item, err := txn.Get(chatIndexKey(jid))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ChatRecord{}, dirErrors.ErrChatNotFound
	}
	if err != nil {
		return domain.ChatRecord{}, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return domain.ChatRecord{}, err
	}
	item, err = txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ChatRecord{}, dirErrors.ErrChatNotFound
	}
	if err != nil {
		return domain.ChatRecord{}, err
	}
	var chat domain.ChatRecord
	err = item.Value(func(val []byte) error {
		chat, err = decodeChat(val)
		return err
	})
	return chat, err
}

func chatKey(chat domain.ChatRecord) []byte {
	return []byte(chatPrefix + string(domain.ChatOrderingKey(chat)))
}

func chatIndexKey(jid domain.JID) []byte {
	return []byte(chatIndexPrefix + string(jid))
}
