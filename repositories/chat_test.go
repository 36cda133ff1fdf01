package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"wa-directory/domain"
	dirErrors "wa-directory/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedChats(t *testing.T, repository *ChatRepository, chats ...domain.ChatRecord) {
	t.Helper()
	for _, chat := range chats {
		require.NoError(t, repository.Upsert(context.Background(), chat))
	}
}

func TestChatRepository_Paginated_Walks_Ordering_Key(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default())

	// Given chats inserted out of order
	seedChats(t, repository,
		domain.ChatRecord{JID: "c", Timestamp: 3},
		domain.ChatRecord{JID: "a", Timestamp: 1},
		domain.ChatRecord{JID: "b", Timestamp: 2},
	)

	// When reading the first page
	page1, err := repository.Paginated(ctx, nil, 2, nil)
	req.NoError(err)
	req.Equal([]domain.JID{"a", "b"}, jids(page1))

	// Then resuming after the last key returns the rest
	cursor := domain.ChatOrderingKey(page1[1])
	page2, err := repository.Paginated(ctx, &cursor, 2, nil)
	req.NoError(err)
	req.Equal([]domain.JID{"c"}, jids(page2))
}

func TestChatRepository_Paginated_Applies_Predicate_Before_Counting(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default())
	for i := 1; i <= 10; i++ {
		seedChats(t, repository, domain.ChatRecord{
			JID:       domain.JID(fmt.Sprintf("%d@s.whatsapp.net", i)),
			Name:      fmt.Sprintf("user_%d", i),
			Timestamp: int64(i),
		})
	}
	even := func(chat domain.ChatRecord) bool { return chat.Timestamp%2 == 0 }

	page, err := repository.Paginated(ctx, nil, 3, even)

	req.NoError(err)
	req.Equal([]string{"user_2", "user_4", "user_6"}, names(page))
}

func TestChatRepository_Paginated_Empty_Collection(t *testing.T) {
	req := require.New(t)
	repository := NewChatRepository(openDB(t), slog.Default())

	page, err := repository.Paginated(context.Background(), nil, 5, nil)

	req.NoError(err)
	req.Empty(page)
}

func TestChatRepository_Paginated_Cursor_Of_Removed_Position(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default())
	seedChats(t, repository,
		domain.ChatRecord{JID: "a", Timestamp: 1},
		domain.ChatRecord{JID: "b", Timestamp: 2},
		domain.ChatRecord{JID: "c", Timestamp: 3},
	)
	cursor := domain.ChatOrderingKey(domain.ChatRecord{JID: "b", Timestamp: 2})

	// Given b moved to the end of the collection
	seedChats(t, repository, domain.ChatRecord{JID: "b", Timestamp: 4})

	// Then resuming from its old position neither repeats a nor skips c
	page, err := repository.Paginated(ctx, &cursor, 10, nil)
	req.NoError(err)
	req.Equal([]domain.JID{"c", "b"}, jids(page))
}

func TestChatRepository_Upsert_Moves_And_Get(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default())
	seedChats(t, repository, domain.ChatRecord{JID: "a", Name: "Alice", Timestamp: 1})

	seedChats(t, repository, domain.ChatRecord{JID: "a", Name: "Alice B.", Timestamp: 9, Unread: 2})

	chat, found, err := repository.Get(ctx, "a")
	req.NoError(err)
	req.True(found)
	req.Equal(domain.ChatRecord{JID: "a", Name: "Alice B.", Timestamp: 9, Unread: 2}, chat)

	all, err := repository.Paginated(ctx, nil, 10, nil)
	req.NoError(err)
	req.Len(all, 1)

	_, found, err = repository.Get(ctx, "unknown")
	req.NoError(err)
	req.False(found)
}

func TestChatRepository_UpdateImage(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default())
	seedChats(t, repository, domain.ChatRecord{JID: "a", Timestamp: 1, Pinned: true})

	req.NoError(repository.UpdateImage(ctx, "a", "https://pps.example/a.jpg"))

	chat, _, err := repository.Get(ctx, "a")
	req.NoError(err)
	req.Equal("https://pps.example/a.jpg", chat.ImgURL)
	req.True(chat.Pinned)

	err = repository.UpdateImage(ctx, "missing", "x")
	req.ErrorIs(err, dirErrors.ErrChatNotFound)
}

func jids(chats []domain.ChatRecord) []domain.JID {
	out := make([]domain.JID, 0, len(chats))
	for _, chat := range chats {
		out = append(out, chat.JID)
	}
	return out
}

func names(chats []domain.ChatRecord) []string {
	out := make([]string, 0, len(chats))
	for _, chat := range chats {
		out = append(out, strings.TrimSpace(chat.Name))
	}
	return out
}
