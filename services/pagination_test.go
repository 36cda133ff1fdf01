package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"wa-directory/domain"
	dirErrors "wa-directory/errors"
	"wa-directory/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newPaginationService(t *testing.T, chats ...domain.ChatRecord) *DirectoryService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repository := repositories.NewChatRepository(db, slog.Default())
	for _, chat := range chats {
		require.NoError(t, repository.Upsert(context.Background(), chat))
	}
	return NewDirectoryService(slog.Default(), Dependencies{Chats: repository}, "")
}

func jids(chats []domain.ChatRecord) []domain.JID {
	return lo.Map(chats, func(c domain.ChatRecord, _ int) domain.JID { return c.JID })
}

func TestLoadChats_Two_Pages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service := newPaginationService(t,
		domain.ChatRecord{JID: "a", Timestamp: 1},
		domain.ChatRecord{JID: "b", Timestamp: 2},
		domain.ChatRecord{JID: "c", Timestamp: 3},
	)

	// When the first page is full
	first, err := service.LoadChats(ctx, 2, nil, domain.LoadChatsOptions{})

	// Then a cursor points at its last record
	req.NoError(err)
	req.Equal([]domain.JID{"a", "b"}, jids(first.Chats))
	req.NotNil(first.Cursor)
	req.Equal(domain.ChatOrderingKey(domain.ChatRecord{JID: "b", Timestamp: 2}), *first.Cursor)

	// When resuming from it
	second, err := service.LoadChats(ctx, 2, first.Cursor, domain.LoadChatsOptions{})

	// Then the partial page carries no cursor
	req.NoError(err)
	req.Equal([]domain.JID{"c"}, jids(second.Chats))
	req.Nil(second.Cursor)
}

func TestLoadChats_Chaining_Enumerates_Every_Record_Once(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	const n, k = 23, 5
	var chats []domain.ChatRecord
	var expected []domain.JID
	for i := 0; i < n; i++ {
		jid := domain.JID(fmt.Sprintf("%d@s.whatsapp.net", 1000+i))
		chats = append(chats, domain.ChatRecord{JID: jid, Timestamp: int64(i % 7)})
	}
	service := newPaginationService(t, chats...)
	for ts := int64(0); ts < 7; ts++ {
		for i := 0; i < n; i++ {
			if int64(i%7) == ts {
				expected = append(expected, chats[i].JID)
			}
		}
	}

	var seen []domain.JID
	var cursor *domain.Cursor
	calls := 0
	for {
		page, err := service.LoadChats(ctx, k, cursor, domain.LoadChatsOptions{})
		req.NoError(err)
		calls++
		seen = append(seen, jids(page.Chats)...)
		if page.Cursor == nil {
			req.Less(len(page.Chats), k)
			break
		}
		cursor = page.Cursor
	}

	req.Equal(expected, seen)
	req.Equal(n/k+1, calls)
}

func TestLoadChats_Filters(t *testing.T) {
	records := []domain.ChatRecord{
		{JID: "1@s.whatsapp.net", Name: "Alice Martin", Timestamp: 1},
		{JID: "2@s.whatsapp.net", Timestamp: 2},
		{JID: "3@g.us", Name: "ÉQUIPE foot", Timestamp: 3, Archived: true},
		{JID: "4@s.whatsapp.net", Name: "bob", Timestamp: 4, Pinned: true},
	}
	tests := []struct {
		name     string
		options  domain.LoadChatsOptions
		expected []domain.JID
	}{
		{name: "no filter", options: domain.LoadChatsOptions{}, expected: []domain.JID{"1@s.whatsapp.net", "2@s.whatsapp.net", "3@g.us", "4@s.whatsapp.net"}},
		{name: "search is case insensitive", options: domain.LoadChatsOptions{Search: "MARTIN"}, expected: []domain.JID{"1@s.whatsapp.net"}},
		{name: "search folds accents case", options: domain.LoadChatsOptions{Search: "équipe"}, expected: []domain.JID{"3@g.us"}},
		{name: "search matches identity", options: domain.LoadChatsOptions{Search: "g.us"}, expected: []domain.JID{"3@g.us"}},
		{name: "absent name only matches identity", options: domain.LoadChatsOptions{Search: "2@"}, expected: []domain.JID{"2@s.whatsapp.net"}},
		{name: "predicate alone", options: domain.LoadChatsOptions{Custom: func(c domain.ChatRecord) bool { return c.Archived || c.Pinned }}, expected: []domain.JID{"3@g.us", "4@s.whatsapp.net"}},
		{name: "predicate and search", options: domain.LoadChatsOptions{Search: "o", Custom: func(c domain.ChatRecord) bool { return c.Pinned }}, expected: []domain.JID{"4@s.whatsapp.net"}},
		{name: "nothing matches", options: domain.LoadChatsOptions{Search: "zzz"}, expected: []domain.JID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			service := newPaginationService(t, records...)

			page, err := service.LoadChats(context.Background(), 10, nil, tt.options)

			req.NoError(err)
			req.Equal(tt.expected, jids(page.Chats))
			req.Nil(page.Cursor)
		})
	}
}

func TestLoadChats_Empty_Collection(t *testing.T) {
	req := require.New(t)
	service := newPaginationService(t)

	page, err := service.LoadChats(context.Background(), 3, nil, domain.LoadChatsOptions{})

	req.NoError(err)
	req.Empty(page.Chats)
	req.Nil(page.Cursor)
}

func TestLoadChats_Rejects_Non_Positive_Count(t *testing.T) {
	req := require.New(t)
	service := newPaginationService(t)

	_, err := service.LoadChats(context.Background(), 0, nil, domain.LoadChatsOptions{})

	req.ErrorIs(err, dirErrors.ErrInvalidCount)
}

func TestChatFilter_Nil_When_Nothing_To_Filter(t *testing.T) {
	require.Nil(t, ChatFilter(domain.LoadChatsOptions{}))
}
