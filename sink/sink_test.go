package sink

import (
	"context"
	"log/slog"
	"testing"
	"time"
	"wa-directory/domain"
	"wa-directory/domain/event"
	"wa-directory/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestContactSink_Applies_Contact_Updates_Only(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := repositories.NewContactRepository(openDB(t), slog.Default())
	sink := NewContactSink(repository)
	jid := domain.JID("33612345678@s.whatsapp.net")

	req.NoError(sink.Consume(ctx, event.ChatUpdated{JID: jid, ImgURL: lo.ToPtr("ignored")}))
	_, found, err := repository.GetContact(ctx, jid)
	req.NoError(err)
	req.False(found)

	req.NoError(sink.Consume(ctx, event.ContactUpdated{JID: jid, Status: lo.ToPtr("at work"), At: time.Now()}))
	contact, found, err := repository.GetContact(ctx, jid)
	req.NoError(err)
	req.True(found)
	req.Equal("at work", contact.Status)
}

func TestBlocklistSink_Persists_Snapshot(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := repositories.NewBlocklistRepository(openDB(t))
	blocklist := domain.NewBlocklist("a@s.whatsapp.net")
	sink := NewBlocklistSink(blocklist, repository)

	// Given the shared list changed
	blocklist.Add("b@s.whatsapp.net")

	// When the change is notified
	req.NoError(sink.Consume(ctx, event.BlocklistUpdated{Added: []domain.JID{"b@s.whatsapp.net"}}))

	// Then the snapshot is stored in order
	stored, err := repository.Load(ctx)
	req.NoError(err)
	req.Equal([]domain.JID{"a@s.whatsapp.net", "b@s.whatsapp.net"}, stored)
}

func TestLogSink_Never_Fails(t *testing.T) {
	sink := NewLogSink(slog.Default())
	require.NoError(t, sink.Consume(context.Background(), event.BlocklistUpdated{}))
	require.NoError(t, sink.Consume(context.Background(), event.ContactUpdated{Name: lo.ToPtr("n")}))
}
