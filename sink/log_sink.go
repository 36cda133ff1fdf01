package sink

import (
	"context"
	"log/slog"
	"wa-directory/domain/event"
)

// LogSink writes every directory event to the structured log.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.ContactUpdated:
		l.log.Info("Contact updated", "jid", evt.JID,
			"name_changed", evt.Name != nil,
			"status_changed", evt.Status != nil,
			"picture_changed", evt.ImgURL != nil)
	case event.ChatUpdated:
		l.log.Info("Chat updated", "jid", evt.JID, "picture_changed", evt.ImgURL != nil)
	case event.BlocklistUpdated:
		l.log.Info("Blocklist updated", "added", evt.Added, "removed", evt.Removed)
	default:
		l.log.Debug("Unhandled event", "kind", e.Kind())
	}
	return nil
}
