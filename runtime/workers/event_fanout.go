package workers

import (
	"context"
	"log/slog"
	"time"
	"wa-directory/contract"
	"wa-directory/domain/event"
)

// EventFanout broadcasts directory events to in-process sinks.
//
// Emit hands an event over to the fan-out loop and only fails when the caller's
// context ends first, so an accepted event is never dropped. Each sink gets
// sinkTimeout to consume it; a slow or failing sink is logged and skipped.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, bufferSize int, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{
		log:         log,
		events:      make(chan event.DomainEvent, bufferSize),
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Emit(ctx context.Context, e event.DomainEvent) error {
	select {
	case w.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			// accepted events are delivered even if ctx ends meanwhile
			w.Fanout(context.WithoutCancel(ctx), evt)
		case <-ctx.Done():
			w.drain()
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout One sink after the other, in registration order
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event",
				"sink", contract.GetSinkName(sink),
				"kind", evt.Kind(),
				"error", err)
		}
		cancel()
	}
}

// drain delivers what was already accepted, with a fresh deadline per sink.
func (w *EventFanout) drain() {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(context.Background(), evt)
		default:
			return
		}
	}
}

// Backlog reports how many accepted events wait for delivery, out of the buffer size.
func (w *EventFanout) Backlog() (length, capacity int) {
	return len(w.events), cap(w.events)
}
