package workers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
	"wa-directory/domain"
	"wa-directory/domain/event"
	"wa-directory/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Delivers_To_Every_Sink_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	evt := event.BlocklistUpdated{Added: []domain.JID{"x@s.whatsapp.net"}}

	done := make(chan struct{})
	gomock.InOrder(
		first.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1),
		second.EXPECT().Consume(gomock.Any(), evt).DoAndReturn(
			func(ctx context.Context, e event.DomainEvent) error {
				close(done)
				return nil
			}).Times(1),
	)

	fanout := NewEventFanout(log, 1, time.Second, first, second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fanout.Run(ctx) }()

	// When an event is emitted
	req.NoError(fanout.Emit(ctx, evt))

	// Then both sinks consumed it
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("event was not fanned out in time")
	}
}

func TestEventFanout_Failing_Sink_Does_Not_Block_Others(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)
	evt := event.ChatUpdated{JID: "a@s.whatsapp.net"}

	failing.EXPECT().Consume(gomock.Any(), evt).Return(errors.New("disk full")).Times(1)
	healthy.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	fanout := NewEventFanout(slog.Default(), 1, time.Second, failing, healthy)
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_Sink_Timeout(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slow := mocks.NewMockEventSink(ctrl)
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e event.DomainEvent) error {
			<-ctx.Done() // Waiting for timeout to trigger cancellation
			return ctx.Err()
		}).Times(1)

	fanout := NewEventFanout(slog.Default(), 1, 20*time.Millisecond, slow)

	start := time.Now()
	fanout.Fanout(context.Background(), event.ContactUpdated{JID: "a@s.whatsapp.net"})
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Emit_Respects_Caller_Context(t *testing.T) {
	req := require.New(t)

	// Given a full buffer and nobody running the loop
	fanout := NewEventFanout(slog.Default(), 1, time.Second)
	req.NoError(fanout.Emit(context.Background(), event.ChatUpdated{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := fanout.Emit(ctx, event.ChatUpdated{})

	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestEventFanout_Drains_Accepted_Events_On_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventSink(ctrl)
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	fanout := NewEventFanout(slog.Default(), 2, time.Second, sink)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fanout.Emit(ctx, event.ChatUpdated{JID: "a"}))
	require.NoError(t, fanout.Emit(ctx, event.ChatUpdated{JID: "b"}))
	cancel()

	require.NoError(t, fanout.Run(ctx))
}
