package services

import (
	"context"
	"errors"
	"testing"
	"wa-directory/domain"
	dirErrors "wa-directory/errors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOnWhatsApp_Live_Session_Registered_Number(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given a live session answering 200 with a legacy server suffix
	f.session.EXPECT().State().Return(domain.SessionOpen)
	f.gateway.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.Request) (domain.Response, error) {
			req.Equal([]any{"query", "exist", "33612345678"}, r.Payload)
			req.False(r.RequiresLiveSession)
			return domain.Response{Status: 200, Fields: map[string]any{
				"jid": "33612345678@c.us",
				"biz": true,
			}}, nil
		})

	// When
	existence, determined, err := f.service.OnWhatsApp(context.Background(), "33612345678")

	// Then
	req.NoError(err)
	req.True(determined)
	req.Equal(domain.Existence{Exists: true, JID: "33612345678@s.whatsapp.net", IsBusiness: true}, existence)
}

func TestOnWhatsApp_Live_Session_Non_200_Is_Not_Determined(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.session.EXPECT().State().Return(domain.SessionOpen)
	f.gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Response{Status: 404}, nil)

	existence, determined, err := f.service.OnWhatsApp(context.Background(), "33612345678")

	req.NoError(err)
	req.False(determined)
	req.Equal(domain.Existence{}, existence)
}

func TestOnWhatsApp_Live_Session_Transport_Error_Propagates(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	boom := errors.New("socket closed")

	f.session.EXPECT().State().Return(domain.SessionOpen)
	f.gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Response{}, boom)

	_, determined, err := f.service.OnWhatsApp(context.Background(), "33612345678")

	req.ErrorIs(err, boom)
	req.False(determined)
}

// The redirect format of the public endpoint is a heuristic: a landing path
// ending in "send/" with a phone parameter means the number is registered.
func TestOnWhatsApp_Without_Session_Uses_Redirect_Heuristic(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given no live session
	f.session.EXPECT().State().Return(domain.SessionConnecting)
	f.prober.EXPECT().Probe(gomock.Any(), "https://wa.test/33612345678").
		Return(domain.ProbeResult{
			URL:        "https://wa.test/33612345678",
			StatusCode: 302,
			Location:   "https://api.wa.test/send/?phone=33612345678&text&type=phone_number",
		}, nil)

	// When
	existence, determined, err := f.service.OnWhatsApp(context.Background(), "33612345678@s.whatsapp.net")

	// Then the gateway is never touched and the probe answered
	req.NoError(err)
	req.True(determined)
	req.Equal(domain.Existence{Exists: true, JID: "33612345678@s.whatsapp.net"}, existence)
}

func TestOnWhatsAppNoConn_Relative_Location_Is_Resolved(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).
		Return(domain.ProbeResult{StatusCode: 302, Location: "/send/?phone=4915123456"}, nil)

	existence, determined, err := f.service.OnWhatsAppNoConn(context.Background(), "4915123456")

	req.NoError(err)
	req.True(determined)
	req.Equal(domain.JID("4915123456@s.whatsapp.net"), existence.JID)
}

func TestOnWhatsAppNoConn_Not_Determined(t *testing.T) {
	tests := []struct {
		name   string
		result domain.ProbeResult
	}{
		{name: "no location", result: domain.ProbeResult{StatusCode: 200}},
		{name: "other landing path", result: domain.ProbeResult{StatusCode: 302, Location: "https://www.wa.test/"}},
		{name: "send path without phone", result: domain.ProbeResult{StatusCode: 302, Location: "https://api.wa.test/send/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)
			f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(tt.result, nil)

			existence, determined, err := f.service.OnWhatsAppNoConn(context.Background(), "33612345678")

			req.NoError(err)
			req.False(determined)
			req.Equal(domain.Existence{}, existence)
		})
	}
}

func TestOnWhatsAppNoConn_Probe_Failure_Propagates(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).
		Return(domain.ProbeResult{}, dirErrors.ErrProbeFailed)

	_, determined, err := f.service.OnWhatsAppNoConn(context.Background(), "33612345678")

	req.ErrorIs(err, dirErrors.ErrProbeFailed)
	req.False(determined)
}
