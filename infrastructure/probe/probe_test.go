package probe

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"wa-directory/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestRedirectProber_Does_Not_Follow_Redirects(t *testing.T) {
	req := require.New(t)
	var followed atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/send/" {
			followed.Store(true)
			return
		}
		http.Redirect(w, r, "/send/?phone=33612345678", http.StatusFound)
	}))
	defer server.Close()
	prober := NewRedirectProber(logs.GetLoggerFromLevel(slog.LevelDebug), time.Second)

	result, err := prober.Probe(context.Background(), server.URL+"/33612345678")

	req.NoError(err)
	req.False(followed.Load())
	req.Equal(http.StatusFound, result.StatusCode)
	req.Equal("/send/?phone=33612345678", result.Location)
}

func TestRedirectProber_No_Location(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	prober := NewRedirectProber(slog.Default(), time.Second)

	result, err := prober.Probe(context.Background(), server.URL+"/1")

	req.NoError(err)
	req.Empty(result.Location)
	req.Equal(http.StatusOK, result.StatusCode)
}

func TestRedirectProber_Transport_Failure_Propagates(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()
	prober := NewRedirectProber(slog.Default(), 20*time.Millisecond)

	_, err := prober.Probe(context.Background(), server.URL+"/1")

	req.ErrorIs(err, errors.ErrProbeFailed)
}
