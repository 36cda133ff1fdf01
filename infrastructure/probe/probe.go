package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"wa-directory/domain"
	"wa-directory/errors"
)

// RedirectProber performs single GET requests and reports the redirect they answer
// with, without following it.
type RedirectProber struct {
	client *http.Client
	log    *slog.Logger
}

// NewRedirectProber builds a prober whose requests give up after timeout.
// A zero timeout leaves the deadline to the caller's context.
func NewRedirectProber(log *slog.Logger, timeout time.Duration) *RedirectProber {
	return &RedirectProber{
		log: log,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (p *RedirectProber) Probe(ctx context.Context, url string) (domain.ProbeResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProbeResult{}, fmt.Errorf("%w: %v", errors.ErrProbeFailed, err)
	}
	response, err := p.client.Do(request)
	if err != nil {
		return domain.ProbeResult{}, fmt.Errorf("%w: %w", errors.ErrProbeFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 64<<10))
		_ = response.Body.Close()
	}()
	p.log.Debug("Probe answered", "url", url, "status", response.StatusCode)
	return domain.ProbeResult{
		URL:        url,
		StatusCode: response.StatusCode,
		Location:   response.Header.Get("Location"),
	}, nil
}
