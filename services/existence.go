package services

import (
	"context"
	"net/url"
	"strings"
	"wa-directory/domain"
)

// sendPathSuffix is where the public redirect lands for a registered number.
// Unregistered numbers are sent elsewhere. This is a heuristic on the upstream
// redirect format, not a guarantee.
const sendPathSuffix = "send/"

// OnWhatsApp reports whether str names a reachable directory entry.
// The bool is false when existence could not be determined, which is not an error.
// A live session answers through an authenticated query, otherwise the public
// redirect probe is used; both paths return the same shape.
func (s *DirectoryService) OnWhatsApp(ctx context.Context, str string) (domain.Existence, bool, error) {
	if s.session.State() != domain.SessionOpen {
		return s.OnWhatsAppNoConn(ctx, str)
	}
	response, err := s.gateway.Query(ctx, domain.Request{
		Payload:             []any{"query", "exist", str},
		RequiresLiveSession: false,
	})
	if err != nil {
		return domain.Existence{}, false, err
	}
	if !response.OK() {
		return domain.Existence{}, false, nil
	}
	return domain.Existence{
		Exists:     true,
		JID:        domain.WhatsAppID(response.String("jid")),
		IsBusiness: response.Bool("biz"),
	}, true, nil
}

// OnWhatsAppNoConn checks existence without a session by probing the public
// redirect endpoint with the phone part of str.
func (s *DirectoryService) OnWhatsAppNoConn(ctx context.Context, str string) (domain.Existence, bool, error) {
	phone := domain.PhonePart(str)
	probeURL := strings.TrimRight(s.probeBaseURL, "/") + "/" + url.PathEscape(phone)

	result, err := s.prober.Probe(ctx, probeURL)
	if err != nil {
		return domain.Existence{}, false, err
	}
	if result.Location == "" {
		s.log.Warn("did not get location from request", "url", probeURL, "status", result.StatusCode)
		return domain.Existence{}, false, nil
	}
	location, err := resolveLocation(probeURL, result.Location)
	if err != nil {
		s.log.Warn("unreadable location from request", "url", probeURL, "location", result.Location, "error", err)
		return domain.Existence{}, false, nil
	}
	if !strings.HasSuffix(location.Path, sendPathSuffix) {
		return domain.Existence{}, false, nil
	}
	phone = location.Query().Get("phone")
	if phone == "" {
		s.log.Warn("redirect carries no phone", "url", probeURL, "location", result.Location)
		return domain.Existence{}, false, nil
	}
	return domain.Existence{
		Exists: true,
		JID:    domain.JID(phone + "@" + domain.UserServer),
	}, true, nil
}

// resolveLocation accepts absolute as well as relative redirect targets.
func resolveLocation(requestURL, location string) (*url.URL, error) {
	base, err := url.Parse(requestURL)
	if err != nil {
		return nil, err
	}
	return base.Parse(location)
}
