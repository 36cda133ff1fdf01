package domain

type SessionState string

const (
	SessionOpen       SessionState = "open"
	SessionConnecting SessionState = "connecting"
	SessionClosed     SessionState = "close"
)

// ProbeResult is what the unauthenticated redirect probe exposes of an HTTP answer.
type ProbeResult struct {
	URL        string
	StatusCode int
	Location   string
}
