package domain

import "strconv"

const StatusOK = 200

// Metric and Flag are the two binary tags the session prefixes encoded frames with.
type Metric int

type Flag int

const (
	MetricQueryChat    Metric = 5
	MetricQueryContact Metric = 6
	MetricPresence     Metric = 8
	MetricPicture      Metric = 14
	MetricStatus       Metric = 15
	MetricBlock        Metric = 18
	MetricQueryStatus  Metric = 30
)

const (
	FlagPaused      Flag = 1 << 2
	FlagComposing   Flag = 1 << 2
	FlagRecording   Flag = 1 << 2
	FlagExpires     Flag = 1 << 3
	FlagUnavailable Flag = 1 << 4
	FlagAcknowledge Flag = 1 << 6
	FlagIgnore      Flag = 1 << 7
	FlagOther       Flag = 136
	FlagAvailable   Flag = 160
)

// PresenceFlag returns the flag the session expects for a presence frame.
func PresenceFlag(presence PresenceType) Flag {
	switch presence {
	case PresenceAvailable:
		return FlagAvailable
	case PresenceUnavailable:
		return FlagUnavailable
	default:
		return FlagComposing
	}
}

type BinaryTags struct {
	Metric Metric
	Flag   Flag
}

// Node is one element of a structured payload: [tag, attrs, content].
type Node struct {
	Tag     string
	Attrs   map[string]any
	Content any
}

// Tuple flattens the node, and its child nodes, into the array form of a payload.
func (n Node) Tuple() []any {
	var attrs any
	if n.Attrs != nil {
		attrs = n.Attrs
	}
	switch content := n.Content.(type) {
	case []Node:
		children := make([]any, 0, len(content))
		for _, child := range content {
			children = append(children, child.Tuple())
		}
		return []any{n.Tag, attrs, children}
	case Node:
		return []any{n.Tag, attrs, []any{content.Tuple()}}
	default:
		return []any{n.Tag, attrs, content}
	}
}

// Request is what the directory hands to the query gateway.
type Request struct {
	Payload             []any
	Tags                *BinaryTags
	MessageTag          string
	RequiresLiveSession bool
	// ExpectSuccess makes the gateway fail with ErrUnexpectedStatus on a non-200 status.
	ExpectSuccess bool
	// Binary sends the payload as an encoded frame and does not wait for a status.
	Binary bool
}

// Response is the gateway's structured answer. Fields carries the object form,
// Content the array form some queries answer with.
type Response struct {
	Status  int
	Fields  map[string]any
	Content []any
}

func (r Response) OK() bool { return r.Status == StatusOK }

func (r Response) String(key string) string {
	switch v := r.Fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (r Response) Bool(key string) bool {
	switch v := r.Fields[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Slice returns a list field, or nil when absent or not a list.
func (r Response) Slice(key string) []any {
	v, _ := r.Fields[key].([]any)
	return v
}
