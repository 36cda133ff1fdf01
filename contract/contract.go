//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"wa-directory/domain"
	"wa-directory/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging during supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	return typeName(w)
}

func GetSinkName(s EventSink) string {
	if s == nil {
		return "NilSink"
	}
	return typeName(s)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// QueryGateway executes structured requests against the authenticated session.
// Transport failures are returned as errors. A non-200 status is returned as data
// unless the request sets ExpectSuccess.
type QueryGateway interface {
	Query(ctx context.Context, request domain.Request) (domain.Response, error)
}

// Session exposes the connection state the directory needs to pick a resolution path.
type Session interface {
	State() domain.SessionState
	Self() *domain.Profile
	// NextEpoch returns the message counter stamped on action frames.
	NextEpoch() string
}

// Prober issues the unauthenticated GET used when no session is live.
// Redirects must not be followed.
type Prober interface {
	Probe(ctx context.Context, url string) (domain.ProbeResult, error)
}

// ChatStore is the ordered chat collection.
type ChatStore interface {
	// Paginated returns up to count chats matching predicate, in ordering key order,
	// starting strictly after before (or from the start when before is nil).
	Paginated(ctx context.Context, before *domain.Cursor, count int, predicate domain.ChatPredicate) ([]domain.ChatRecord, error)
	Get(ctx context.Context, jid domain.JID) (domain.ChatRecord, bool, error)
	UpdateImage(ctx context.Context, jid domain.JID, imgURL string) error
	Upsert(ctx context.Context, chat domain.ChatRecord) error
}

// Notifier delivers change events to whoever listens.
type Notifier interface {
	Emit(ctx context.Context, e event.DomainEvent) error
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}
