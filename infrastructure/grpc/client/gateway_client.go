package client

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"
	"wa-directory/domain"
	"wa-directory/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/protobuf/types/known/structpb"
)

// QueryMethod is the unary method of the session gateway. Requests and
// responses travel as google.protobuf.Struct.
const QueryMethod = "/session.v1.SessionGateway/Query"

// DefaultWakeTimeout bounds how long State waits for an idle link to reconnect.
const DefaultWakeTimeout = 2 * time.Second

// link is the connectivity surface of a *grpc.ClientConn.
type link interface {
	GetState() connectivity.State
	Connect()
	WaitForStateChange(ctx context.Context, source connectivity.State) bool
}

// GatewayClient reaches the process that owns the authenticated session.
// It is both the query gateway and the view of the session state.
type GatewayClient struct {
	conn        grpc.ClientConnInterface
	link        link
	wakeTimeout time.Duration
	self        *domain.Profile
	epoch       atomic.Int64
	log         *slog.Logger
}

func NewGatewayClient(log *slog.Logger, conn *grpc.ClientConn, self *domain.Profile, wakeTimeout time.Duration) *GatewayClient {
	return &GatewayClient{conn: conn, link: conn, wakeTimeout: wakeTimeout, self: self, log: log}
}

// State maps the connectivity of the gateway link to the session state.
// A link that went idle after its idle timeout is woken up first, so a
// reachable gateway is not reported as down.
func (c *GatewayClient) State() domain.SessionState {
	state := c.link.GetState()
	if state == connectivity.Idle {
		state = c.wake()
	}
	switch state {
	case connectivity.Ready:
		return domain.SessionOpen
	case connectivity.Idle, connectivity.Connecting:
		return domain.SessionConnecting
	default:
		return domain.SessionClosed
	}
}

func (c *GatewayClient) wake() connectivity.State {
	c.link.Connect()
	ctx, cancel := context.WithTimeout(context.Background(), c.wakeTimeout)
	defer cancel()
	state := c.link.GetState()
	for state == connectivity.Idle || state == connectivity.Connecting {
		if !c.link.WaitForStateChange(ctx, state) {
			break
		}
		state = c.link.GetState()
	}
	c.log.Debug("Gateway link woken up", "state", state.String())
	return state
}

func (c *GatewayClient) Self() *domain.Profile {
	return c.self
}

func (c *GatewayClient) NextEpoch() string {
	return strconv.FormatInt(c.epoch.Add(1), 10)
}

func (c *GatewayClient) Query(ctx context.Context, request domain.Request) (domain.Response, error) {
	if request.RequiresLiveSession && c.State() != domain.SessionOpen {
		return domain.Response{}, errors.ErrSessionNotOpen
	}
	in, err := toStruct(request)
	if err != nil {
		return domain.Response{}, err
	}
	out := &structpb.Struct{}
	if err = c.conn.Invoke(ctx, QueryMethod, in, out); err != nil {
		c.log.Debug("Gateway query failed", "error", err)
		return domain.Response{}, err
	}
	response := fromStruct(out)
	if request.ExpectSuccess && !response.OK() {
		return response, fmt.Errorf("%w: %d", errors.ErrUnexpectedStatus, response.Status)
	}
	return response, nil
}

func toStruct(request domain.Request) (*structpb.Struct, error) {
	fields := map[string]any{
		"payload":               request.Payload,
		"requires_live_session": request.RequiresLiveSession,
		"expect_success":        request.ExpectSuccess,
		"binary":                request.Binary,
	}
	if request.MessageTag != "" {
		fields["tag"] = request.MessageTag
	}
	if request.Tags != nil {
		fields["tags"] = map[string]any{
			"metric": int(request.Tags.Metric),
			"flag":   int(request.Tags.Flag),
		}
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return in, nil
}

func fromStruct(out *structpb.Struct) domain.Response {
	values := out.GetFields()
	response := domain.Response{
		Status: int(values["status"].GetNumberValue()),
		Fields: values["fields"].GetStructValue().AsMap(),
	}
	if content := values["content"].GetListValue(); content != nil {
		response.Content = content.AsSlice()
	}
	return response
}
