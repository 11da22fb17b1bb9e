// Package telemetry mirrors schedule events onto a socket.io endpoint, one
// event per gate once a kernel's schedule is final, for a live dashboard
// watching a long-running scheduling service. It has no functional role in scheduling — a run proceeds
// identically whether or not a Sink is attached.
//
// Grounded on the teacher's modules/socketio_client (connect/Once("connect")
// handshake over a channel) and modules/socketio_request (Emit with an
// encoded payload); qsched encodes the payload with msgpack instead of the
// teacher's cty.Value/JSON shape, since the schedule-event wire format here
// is a fixed Go struct rather than an HCL-driven dynamic value.
package telemetry

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/qsched/internal/ctxlog"
	"github.com/vk/qsched/internal/gate"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is one gate's final cycle assignment, mirrored to the dashboard
// after its kernel has been scheduled.
type Event struct {
	Kernel string `msgpack:"kernel"`
	Name   string `msgpack:"name"`
	Kind   string `msgpack:"kind"`
	Cycle  int    `msgpack:"cycle"`
}

// eventName is the socket.io event the mirror emits schedule commits on.
const eventName = "qsched.gate_committed"

// Sink publishes schedule events to a connected socket.io endpoint.
type Sink struct {
	client *socket.Socket
}

// Dial connects to a socket.io endpoint at rawURL and returns a Sink ready
// to publish events, mirroring the teacher's connect/Once("connect") /
// Once("connect_error") handshake over a channel.
func Dial(ctx context.Context, rawURL string, insecureSkipVerify bool) (*Sink, error) {
	logger := ctxlog.FromContext(ctx).With("component", "telemetry", "url", rawURL)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("telemetry: parsing url: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if insecureSkipVerify {
		logger.Warn("skipping TLS certificate verification for telemetry sink")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connected := make(chan error, 1)
	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("telemetry sink connected", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		connected <- err
	})

	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("telemetry: connect failed: %w", err)
		}
		return &Sink{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("telemetry: context cancelled while connecting: %w", ctx.Err())
	case <-time.After(15 * time.Second):
		io.Disconnect()
		return nil, fmt.Errorf("telemetry: timed out waiting for connection")
	}
}

// Publish encodes and emits one gate's commit. It never fails scheduling:
// an encoding failure is logged and the event dropped, and the outcome of
// the emit itself is not checked, matching this package's stated
// no-functional-role-in-scheduling contract.
func (s *Sink) Publish(ctx context.Context, kernel string, g *gate.Gate) {
	logger := ctxlog.FromContext(ctx).With("component", "telemetry")

	payload, err := msgpack.Marshal(Event{Kernel: kernel, Name: g.Name, Kind: g.Kind.String(), Cycle: g.Cycle})
	if err != nil {
		logger.Error("failed to encode schedule event", "error", err)
		return
	}
	s.client.Emit(eventName, payload)
}

// Close disconnects the underlying socket.io client.
func (s *Sink) Close() error {
	s.client.Disconnect()
	return nil
}
