package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted by SocketIO.
const (
	EventSetColumns = "setColumns"
	EventClearRows  = "clearRows"
	EventAddRow     = "addRow"
)

// EmitFunc sends one event to the remote widget.
type EmitFunc func(event string, args ...any) error

// SocketIO forwards table updates as socket.io events.
type SocketIO struct {
	emit  EmitFunc
	close func()
}

// NewSocketIO returns a sink that sends every event through emit.
func NewSocketIO(emit EmitFunc) *SocketIO {
	return &SocketIO{emit: emit, close: func() {}}
}

// SocketIOOptions configures Dial.
type SocketIOOptions struct {
	Namespace          string
	InsecureSkipVerify bool
}

// Dial connects to a socket.io server at rawURL and waits until the
// connection is established or ctx is done.
func Dial(ctx context.Context, rawURL string, o SocketIOOptions) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	connected := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to table widget.", "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	io.Connect()

	select {
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection: %w", ctx.Err())
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to %s: %w", rawURL, err)
		}
	}

	return &SocketIO{
		emit: func(event string, args ...any) error {
			io.Emit(event, args...)
			return nil
		},
		close: func() {
			logger.Debug("Disconnecting socket client")
			io.Disconnect()
		},
	}, nil
}

func (s *SocketIO) SetColumns(labels []string) error {
	return s.send(EventSetColumns, labels)
}

func (s *SocketIO) ClearRows() error {
	return s.send(EventClearRows)
}

func (s *SocketIO) AddRow(values []string) error {
	return s.send(EventAddRow, values)
}

func (s *SocketIO) send(event string, args ...any) error {
	if err := s.emit(event, args...); err != nil {
		return fmt.Errorf("failed to emit %s: %w", event, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *SocketIO) Close() {
	s.close()
}
