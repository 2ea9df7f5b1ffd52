package mongo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/mongocrud/pkg/logger"
)

// State is the lifecycle position of a Connector.
type State string

const (
	StateUnconnected State = "unconnected"
	StateConnecting  State = "connecting"
	StateConnected   State = "connected"
	StateClosed      State = "closed"
)

const connectKey = "connect"

// Connector owns at most one live Connection and hands it out on demand.
// It is safe for concurrent use.
type Connector struct {
	cfg    Config
	dial   Dialer
	logger *slog.Logger

	flight singleflight.Group

	mu         sync.Mutex
	conn       *Connection
	connecting bool
}

// NewConnector resolves cfg (explicit values over environment over defaults)
// and returns a Connector that has not dialed yet, unless WithDriver supplied
// an initial connection.
func NewConnector(cfg Config, opts ...Option) (*Connector, error) {
	o := &connectorOptions{
		dialer: Dial,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	resolved, err := ResolveConfig(cfg, o.environ)
	if err != nil {
		return nil, err
	}

	c := &Connector{
		cfg:    resolved,
		dial:   o.dialer,
		logger: o.logger.With(logger.Component("mongo.connector")),
	}
	if o.driver != nil {
		c.conn = newConnection(o.driver)
	}
	return c, nil
}

// Config returns the resolved configuration. It includes the password;
// log Config().Redacted() instead.
func (c *Connector) Config() Config {
	return c.cfg
}

// Connection returns the cached connection while it is alive, without any
// network activity. Otherwise it dials a replacement. Concurrent callers
// share a single in-flight dial. The dial is detached from every caller's
// cancellation and bounded by the driver's connect and server selection
// timeouts; each caller stops waiting when its own ctx is done. Dial errors
// are returned unchanged and nothing is retried.
func (c *Connector) Connection(ctx context.Context) (*Connection, error) {
	if conn := c.live(); conn != nil {
		return conn, nil
	}

	dialCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(connectKey, func() (any, error) {
		return c.connect(dialCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Connection), nil
	}
}

// State reports where the connector is in its lifecycle.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.connecting:
		return StateConnecting
	case c.conn == nil:
		return StateUnconnected
	case c.conn.IsConnected():
		return StateConnected
	default:
		return StateClosed
	}
}

// Close closes the cached connection, if any. The next Connection call dials again.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || !conn.IsConnected() {
		return nil
	}

	err := conn.Close(ctx)
	c.logger.InfoContext(ctx, "mongo connection closed",
		logger.ConnectionID(conn.ID()),
		logger.Error(err),
	)
	return err
}

func (c *Connector) live() *Connection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && c.conn.IsConnected() {
		return c.conn
	}
	return nil
}

func (c *Connector) connect(ctx context.Context) (*Connection, error) {
	c.mu.Lock()
	if c.conn != nil && c.conn.IsConnected() {
		conn := c.conn
		c.mu.Unlock()
		return conn, nil
	}
	previous := c.conn
	c.conn = nil
	c.connecting = true
	c.mu.Unlock()

	start := time.Now()
	driver, err := c.dial(ctx, c.cfg.URL, c.cfg.Options)
	if err == nil && driver == nil {
		err = ErrNilDriver
	}
	if err != nil {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()

		c.logger.ErrorContext(ctx, "mongo connect failed",
			logger.URL(RedactURL(c.cfg.URL)),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return nil, err
	}

	conn := newConnection(driver)

	c.mu.Lock()
	c.conn = conn
	c.connecting = false
	c.mu.Unlock()

	attrs := []any{
		logger.ConnectionID(conn.ID()),
		logger.URL(RedactURL(c.cfg.URL)),
		logger.Duration(time.Since(start)),
	}
	if previous != nil {
		attrs = append(attrs, slog.String("replaced_connection_id", previous.ID()))
	}
	c.logger.InfoContext(ctx, "mongo connected", attrs...)

	return conn, nil
}
