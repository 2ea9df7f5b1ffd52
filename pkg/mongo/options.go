package mongo

import "log/slog"

// Option configures a Connector.
type Option func(*connectorOptions)

type connectorOptions struct {
	dialer  Dialer
	driver  Driver
	environ map[string]string
	logger  *slog.Logger
}

// WithDialer replaces Dial, e.g. to add driver monitors or to stub the store in tests.
func WithDialer(d Dialer) Option {
	return func(o *connectorOptions) {
		if d != nil {
			o.dialer = d
		}
	}
}

// WithDriver adopts an already connected driver as the initial connection.
// Once that connection is closed the connector dials its configured URL.
//
// Liveness is tracked by the Connection, not the driver: disconnecting the
// adopted client directly goes unnoticed and the connector keeps handing out
// the stale connection. Close it through Connection.Close or Connector.Close.
func WithDriver(d Driver) Option {
	return func(o *connectorOptions) {
		o.driver = d
	}
}

// WithEnvironment resolves configuration against env instead of the process environment.
func WithEnvironment(env map[string]string) Option {
	return func(o *connectorOptions) {
		o.environ = env
	}
}

// WithLogger sets the logger for connection lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *connectorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
