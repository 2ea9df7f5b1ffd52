package mongo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Connection is a live handle handed out by a Connector. Callers may compare
// pointers: while it stays connected the Connector returns the same value.
type Connection struct {
	id          string
	driver      Driver
	connectedAt time.Time
	closed      atomic.Bool
}

func newConnection(driver Driver) *Connection {
	return &Connection{
		id:          uuid.NewString(),
		driver:      driver,
		connectedAt: time.Now(),
	}
}

// ID uniquely identifies this connection for logs.
func (c *Connection) ID() string { return c.id }

// ConnectedAt reports when the connection was established.
func (c *Connection) ConnectedAt() time.Time { return c.connectedAt }

// IsConnected reports liveness without touching the network. It only turns
// false through Close; a driver disconnected elsewhere still reports true.
func (c *Connection) IsConnected() bool { return !c.closed.Load() }

// Collection returns a handle for database.collection.
func (c *Connection) Collection(database, collection string) Collection {
	return c.driver.Collection(database, collection)
}

// Ping round-trips to the deployment.
func (c *Connection) Ping(ctx context.Context) error {
	return c.driver.Ping(ctx)
}

// Close disconnects the underlying driver. Only the first call disconnects;
// later calls return nil.
func (c *Connection) Close(ctx context.Context) error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.driver.Disconnect(ctx)
}
