package mongo

import (
	"context"
	"errors"
)

// Healthcheck returns a function suitable for readiness checks. It resolves
// the connector's current connection (dialing if needed) and pings it.
func Healthcheck(c *Connector) func(context.Context) error {
	return func(ctx context.Context) error {
		conn, err := c.Connection(ctx)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
