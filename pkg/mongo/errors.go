package mongo

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid mongo configuration")
	ErrFailedToConnect   = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
	ErrNilDriver         = errors.New("mongo dialer returned nil driver")
)
