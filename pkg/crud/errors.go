package crud

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by New for unusable construction arguments.
	ErrInvalidConfig = errors.New("invalid crud configuration")

	ErrMissingDatabase   = fmt.Errorf("%w: database name is required", ErrInvalidConfig)
	ErrMissingCollection = fmt.Errorf("%w: collection name is required", ErrInvalidConfig)

	ErrNilDocument          = errors.New("document is nil")
	ErrUnexpectedIdentifier = errors.New("document _id is not an ObjectID")
	ErrMissingIdentifier    = errors.New("target has no _id")
	ErrEmptyUpdate          = errors.New("update has no fields besides _id")
	ErrInvalidSkip          = errors.New("skip must not be negative")
	ErrInvalidLimit         = errors.New("limit must be positive")
	ErrUnsupportedTarget    = errors.New("unsupported target")
)
