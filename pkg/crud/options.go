package crud

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

// DefaultLimit caps query reads when no Limit option is given.
const DefaultLimit int64 = 100

// Option configures a CRUD facade.
type Option func(*crudOptions)

type crudOptions struct {
	connector *mongo.Connector
	logger    *slog.Logger
}

// WithConnector shares an existing connector. Without it New builds one from
// the process environment.
func WithConnector(c *mongo.Connector) Option {
	return func(o *crudOptions) {
		if c != nil {
			o.connector = c
		}
	}
}

// WithLogger sets the logger for operation events.
func WithLogger(l *slog.Logger) Option {
	return func(o *crudOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// ReadOption tunes query reads. Identifier reads ignore it.
type ReadOption func(*readOptions)

type readOptions struct {
	skip  int64
	limit int64
	sort  bson.D
}

func defaultReadOptions() readOptions {
	return readOptions{limit: DefaultLimit}
}

func (o readOptions) validate() error {
	if o.skip < 0 {
		return ErrInvalidSkip
	}
	if o.limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// Skip drops the first n matches.
func Skip(n int64) ReadOption {
	return func(o *readOptions) { o.skip = n }
}

// Limit returns at most n matches.
func Limit(n int64) ReadOption {
	return func(o *readOptions) { o.limit = n }
}

// Sort orders matches by fields in order, 1 ascending and -1 descending.
func Sort(fields bson.D) ReadOption {
	return func(o *readOptions) { o.sort = fields }
}
