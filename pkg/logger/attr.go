package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Database records the database name under the key "database".
func Database(name string) slog.Attr {
	return slog.String("database", name)
}

// Collection records the collection name under the key "collection".
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Operation records the store operation under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Count records an affected-documents count under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// ConnectionID records the connection identifier under the key "connection_id".
// If id is empty, it returns an empty Attr.
func ConnectionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("connection_id", id)
}

// URL records a connection string under the key "url". Callers pass redacted URLs.
func URL(u string) slog.Attr {
	return slog.String("url", u)
}
