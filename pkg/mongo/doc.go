// Package mongo resolves MongoDB connection settings and hands out a single,
// memoized connection through a Connector.
//
// Key features:
//   - Layered configuration: explicit Config fields, then DBUSER, DBPASS,
//     DBHOST, DBPORT, DBNAME, DBOPTS and DBURL, then hard defaults
//     (localhost:27017, database admin).
//   - BuildURL derives the connection string when none is given, percent-encoding
//     credentials.
//   - Connector.Connection returns the same *Connection while it is alive and
//     dials a replacement once it has been closed. Concurrent first callers share
//     one dial.
//   - Healthcheck wraps the connector for readiness checks.
//   - Errors are compatible with errors.Is; driver causes stay reachable.
//
// # Usage
//
//	import (
//		"context"
//		"github.com/dmitrymomot/mongocrud/pkg/mongo"
//	)
//
//	func main() {
//		_ = mongo.LoadEnv()
//
//		connector, err := mongo.NewConnector(mongo.Config{Host: "db.internal"})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer connector.Close(context.Background())
//
//		conn, err := connector.Connection(context.Background())
//		if err != nil {
//			log.Fatal(err)
//		}
//		users := conn.Collection("app", "users")
//		_ = users
//	}
//
// # Configuration
//
// DBOPTS holds relaxed MongoDB Extended JSON with connection string option
// names, for example
//
//	DBOPTS='{"appName":"billing","maxPoolSize":20,"retryWrites":false}'
//
// DefaultClientOptions are overlaid field by field with Config.Options when any
// of its fields is set, and with DBOPTS otherwise; DBOPTS is then not parsed at
// all. The same holds for DBPORT and Config.Port. Keys this package does not
// know are ignored.
//
// # Connection lifecycle
//
// A Connector moves through unconnected, connecting, connected and closed.
// Closing either the Connection or the Connector moves it to closed; the next
// Connection call dials again. No retry or backoff is applied: a failed dial is
// reported to every caller waiting on it and the connector returns to
// unconnected.
//
// # See Also
//
// Documentation for the official driver: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2.
package mongo
