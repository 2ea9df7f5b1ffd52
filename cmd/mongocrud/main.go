// Command mongocrud runs create, read, update and delete operations against a
// MongoDB collection. Documents, queries and sort specs are MongoDB Extended
// JSON; results are printed as relaxed Extended JSON, one document per line.
//
// Connection settings come from DBURL or DBUSER, DBPASS, DBHOST, DBPORT,
// DBNAME and DBOPTS, optionally loaded from a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
