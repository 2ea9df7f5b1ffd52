package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mongocrud/pkg/crud"
	"github.com/dmitrymomot/mongocrud/pkg/logger"
	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

// app holds flag values and the lazily built dependencies shared by subcommands.
type app struct {
	database   string
	collection string
	url        string
	envFile    string
	logLevel   string
	logFormat  string

	// connector is built from flags and environment unless preset.
	connector *mongo.Connector
	logger    *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "mongocrud",
		Short:         "CRUD operations on a MongoDB collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.connector == nil {
				return nil
			}
			return a.connector.Close(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.database, "db", "d", "", "database name (defaults to DBNAME)")
	flags.StringVarP(&a.collection, "collection", "c", "", "collection name (required for document commands)")
	flags.StringVar(&a.url, "url", "", "connection string, overrides DBURL and DB* variables")
	flags.StringVar(&a.envFile, "env-file", "", "load environment variables from this file (default .env if present)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", string(logger.FormatText), "log format: json or text")

	root.AddCommand(
		newCreateCmd(a),
		newReadCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newPingCmd(a),
	)
	return root
}

func (a *app) setup() error {
	if a.logger == nil {
		l, err := newLogger(a.logLevel, a.logFormat)
		if err != nil {
			return err
		}
		a.logger = l
	}

	if a.connector != nil {
		return nil
	}

	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	if err := mongo.LoadEnv(files...); err != nil {
		return err
	}

	c, err := mongo.NewConnector(mongo.Config{URL: a.url}, mongo.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.connector = c
	return nil
}

// crud binds the selected database and collection. The database falls back
// to the resolved DBNAME.
func (a *app) crud() (*crud.CRUD, error) {
	database := a.database
	if database == "" {
		database = a.connector.Config().Database
	}
	return crud.New(database, a.collection,
		crud.WithConnector(a.connector),
		crud.WithLogger(a.logger),
	)
}

func newLogger(level, format string) (*slog.Logger, error) {
	l, err := logger.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	f, err := logger.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("--log-format: %w", err)
	}
	return logger.New(logger.WithLevel(l), logger.WithFormat(f)), nil
}
