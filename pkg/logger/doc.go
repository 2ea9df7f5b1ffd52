// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers that keep key names consistent across the
// connector, the CRUD facade and the CLI.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("mongocrud"),
//	    logger.WithLevelName("debug"),
//	)
//	logger.SetAsDefault(log)
//
//	log.Debug("document inserted",
//	    logger.Database("app"),
//	    logger.Collection("users"),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithProduction / WithEnvironment: presets per environment.
//   - WithFormat: json or text.
//   - WithLevel / WithLevelName: minimum level.
//   - WithOutput: destination writer, stderr by default.
//   - WithAttr: static attributes on every record.
//
// Error returns an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
