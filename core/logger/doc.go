// Package logger builds the zap logger shared by commands and services.
//
// Level "debug" selects zap's development preset; any other level uses the
// production preset with ISO8601 timestamps. Format "console" switches to
// the colored console encoder the CLI uses; anything else logs JSON.
//
// Services take a *zap.Logger and derive component loggers with Named.
// HTTP handlers add the request's ray id with WithRayID:
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	svc := catalog.NewService(store, parser, src, settings, logger.Named(log, "catalog"))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("Catalog request rejected", zap.Error(err))
package logger
