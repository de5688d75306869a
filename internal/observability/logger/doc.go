// Package logger provides a singleton Zap logger with context-based scoping.
//
// Initialization (once, in main):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),   // "dev" or "prod"
//	    Level: os.Getenv("LOG_LEVEL"), // "debug", "info", "warn", "error"
//	})
//	defer logger.Sync()
//
// In components, with context:
//
//	log := logger.From(ctx)
//	log.Info("products seeded", logger.Count(n))
//
// Without context (falls back to the singleton):
//
//	logger.L().Info("harness started")
package logger
