// Package logger provides a singleton Zap logger with context-based scoping.
//
// Initialization (once, in main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: os.Getenv("LOG_LEVEL")})
//	defer logger.Sync()
//
// In handlers/services, with request scoping:
//
//	log := logger.From(ctx)
//	log.Info("organization switched", logger.UserID(uid), logger.OrgID(orgID))
//
// "dev" renders colored console output, "prod" renders JSON.
package logger
