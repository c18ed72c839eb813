// Package logger builds configured slog.Logger instances with environment
// presets and context-driven attribute injection.
//
// The factory wraps the chosen slog handler in a ContextHandler that runs
// registered extractors on every log call, so request-scoped values like the
// resolved tenant travel into log records without being threaded through
// every call site:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "shopkit"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
package logger
