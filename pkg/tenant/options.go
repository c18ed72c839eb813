package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// DefaultOverrideHeader carries an explicit tenant slug that takes priority
// over subdomain resolution. Used by tests and API-to-API calls.
const DefaultOverrideHeader = "X-Tenant-Slug"

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	overrideHeader string
	errorHandler   ErrorHandler
	skipPaths      []string
	requireActive  bool
	logger         *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithOverrideHeader changes the header used for explicit tenant overrides.
func WithOverrideHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.overrideHeader = name
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely
// (health checks, metrics, static assets).
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithRequireActive controls whether blocked and pending tenants are
// refused. Enabled by default.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// WithLogger sets the middleware logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidSlug):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
