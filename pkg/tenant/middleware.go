package tenant

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the tenant for every request and stores it in the
// request context. Requests that resolve to no tenant (bare domains,
// reserved subdomains, degraded lookups) pass through untenanted; handlers
// that need a tenant should sit behind RequireTenant.
//
// Resolution errors only occur for explicit overrides (the strict tier) and
// are turned into responses by the configured error handler.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		overrideHeader: DefaultOverrideHeader,
		errorHandler:   defaultErrorHandler,
		requireActive:  true,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			t, err := resolver.Resolve(r.Context(), r.Host, r.Header.Get(cfg.overrideHeader))
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if t == nil {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.requireActive && !t.IsActive() {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant refuses requests whose context holds no tenant. Mount it on
// storefront routes that are meaningless without one.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
