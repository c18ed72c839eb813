// Package httpserver wraps net/http's Server with graceful shutdown, signal
// handling, lifecycle hooks and a combined liveness/readiness health handler.
// It serves the storefront and admin routers assembled by the application.
package httpserver
