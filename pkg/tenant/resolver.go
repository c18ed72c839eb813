package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopkit/shopkit/pkg/logger"
)

// DefaultReservedLabels are subdomain labels that belong to the platform
// itself and are never tenant slugs: root-site aliases, admin-panel aliases
// and health/dev aliases.
var DefaultReservedLabels = []string{
	"www", "shop",
	"admin", "panel",
	"api", "health", "status",
	"dev", "staging", "localhost",
}

// Resolver maps an inbound request's host header and optional explicit
// override to a tenant via the directory.
//
// Resolution is deliberately two-tier:
//
//   - An explicit override must always resolve; any failure is returned to
//     the caller. Overrides come from tests and API-to-API calls where a
//     silent fallback would hide bugs.
//   - A subdomain lookup degrades to "no tenant" on any failure, including
//     directory outages. Infrastructure subdomains must stay reachable even
//     when the directory is down, so this path logs and continues instead
//     of failing the request. Do not tighten this into a hard failure.
type Resolver struct {
	dir      Directory
	reserved map[string]struct{}
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithReservedLabels replaces the default reserved label set.
func WithReservedLabels(labels ...string) ResolverOption {
	return func(r *Resolver) {
		r.reserved = make(map[string]struct{}, len(labels))
		for _, l := range labels {
			r.reserved[strings.ToLower(l)] = struct{}{}
		}
	}
}

// WithResolverLogger sets the logger used for degraded subdomain lookups.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver returns a Resolver backed by dir with the default reserved
// label set.
func NewResolver(dir Directory, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		dir: dir,
		log: slog.Default(),
	}
	WithReservedLabels(DefaultReservedLabels...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve derives the tenant for a request. Priority order, first match wins:
//
//  1. A non-empty override slug is looked up strictly; a miss or directory
//     failure is returned as an error.
//  2. A host with fewer than three labels carries no subdomain and resolves
//     to no tenant.
//  3. A reserved leftmost label resolves to no tenant regardless of
//     directory contents.
//  4. The leftmost label is looked up as a slug; failures degrade to no
//     tenant and are logged.
//
// A (nil, nil) return means the request is infrastructure-level: no tenant,
// no error.
func (r *Resolver) Resolve(ctx context.Context, host, override string) (*Tenant, error) {
	if override = strings.TrimSpace(override); override != "" {
		t, err := r.dir.FindBySlug(ctx, override)
		if err != nil {
			return nil, fmt.Errorf("resolve tenant override %q: %w", override, err)
		}
		return t, nil
	}

	label, ok := r.subdomainLabel(host)
	if !ok {
		return nil, nil
	}

	t, err := r.dir.FindBySlug(ctx, label)
	if err != nil {
		// Availability over strictness: a directory outage must not take
		// down infrastructure subdomains, so the request proceeds untenanted.
		r.log.WarnContext(ctx, "tenant resolution degraded to no tenant",
			logger.Host(host), logger.Slug(label), logger.Error(err))
		return nil, nil
	}
	return t, nil
}

// subdomainLabel extracts the leftmost host label when it is a tenant slug
// candidate. It returns ok=false for bare domains, empty labels and
// reserved infrastructure names.
func (r *Resolver) subdomainLabel(host string) (string, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	labels := strings.Split(host, ".")
	// Fewer than three labels means a bare domain like "example.com":
	// infrastructure-level, no tenant.
	if len(labels) < 3 {
		return "", false
	}

	label := labels[0]
	if label == "" {
		return "", false
	}
	if _, reserved := r.reserved[label]; reserved {
		return "", false
	}
	return label, true
}
