// Package tenant implements the tenant directory and request-time tenant
// resolution for the multi-tenant shop platform.
//
// # Architecture
//
// Three cooperating pieces:
//
//  1. Directory — the shared registry of tenant identities (slug, display
//     name, lifecycle status), backed by PostgreSQL via PGDirectory and
//     optionally decorated with caching via CachedDirectory.
//  2. Resolver — maps an inbound request's Host header and optional
//     override header to a tenant, with a reserved-label set for
//     infrastructure subdomains.
//  3. Middleware — runs the resolver per request and stores the result in
//     the request context for the data-access layer (tenantdb) to pick up.
//
// # Resolution strictness
//
// Resolution is intentionally asymmetric. An explicit override header must
// resolve or the request fails; a subdomain lookup that fails for any
// reason degrades to "no tenant" so that a directory outage cannot take
// down infrastructure domains. See Resolver for details.
//
// # Usage
//
//	dir := tenant.NewCachedDirectory(tenant.NewPGDirectory(pool), tenant.NewInMemoryCache(), 5*time.Minute)
//	resolver := tenant.NewResolver(dir)
//
//	router.Use(tenant.Middleware(resolver,
//		tenant.WithSkipPaths([]string{"/health"}),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// infrastructure-level request
//			return
//		}
//		_ = t.SchemaName()
//	}
package tenant
