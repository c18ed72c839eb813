// Package tenantdb confines every query to the correct tenant schema while
// sharing one PostgreSQL connection pool across all tenants.
//
// # Why per-transaction scoping
//
// A connection checked out of the pool may have served a different tenant a
// moment ago and will serve another one next. Any session-level state left
// on it is a cross-tenant leak waiting to happen. This package therefore
// scopes each transaction, not each connection: a Handle wraps the caller's
// statements together with a SET LOCAL search_path in a single transaction,
// and SET LOCAL reverts automatically at transaction end.
//
// The pairing is enforced by construction. There is no way to obtain a
// connection from this package without going through a Handle, and no way
// to build a Handle without a schema target (a resolved tenant, the shared
// schema, or an explicit name via WithSchema).
//
// # Usage
//
//	db := tenantdb.New(pool)
//
//	// In a request handler, after tenant.Middleware has run:
//	h := db.ForRequest(r.Context())
//	products, err := tenantdb.QueryAll(r.Context(), h,
//		"SELECT id, name FROM products WHERE active", nil,
//		pgx.RowToStructByPos[Product])
//
// Queries against a deleted tenant fail with ErrTenantUnavailable; handlers
// should translate it into a 404 or 503 and must not retry partial reads.
package tenantdb
