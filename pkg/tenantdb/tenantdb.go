package tenantdb

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit/shopkit/pkg/tenant"
)

// SharedSchema is the schema holding cross-tenant data: the tenant
// directory and platform-level settings.
const SharedSchema = "public"

// Execer is the statement-execution surface handed to WithSchema callbacks.
// pgx.Tx satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// beginner abstracts pgxpool.Pool's transaction entry point for testing.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB wraps the shared connection pool and hands out schema-bound Handles.
//
// Connections are pooled and reused across tenants, so the schema scoping
// cannot live on the connection: a Handle scopes each transaction instead,
// pairing a SET LOCAL search_path with the caller's statements inside one
// transaction. SET LOCAL reverts at transaction end, so a narrowing can
// never leak to the next request that borrows the same connection.
//
// A Handle is the only way to run queries through this package, and a
// Handle cannot be constructed without a schema target; that makes the
// narrow-then-query pairing structural rather than a calling convention.
type DB struct {
	pool beginner
}

// New wraps the shared pgx pool.
func New(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Scoped returns a Handle confined to the tenant's schema.
func (db *DB) Scoped(t *tenant.Tenant) *Handle {
	return &Handle{db: db, schema: t.SchemaName()}
}

// Shared returns a Handle confined to the shared schema.
func (db *DB) Shared() *Handle {
	return &Handle{db: db, schema: SharedSchema}
}

// ForRequest returns a Handle for the tenant resolved on the request
// context, or a shared-schema Handle for infrastructure-level requests.
func (db *DB) ForRequest(ctx context.Context) *Handle {
	if t, ok := tenant.FromContext(ctx); ok {
		return db.Scoped(t)
	}
	return db.Shared()
}

// Exec runs a single statement against the shared schema.
func (db *DB) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := db.Shared().Exec(ctx, sql, args...)
	return err
}

// schemaNamePattern matches names safe to use as unquoted identifiers.
// Generated tenant schema names (tenant_<uuid with underscores>) always
// match; WithSchema refuses anything else rather than relying on quoting.
var schemaNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// WithSchema runs fn with the search path narrowed to an explicitly named
// schema, inside one transaction. This bypasses request-context resolution
// and exists for provisioning and migration tooling; request handling goes
// through Scoped/ForRequest.
func (db *DB) WithSchema(ctx context.Context, schema string, fn func(Execer) error) error {
	if !schemaNamePattern.MatchString(schema) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schema)
	}
	h := &Handle{db: db, schema: schema, skipExistsCheck: true}
	return h.Tx(ctx, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// quoteIdent returns the schema name as a quoted identifier for embedding
// in the SET LOCAL statement, which cannot take bind parameters.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
