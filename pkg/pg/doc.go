// Package pg bootstraps the shared PostgreSQL connection pool that backs the
// whole multi-tenant platform: pgx/v5 pool creation with startup retries,
// goose migrations for the shared (public) schema, a health-check closure,
// and error classification helpers.
//
// Only the shared schema is managed here. Per-tenant schemas are created and
// populated by the provision package, and per-query schema scoping lives in
// tenantdb. The helpers in errors.go give those packages (and application
// code) a uniform way to classify PostgreSQL failures:
//
//   - IsDuplicateKeyError    — unique violations (slug conflicts)
//   - IsUndefinedSchemaError — queries hitting a dropped tenant schema
//   - IsNotFoundError        — pgx.ErrNoRows
//
// Typical startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
