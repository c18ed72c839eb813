package tenantdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopkit/shopkit/pkg/pg"
)

// Handle is a schema-bound entry point to the shared pool. Every operation
// on it runs as one transaction of the form [narrow search path, caller's
// statements, commit]; the two halves can never run as independent
// operations on a pooled connection.
type Handle struct {
	db     *DB
	schema string

	// skipExistsCheck disables the schema existence probe; set for
	// WithSchema, whose callers (the provisioner) create the schema inside
	// the same transaction.
	skipExistsCheck bool
}

// Schema returns the schema this handle is confined to.
func (h *Handle) Schema() string {
	return h.schema
}

// Tx runs fn inside a transaction whose search path is narrowed to the
// handle's schema. The narrowing is transaction-local (SET LOCAL) and
// reverts on commit or rollback, so pooled connections are always returned
// with the default search path.
//
// Failure to obtain a connection, narrow the path, or find the schema is
// reported as ErrTenantUnavailable with the cause attached.
func (h *Handle) Tx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := h.db.pool.Begin(ctx)
	if err != nil {
		return errors.Join(ErrTenantUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.narrow(ctx, tx); err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		// A 3F000 here means the schema vanished between the existence
		// probe and the statement (tenant deleted mid-request).
		if pg.IsUndefinedSchemaError(err) {
			return errors.Join(ErrTenantUnavailable, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tenantdb: commit: %w", err)
	}
	return nil
}

// narrow restricts the transaction's search path to the handle's schema.
// SET LOCAL accepts names of schemas that do not exist without complaint,
// so tenant-scoped handles additionally probe pg_namespace inside the same
// transaction to turn a deleted tenant into ErrTenantUnavailable instead
// of a confusing undefined-table error.
func (h *Handle) narrow(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "SET LOCAL search_path TO "+quoteIdent(h.schema)); err != nil {
		return errors.Join(ErrTenantUnavailable, err)
	}

	if h.schema == SharedSchema || h.skipExistsCheck {
		return nil
	}

	var one int
	err := tx.QueryRow(ctx,
		"SELECT 1 FROM pg_catalog.pg_namespace WHERE nspname = $1", h.schema).Scan(&one)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return fmt.Errorf("%w: schema %q does not exist", ErrTenantUnavailable, h.schema)
		}
		return errors.Join(ErrTenantUnavailable, err)
	}
	return nil
}

// Exec runs a single statement confined to the handle's schema.
func (h *Handle) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := h.Tx(ctx, func(tx pgx.Tx) error {
		var err error
		tag, err = tx.Exec(ctx, sql, args...)
		return err
	})
	return tag, err
}

// QueryOne runs a single-row query confined to the handle's schema and
// scans the row with scan. Returns pgx.ErrNoRows (wrapped) when the query
// matches nothing.
func QueryOne[T any](ctx context.Context, h *Handle, sql string, args []any, scan pgx.RowToFunc[T]) (T, error) {
	var out T
	err := h.Tx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, scan)
		return err
	})
	return out, err
}

// QueryAll runs a multi-row query confined to the handle's schema and
// collects the rows with scan.
func QueryAll[T any](ctx context.Context, h *Handle, sql string, args []any, scan pgx.RowToFunc[T]) ([]T, error) {
	var out []T
	err := h.Tx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scan)
		return err
	})
	return out, err
}
