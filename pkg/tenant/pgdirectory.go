package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopkit/shopkit/pkg/pg"
)

// DBTX is the subset of pgxpool.Pool the directory needs. Queries run
// against the shared schema, so no search-path scoping is involved here.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGDirectory is the PostgreSQL-backed tenant directory, stored in the
// shared-schema tenants table created by the migrations.
type PGDirectory struct {
	db DBTX
}

// NewPGDirectory returns a Directory backed by db.
func NewPGDirectory(db DBTX) *PGDirectory {
	return &PGDirectory{db: db}
}

const tenantColumns = "id, slug, name, status, created_at, updated_at"

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("tenant directory: %w", err)
	}
	return &t, nil
}

func (d *PGDirectory) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	row := d.db.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE slug = lower($1)",
		strings.TrimSpace(slug))
	return scanTenant(row)
}

func (d *PGDirectory) FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	row := d.db.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id)
	return scanTenant(row)
}

func (d *PGDirectory) Create(ctx context.Context, slug, name string) (*Tenant, error) {
	row := d.db.QueryRow(ctx,
		"INSERT INTO tenants (slug, name, status) VALUES (lower($1), $2, $3) RETURNING "+tenantColumns,
		strings.TrimSpace(slug), name, StatusActive)

	var t Tenant
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		// The unique index on slug is what turns a provisioning race into
		// one winner and one conflict.
		if pg.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %q", ErrSlugTaken, slug)
		}
		return nil, fmt.Errorf("tenant directory: create: %w", err)
	}
	return &t, nil
}

func (d *PGDirectory) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	tag, err := d.db.Exec(ctx,
		"UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1", id, status)
	if err != nil {
		return fmt.Errorf("tenant directory: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (d *PGDirectory) Rename(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := d.db.Exec(ctx,
		"UPDATE tenants SET name = $2, updated_at = now() WHERE id = $1", id, name)
	if err != nil {
		return fmt.Errorf("tenant directory: rename: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (d *PGDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := d.db.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("tenant directory: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (d *PGDirectory) List(ctx context.Context, filter Filter) ([]*Tenant, error) {
	query := "SELECT " + tenantColumns + " FROM tenants"
	var args []any
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
		}
		query += " WHERE status = $1"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tenant directory: list: %w", err)
	}
	defer rows.Close()

	var tenants []*Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("tenant directory: list: %w", err)
		}
		tenants = append(tenants, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tenant directory: list: %w", err)
	}
	return tenants, nil
}
