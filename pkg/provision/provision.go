package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shopkit/shopkit/pkg/slug"
	"github.com/shopkit/shopkit/pkg/tenant"
	"github.com/shopkit/shopkit/pkg/tenantdb"
)

// Directory is the slice of the tenant registry the provisioner needs:
// registering the new tenant and removing it again when materializing the
// schema fails.
type Directory interface {
	Create(ctx context.Context, slug, name string) (*tenant.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Executor runs DDL for the provisioner. *tenantdb.DB satisfies it.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) error
	WithSchema(ctx context.Context, schema string, fn func(tenantdb.Execer) error) error
}

// Result describes a freshly provisioned tenant.
type Result struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	SchemaName string    `json:"schema_name"`
}

// Provisioner creates and destroys tenants: the directory row and the
// tenant schema together. Creating a tenant any other way leaves the two
// out of sync, which is why the directory's Create is only called here.
type Provisioner struct {
	dir Directory
	db  Executor
	log *slog.Logger
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithLogger sets the logger used for provisioning progress and
// compensation failures.
func WithLogger(log *slog.Logger) Option {
	return func(p *Provisioner) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Provisioner on top of the tenant directory and the shared
// database.
func New(dir Directory, db Executor, opts ...Option) *Provisioner {
	p := &Provisioner{
		dir: dir,
		db:  db,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provision registers a new tenant and materializes its schema.
//
// The two steps are not one database transaction (DDL interleaved with the
// directory insert would hold the directory lock for the whole schema
// build), so atomicity is achieved by compensation: if the schema cannot
// be fully built, the directory row is deleted again and the call fails
// with ErrProvisioningFailed carrying the cause. A directory row never
// outlives a failed provisioning attempt.
//
// Returns tenant.ErrInvalidSlug for malformed slugs and tenant.ErrSlugTaken
// when the slug is already registered; both are rejected before any state
// change. Concurrent calls with the same slug are settled by the
// directory's uniqueness constraint: exactly one wins.
func (p *Provisioner) Provision(ctx context.Context, rawSlug, name string) (*Result, error) {
	s := strings.ToLower(strings.TrimSpace(rawSlug))
	if !slug.IsValid(s) {
		return nil, fmt.Errorf("%w: %q", tenant.ErrInvalidSlug, rawSlug)
	}

	t, err := p.dir.Create(ctx, s, name)
	if err != nil {
		return nil, err
	}

	if err := p.materialize(ctx, t, name); err != nil {
		p.compensate(ctx, t)
		return nil, errors.Join(ErrProvisioningFailed, err)
	}

	p.log.InfoContext(ctx, "tenant provisioned",
		slog.String("tenant_id", t.ID.String()),
		slog.String("slug", t.Slug),
		slog.String("schema", t.SchemaName()))

	return &Result{ID: t.ID, Slug: t.Slug, SchemaName: t.SchemaName()}, nil
}

// materialize creates the tenant schema and everything inside it: tables
// in dependency order, their indexes, and the initial store settings row.
func (p *Provisioner) materialize(ctx context.Context, t *tenant.Tenant, name string) error {
	if err := validateTableOrder(tenantTables); err != nil {
		return err
	}

	schema := t.SchemaName()
	if err := p.db.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}

	return p.db.WithSchema(ctx, schema, func(ex tenantdb.Execer) error {
		for _, spec := range tenantTables {
			if _, err := ex.Exec(ctx, spec.createSQL()); err != nil {
				return fmt.Errorf("create table %s: %w", spec.name, err)
			}
		}
		for _, spec := range tenantTables {
			for _, stmt := range spec.indexSQL() {
				if _, err := ex.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("index %s: %w", spec.name, err)
				}
			}
		}
		if _, err := ex.Exec(ctx,
			"INSERT INTO store_settings (id, title, accent_color) VALUES (1, $1, $2)",
			defaultTitle(name, t.Slug), accentColorFor(t.Slug)); err != nil {
			return fmt.Errorf("default store settings: %w", err)
		}
		return nil
	})
}

// compensate rolls back a failed provisioning attempt: drop whatever part
// of the schema exists, then delete the directory row. Runs detached from
// the caller's cancellation, since a timeout mid-DDL must still trigger
// the rollback.
func (p *Provisioner) compensate(ctx context.Context, t *tenant.Tenant) {
	ctx = context.WithoutCancel(ctx)

	if err := p.db.Exec(ctx, "DROP SCHEMA IF EXISTS "+pgx.Identifier{t.SchemaName()}.Sanitize()+" CASCADE"); err != nil {
		p.log.ErrorContext(ctx, "failed to drop partially created schema",
			slog.String("schema", t.SchemaName()), slog.Any("error", err))
	}
	if err := p.dir.Delete(ctx, t.ID); err != nil {
		p.log.ErrorContext(ctx, "failed to delete directory row after provisioning failure",
			slog.String("tenant_id", t.ID.String()), slog.Any("error", err))
	}
}

// Deprovision removes a tenant: the directory row first, then the schema.
// The order matters. A schema without a directory row is an orphan that
// can be cleaned up at leisure; a directory row without a schema makes the
// tenant resolvable but unusable. Returns tenant.ErrTenantNotFound when no
// such tenant exists, and ErrDeprovisioningIncomplete when the row was
// removed but the schema drop failed.
func (p *Provisioner) Deprovision(ctx context.Context, id uuid.UUID) error {
	if err := p.dir.Delete(ctx, id); err != nil {
		return err
	}

	schema := tenant.SchemaNameForID(id)
	if err := p.db.Exec(context.WithoutCancel(ctx), "DROP SCHEMA IF EXISTS "+pgx.Identifier{schema}.Sanitize()+" CASCADE"); err != nil {
		p.log.ErrorContext(ctx, "tenant schema left orphaned",
			slog.String("tenant_id", id.String()), slog.String("schema", schema), slog.Any("error", err))
		return errors.Join(ErrDeprovisioningIncomplete, err)
	}

	p.log.InfoContext(ctx, "tenant deprovisioned",
		slog.String("tenant_id", id.String()), slog.String("schema", schema))
	return nil
}
