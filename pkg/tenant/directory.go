package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows directory listings.
type Filter struct {
	// Status limits results to tenants in the given state; empty means all.
	Status Status
}

// Directory is the shared registry of tenant identities. It lives in the
// shared schema and never touches tenant schemas; creating or deleting the
// schema that belongs to a directory row is the provisioner's job, which is
// why Create must only be called from the provisioning flow.
type Directory interface {
	// FindBySlug returns the tenant with the given slug (matched
	// case-insensitively) or ErrTenantNotFound.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByID returns the tenant with the given ID or ErrTenantNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// Create registers a new tenant with status active. Returns ErrSlugTaken
	// if the slug is already registered; under concurrent calls with the
	// same slug exactly one succeeds.
	Create(ctx context.Context, slug, name string) (*Tenant, error)

	// UpdateStatus moves a tenant to a new lifecycle state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// Rename changes the tenant's display name. The slug is immutable.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes the directory row. Callers must have dropped (or be
	// about to drop) the tenant's schema; a row without a schema is invalid.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns tenants matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Tenant, error)
}
