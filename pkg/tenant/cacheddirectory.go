package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CachedDirectory decorates a Directory with slug-keyed caching. Reads go
// through the cache; every mutation invalidates the affected slug so that a
// blocked or deleted tenant stops resolving within one request, not one TTL.
type CachedDirectory struct {
	inner Directory
	cache Cache
	ttl   time.Duration
}

// NewCachedDirectory wraps dir with cache. A non-positive ttl defaults to
// five minutes.
func NewCachedDirectory(dir Directory, cache Cache, ttl time.Duration) *CachedDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedDirectory{inner: dir, cache: cache, ttl: ttl}
}

func (d *CachedDirectory) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	if t, ok := d.cache.Get(ctx, slug); ok {
		return t, nil
	}
	t, err := d.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	d.cache.Set(ctx, t.Slug, t, d.ttl)
	return t, nil
}

func (d *CachedDirectory) FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return d.inner.FindByID(ctx, id)
}

func (d *CachedDirectory) Create(ctx context.Context, slug, name string) (*Tenant, error) {
	t, err := d.inner.Create(ctx, slug, name)
	if err != nil {
		return nil, err
	}
	// A stale "not found" is not cached, but an old entry under this slug
	// from a deleted predecessor might be.
	d.cache.Delete(ctx, t.Slug)
	return t, nil
}

func (d *CachedDirectory) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := d.inner.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	d.invalidateByID(ctx, id)
	return nil
}

func (d *CachedDirectory) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if err := d.inner.Rename(ctx, id, name); err != nil {
		return err
	}
	d.invalidateByID(ctx, id)
	return nil
}

func (d *CachedDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	// Look up the slug before the row disappears.
	t, err := d.inner.FindByID(ctx, id)
	if err == nil {
		defer d.cache.Delete(ctx, t.Slug)
	}
	return d.inner.Delete(ctx, id)
}

func (d *CachedDirectory) List(ctx context.Context, filter Filter) ([]*Tenant, error) {
	return d.inner.List(ctx, filter)
}

func (d *CachedDirectory) invalidateByID(ctx context.Context, id uuid.UUID) {
	if t, err := d.inner.FindByID(ctx, id); err == nil {
		d.cache.Delete(ctx, t.Slug)
	}
}
