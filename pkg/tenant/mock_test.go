package tenant_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopkit/shopkit/pkg/tenant"
)

// fakeDirectory is an in-memory Directory for tests. Setting failWith makes
// every lookup fail, simulating a directory outage.
type fakeDirectory struct {
	mu       sync.Mutex
	bySlug   map[string]*tenant.Tenant
	failWith error
	lookups  int
}

func newFakeDirectory(tenants ...*tenant.Tenant) *fakeDirectory {
	d := &fakeDirectory{bySlug: make(map[string]*tenant.Tenant)}
	for _, t := range tenants {
		d.bySlug[t.Slug] = t
	}
	return d
}

func newTestTenant(slug string, status tenant.Status) *tenant.Tenant {
	now := time.Now()
	return &tenant.Tenant{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      strings.ToUpper(slug[:1]) + slug[1:],
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *fakeDirectory) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.failWith != nil {
		return nil, d.failWith
	}
	t, ok := d.bySlug[strings.ToLower(slug)]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (d *fakeDirectory) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	for _, t := range d.bySlug {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (d *fakeDirectory) Create(ctx context.Context, slug, name string) (*tenant.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	slug = strings.ToLower(slug)
	if _, exists := d.bySlug[slug]; exists {
		return nil, tenant.ErrSlugTaken
	}
	now := time.Now()
	t := &tenant.Tenant{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		Status:    tenant.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.bySlug[slug] = t
	return t, nil
}

func (d *fakeDirectory) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.bySlug {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return tenant.ErrTenantNotFound
}

func (d *fakeDirectory) Rename(ctx context.Context, id uuid.UUID, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.bySlug {
		if t.ID == id {
			t.Name = name
			return nil
		}
	}
	return tenant.ErrTenantNotFound
}

func (d *fakeDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for slug, t := range d.bySlug {
		if t.ID == id {
			delete(d.bySlug, slug)
			return nil
		}
	}
	return tenant.ErrTenantNotFound
}

func (d *fakeDirectory) List(ctx context.Context, filter tenant.Filter) ([]*tenant.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*tenant.Tenant
	for _, t := range d.bySlug {
		if filter.Status == "" || t.Status == filter.Status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (d *fakeDirectory) lookupCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}
