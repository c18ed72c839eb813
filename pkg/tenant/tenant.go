package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaPrefix is prepended to the normalized tenant ID to form the name of
// the tenant's PostgreSQL schema.
const SchemaPrefix = "tenant_"

// Status is the lifecycle state of a tenant.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
	StatusPending Status = "pending"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusPending:
		return true
	}
	return false
}

// Tenant is one isolated shop in the platform. The slug doubles as the
// subdomain label and the ID determines the name of the tenant's schema.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the tenant may serve traffic.
func (t *Tenant) IsActive() bool {
	return t != nil && t.Status == StatusActive
}

// SchemaName returns the name of the tenant's PostgreSQL schema, derived
// deterministically from the tenant ID.
func (t *Tenant) SchemaName() string {
	return SchemaNameForID(t.ID)
}

// SchemaNameForID derives the schema name for a tenant ID: the fixed prefix
// plus the UUID with hyphens normalized to underscores, so the result is a
// valid unquoted PostgreSQL identifier.
func SchemaNameForID(id uuid.UUID) string {
	return SchemaPrefix + strings.ReplaceAll(id.String(), "-", "_")
}
