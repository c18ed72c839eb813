package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches a slug or ID.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidSlug is returned when a slug fails the strict format check.
	ErrInvalidSlug = errors.New("invalid tenant slug")

	// ErrSlugTaken is returned when a slug is already registered in the
	// directory.
	ErrSlugTaken = errors.New("tenant slug already taken")

	// ErrInvalidStatus is returned for unknown lifecycle states.
	ErrInvalidStatus = errors.New("invalid tenant status")

	// ErrNoTenantInContext is returned when a tenant is required but the
	// request resolved to none.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when a resolved tenant is blocked or
	// still pending.
	ErrInactiveTenant = errors.New("tenant is inactive")
)
