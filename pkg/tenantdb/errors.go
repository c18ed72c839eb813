package tenantdb

import "errors"

var (
	// ErrTenantUnavailable is returned when a query could not be confined
	// to the target tenant schema: the schema is gone (tenant deleted
	// mid-request), the pool could not hand out a connection, or the
	// narrowing statement failed. Callers should answer with a 404/503
	// and must not attempt partial reads.
	ErrTenantUnavailable = errors.New("tenant schema unavailable")

	// ErrInvalidSchemaName is returned by WithSchema for names that are
	// not safe unquoted PostgreSQL identifiers.
	ErrInvalidSchemaName = errors.New("invalid schema name")
)
