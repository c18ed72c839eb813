package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under the key "tenant_id".
// If id is nil, it returns an empty Attr.
func TenantID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("tenant_id", id)
}

// Slug records a tenant slug under the key "slug".
func Slug(s string) slog.Attr {
	return slog.String("slug", s)
}

// Schema records a database schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Host records the request host under the key "host".
func Host(host string) slog.Attr {
	return slog.String("host", host)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
