package tenant_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/tenant"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolverSubdomain(t *testing.T) {
	t.Parallel()

	acme := newTestTenant("acme", tenant.StatusActive)
	dir := newFakeDirectory(acme)
	resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

	t.Run("resolves leftmost label as slug", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(context.Background(), "acme.example.com", "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "acme", got.Slug)
	})

	t.Run("strips port before splitting", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(context.Background(), "acme.example.com:8443", "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "acme", got.Slug)
	})

	t.Run("bare domain resolves to no tenant", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(context.Background(), "example.com", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("single label host resolves to no tenant", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(context.Background(), "localhost:8080", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("host matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(context.Background(), "ACME.Example.COM", "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "acme", got.Slug)
	})
}

func TestResolverReservedLabels(t *testing.T) {
	t.Parallel()

	t.Run("reserved labels never resolve even when registered", func(t *testing.T) {
		t.Parallel()

		// A tenant registered under a reserved name must still be invisible.
		dir := newFakeDirectory(newTestTenant("admin", tenant.StatusActive))
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		for _, host := range []string{
			"www.example.com", "admin.example.com", "api.example.com",
			"health.example.com", "dev.example.com", "staging.example.com",
		} {
			got, err := resolver.Resolve(context.Background(), host, "")
			require.NoError(t, err, host)
			assert.Nil(t, got, host)
		}
	})

	t.Run("custom reserved set replaces the default", func(t *testing.T) {
		t.Parallel()

		www := newTestTenant("www", tenant.StatusActive)
		dir := newFakeDirectory(www)
		resolver := tenant.NewResolver(dir,
			tenant.WithReservedLabels("internal"),
			tenant.WithResolverLogger(quietLogger()))

		got, err := resolver.Resolve(context.Background(), "www.example.com", "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "www", got.Slug)

		got, err = resolver.Resolve(context.Background(), "internal.example.com", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestResolverOverride(t *testing.T) {
	t.Parallel()

	acme := newTestTenant("acme", tenant.StatusActive)
	beta := newTestTenant("beta", tenant.StatusActive)

	t.Run("override wins over subdomain", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(acme, beta)
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		got, err := resolver.Resolve(context.Background(), "acme.example.com", "beta")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "beta", got.Slug)
	})

	t.Run("unknown override fails with not found", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(acme)
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		got, err := resolver.Resolve(context.Background(), "acme.example.com", "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Nil(t, got)
	})
}

// The two resolution tiers fail differently on directory outages: subdomain
// lookups degrade to no tenant, override lookups surface the error.
func TestResolverResilience(t *testing.T) {
	t.Parallel()

	t.Run("directory failure during subdomain lookup degrades to no tenant", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory()
		dir.failWith = errors.New("connection refused")
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		got, err := resolver.Resolve(context.Background(), "acme.example.com", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown subdomain degrades to no tenant", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory()
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		got, err := resolver.Resolve(context.Background(), "ghost.example.com", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("directory failure during override lookup escapes", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		dir := newFakeDirectory()
		dir.failWith = boom
		resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))

		_, err := resolver.Resolve(context.Background(), "acme.example.com", "acme")
		assert.ErrorIs(t, err, boom)
	})
}
