package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/tenant"
)

func TestCachedDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusActive))
		cached := tenant.NewCachedDirectory(dir, tenant.NewInMemoryCache(), time.Minute)

		first, err := cached.FindBySlug(ctx, "acme")
		require.NoError(t, err)
		second, err := cached.FindBySlug(ctx, "acme")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, dir.lookupCount())
	})

	t.Run("lookup failures are not cached", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory()
		cached := tenant.NewCachedDirectory(dir, tenant.NewInMemoryCache(), time.Minute)

		_, err := cached.FindBySlug(ctx, "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

		_, err = cached.FindBySlug(ctx, "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Equal(t, 2, dir.lookupCount())
	})

	t.Run("status change invalidates the cached entry", func(t *testing.T) {
		t.Parallel()

		acme := newTestTenant("acme", tenant.StatusActive)
		dir := newFakeDirectory(acme)
		cached := tenant.NewCachedDirectory(dir, tenant.NewInMemoryCache(), time.Minute)

		got, err := cached.FindBySlug(ctx, "acme")
		require.NoError(t, err)
		require.True(t, got.IsActive())

		require.NoError(t, cached.UpdateStatus(ctx, acme.ID, tenant.StatusBlocked))

		got, err = cached.FindBySlug(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusBlocked, got.Status)
	})

	t.Run("delete invalidates the cached entry", func(t *testing.T) {
		t.Parallel()

		acme := newTestTenant("acme", tenant.StatusActive)
		dir := newFakeDirectory(acme)
		cached := tenant.NewCachedDirectory(dir, tenant.NewInMemoryCache(), time.Minute)

		_, err := cached.FindBySlug(ctx, "acme")
		require.NoError(t, err)

		require.NoError(t, cached.Delete(ctx, acme.ID))

		_, err = cached.FindBySlug(ctx, "acme")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}
