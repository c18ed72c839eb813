package tenant_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/tenant"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	acme := newTestTenant("acme", tenant.StatusActive)
	ctx := tenant.WithTenant(context.Background(), acme)

	got, ok := tenant.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, acme, got)

	id, ok := tenant.IDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, acme.ID, id)
}

func TestFromContextEmpty(t *testing.T) {
	t.Parallel()

	_, ok := tenant.FromContext(context.Background())
	assert.False(t, ok)

	id, ok := tenant.IDFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, uuid.UUID{}, id)
}

func TestFromContextNilTenant(t *testing.T) {
	t.Parallel()

	ctx := tenant.WithTenant(context.Background(), nil)
	_, ok := tenant.FromContext(ctx)
	assert.False(t, ok)
}

func TestMustFromContext(t *testing.T) {
	t.Parallel()

	acme := newTestTenant("acme", tenant.StatusActive)
	ctx := tenant.WithTenant(context.Background(), acme)
	assert.Equal(t, acme, tenant.MustFromContext(ctx))

	assert.Panics(t, func() {
		tenant.MustFromContext(context.Background())
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := tenant.LoggerExtractor()

	t.Run("emits tenant group when present", func(t *testing.T) {
		t.Parallel()

		acme := newTestTenant("acme", tenant.StatusActive)
		ctx := tenant.WithTenant(context.Background(), acme)

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "tenant", attr.Key)
		assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	})

	t.Run("silent when absent", func(t *testing.T) {
		t.Parallel()

		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
