package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shopkit/pkg/tenant"
)

func middlewareFor(dir tenant.Directory, opts ...tenant.Option) func(http.Handler) http.Handler {
	resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(quietLogger()))
	opts = append(opts, tenant.WithLogger(quietLogger()))
	return tenant.Middleware(resolver, opts...)
}

func echoTenantHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ten, ok := tenant.FromContext(r.Context()); ok {
			w.Header().Set("X-Resolved-Slug", ten.Slug)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareResolvesSubdomainTenant(t *testing.T) {
	t.Parallel()

	dir := newFakeDirectory(newTestTenant("acme", tenant.StatusActive))
	handler := middlewareFor(dir)(echoTenantHandler(t))

	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", rec.Header().Get("X-Resolved-Slug"))
}

func TestMiddlewareOverrideHeader(t *testing.T) {
	t.Parallel()

	t.Run("override wins over subdomain", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(
			newTestTenant("acme", tenant.StatusActive),
			newTestTenant("beta", tenant.StatusActive),
		)
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		req.Header.Set(tenant.DefaultOverrideHeader, "beta")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "beta", rec.Header().Get("X-Resolved-Slug"))
	})

	t.Run("unknown override returns 404", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusActive))
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		req.Header.Set(tenant.DefaultOverrideHeader, "ghost")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("custom override header name", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusActive))
		handler := middlewareFor(dir, tenant.WithOverrideHeader("X-Shop"))(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("X-Shop", "acme")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "acme", rec.Header().Get("X-Resolved-Slug"))
	})
}

func TestMiddlewareInactiveTenant(t *testing.T) {
	t.Parallel()

	t.Run("blocked tenant is refused", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusBlocked))
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("pending tenant is refused", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusPending))
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("blocked tenant passes when requireActive disabled", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusBlocked))
		handler := middlewareFor(dir, tenant.WithRequireActive(false))(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acme", rec.Header().Get("X-Resolved-Slug"))
	})
}

func TestMiddlewarePassesUntenantedRequests(t *testing.T) {
	t.Parallel()

	t.Run("bare domain", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory()
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Resolved-Slug"))
	})

	t.Run("directory outage on subdomain request", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory()
		dir.failWith = assert.AnError
		handler := middlewareFor(dir)(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		// The request proceeds untenanted; nothing raises past the boundary.
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Resolved-Slug"))
	})

	t.Run("skip paths bypass resolution entirely", func(t *testing.T) {
		t.Parallel()

		dir := newFakeDirectory(newTestTenant("acme", tenant.StatusActive))
		handler := middlewareFor(dir, tenant.WithSkipPaths([]string{"/health"}))(echoTenantHandler(t))

		req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Resolved-Slug"))
		assert.Zero(t, dir.lookupCount())
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	protected := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("refuses untenanted request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("passes tenanted request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req = req.WithContext(tenant.WithTenant(req.Context(), newTestTenant("acme", tenant.StatusActive)))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	require.NotNil(t, protected)
}
