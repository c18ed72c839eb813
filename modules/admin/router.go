package admin

import (
	"github.com/go-chi/chi/v5"
)

// Router builds the tenant administration routes. Mount it on a path only
// reachable by platform operators; the handlers perform no authentication
// themselves.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/admin", admin.Router(admin.NewHandler(provisioner, dir, log)))
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/tenants", func(r chi.Router) {
		r.Post("/", h.createTenant)
		r.Get("/", h.listTenants)

		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", h.getTenant)
			r.Patch("/status", h.updateStatus)
			r.Patch("/name", h.renameTenant)
			r.Delete("/", h.deleteTenant)
		})
	})

	return r
}
