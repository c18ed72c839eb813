package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopkit/shopkit/pkg/provision"
	"github.com/shopkit/shopkit/pkg/tenant"
)

// Provisioner creates and destroys tenants.
type Provisioner interface {
	Provision(ctx context.Context, slug, name string) (*provision.Result, error)
	Deprovision(ctx context.Context, id uuid.UUID) error
}

// Directory is the read/update surface of the tenant registry used by the
// admin API. Creation and deletion go through the Provisioner.
type Directory interface {
	FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error
	Rename(ctx context.Context, id uuid.UUID, name string) error
	List(ctx context.Context, filter tenant.Filter) ([]*tenant.Tenant, error)
}

// Handler serves the tenant administration API.
type Handler struct {
	provisioner Provisioner
	dir         Directory
	log         *slog.Logger
}

// NewHandler creates the admin API handler.
func NewHandler(provisioner Provisioner, dir Directory, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{provisioner: provisioner, dir: dir, log: log}
}

type createTenantRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type updateStatusRequest struct {
	Status tenant.Status `json:"status"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.provisioner.Provision(r.Context(), req.Slug, req.Name)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) listTenants(w http.ResponseWriter, r *http.Request) {
	filter := tenant.Filter{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := tenant.Status(s)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = status
	}

	tenants, err := h.dir.List(r.Context(), filter)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if tenants == nil {
		tenants = []*tenant.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *Handler) getTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.dir.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.dir.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if err := h.dir.UpdateStatus(r.Context(), t.ID, req.Status); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) renameTenant(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	t, err := h.dir.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if err := h.dir.Rename(r.Context(), t.ID, req.Name); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.dir.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if err := h.provisioner.Deprovision(r.Context(), t.ID); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps the tenant error taxonomy to HTTP statuses. Causes
// attached to provisioning failures stay in the logs; clients get a
// sanitized message.
func (h *Handler) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenant.ErrInvalidSlug), errors.Is(err, tenant.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tenant.ErrTenantNotFound):
		writeError(w, http.StatusNotFound, "tenant not found")
	case errors.Is(err, tenant.ErrSlugTaken):
		writeError(w, http.StatusConflict, "slug already taken")
	case errors.Is(err, provision.ErrProvisioningFailed):
		h.log.ErrorContext(ctx, "tenant provisioning failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, provision.ErrProvisioningFailed.Error())
	case errors.Is(err, provision.ErrDeprovisioningIncomplete):
		h.log.ErrorContext(ctx, "tenant deprovisioning incomplete", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, provision.ErrDeprovisioningIncomplete.Error())
	default:
		h.log.ErrorContext(ctx, "admin api failure", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
