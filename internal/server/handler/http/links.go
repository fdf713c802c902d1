package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// LinkService defines the interface for proxy-link operations
// required by the LinkHandler.
type LinkService interface {
	ProxyLinks(ctx context.Context) ([]models.ProxyLink, error)
	ActiveProxyLinks(ctx context.Context) ([]models.ProxyLink, error)
	CreateProxyLink(ctx context.Context, in models.InsertProxyLink) (*models.ProxyLink, error)
	// UpdateProxyLink returns nil when no link has the given id.
	UpdateProxyLink(ctx context.Context, id string, upd models.UpdateProxyLink) (*models.ProxyLink, error)
	DeleteProxyLink(ctx context.Context, id string) (bool, error)
}

// LinkHandler handles HTTP requests for proxy links.
type LinkHandler struct {
	LinkService LinkService
}

// List handles GET /api/proxy-links.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.LinkService.ProxyLinks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch proxy links")
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// ListActive handles GET /api/proxy-links/active.
func (h *LinkHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	links, err := h.LinkService.ActiveProxyLinks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch active proxy links")
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Create handles POST /api/proxy-links (admin only).
// Name, url, and description are required; active defaults to true.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertProxyLink
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil ||
		in.Name == "" || in.URL == "" || in.Description == "" {
		writeError(w, http.StatusBadRequest, "Invalid proxy link data")
		return
	}

	link, err := h.LinkService.CreateProxyLink(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create proxy link")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Update handles PATCH /api/proxy-links/{id} (admin only).
// Only the provided fields change; id and createdAt never do.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.UpdateProxyLink
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid proxy link data")
		return
	}

	link, err := h.LinkService.UpdateProxyLink(r.Context(), id, upd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update proxy link")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "Proxy link not found")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Delete handles DELETE /api/proxy-links/{id} (admin only).
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.LinkService.DeleteProxyLink(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete proxy link")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Proxy link not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
