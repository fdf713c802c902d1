package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// AnnouncementService defines the interface for announcement operations
// required by the AnnouncementHandler.
type AnnouncementService interface {
	// Announcements returns announcements, all of them when t is nil.
	Announcements(ctx context.Context, t *models.AnnouncementType) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, in models.InsertAnnouncement) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) (bool, error)
}

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	AnnouncementService AnnouncementService
}

// List handles GET /api/announcements with an optional ?type= filter.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter *models.AnnouncementType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := models.AnnouncementType(raw)
		if !t.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid announcement type")
			return
		}
		filter = &t
	}

	announcements, err := h.AnnouncementService.Announcements(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch announcements")
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

// Create handles POST /api/announcements (admin only).
// Text is required and the type must be "important" or "general".
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertAnnouncement
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil ||
		in.Text == "" || !in.Type.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid announcement data")
		return
	}

	announcement, err := h.AnnouncementService.CreateAnnouncement(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create announcement")
		return
	}
	writeJSON(w, http.StatusCreated, announcement)
}

// Delete handles DELETE /api/announcements/{id} (admin only).
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.AnnouncementService.DeleteAnnouncement(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete announcement")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Announcement not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
