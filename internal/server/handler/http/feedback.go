package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// FeedbackService defines the interface for feedback operations
// required by the FeedbackHandler.
type FeedbackService interface {
	Feedback(ctx context.Context) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, in models.InsertFeedback) (*models.Feedback, error)
}

// FeedbackHandler handles HTTP requests for visitor feedback.
type FeedbackHandler struct {
	FeedbackService FeedbackService
}

// List handles GET /api/feedback (admin only).
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.FeedbackService.Feedback(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// Create handles POST /api/feedback. Anyone may submit; only type and
// message are required, name and email stay absent when omitted.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertFeedback
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil ||
		in.Type == "" || in.Message == "" {
		writeError(w, http.StatusBadRequest, "Invalid feedback data")
		return
	}

	feedback, err := h.FeedbackService.CreateFeedback(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}
