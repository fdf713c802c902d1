package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// fakeAnnouncementService implements AnnouncementService for testing.
type fakeAnnouncementService struct {
	announcements []models.Announcement
	listErr       error
	created       *models.Announcement
	createErr     error
	deleted       bool
	deleteErr     error

	gotFilter *models.AnnouncementType
}

func (f *fakeAnnouncementService) Announcements(ctx context.Context, t *models.AnnouncementType) ([]models.Announcement, error) {
	f.gotFilter = t
	return f.announcements, f.listErr
}
func (f *fakeAnnouncementService) CreateAnnouncement(ctx context.Context, in models.InsertAnnouncement) (*models.Announcement, error) {
	return f.created, f.createErr
}
func (f *fakeAnnouncementService) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	return f.deleted, f.deleteErr
}

func TestAnnouncementHandler_List(t *testing.T) {
	important := models.Announcement{ID: "a1", Text: "urgent", Type: models.Important, CreatedAt: time.Now()}

	tests := []struct {
		name         string
		target       string
		service      *fakeAnnouncementService
		expectedCode int
		wantFilter   *models.AnnouncementType
	}{
		{
			name:         "all announcements",
			target:       "/api/announcements",
			service:      &fakeAnnouncementService{announcements: []models.Announcement{important}},
			expectedCode: http.StatusOK,
			wantFilter:   nil,
		},
		{
			name:         "filtered by type",
			target:       "/api/announcements?type=important",
			service:      &fakeAnnouncementService{announcements: []models.Announcement{important}},
			expectedCode: http.StatusOK,
			wantFilter:   func() *models.AnnouncementType { t := models.Important; return &t }(),
		},
		{
			name:         "unknown type",
			target:       "/api/announcements?type=urgent",
			service:      &fakeAnnouncementService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "store failure",
			target:       "/api/announcements",
			service:      &fakeAnnouncementService{listErr: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h := &AnnouncementHandler{AnnouncementService: tt.service}
			h.List(rec, httptest.NewRequest("GET", tt.target, nil))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode != http.StatusOK {
				return
			}
			if (tt.wantFilter == nil) != (tt.service.gotFilter == nil) {
				t.Fatalf("filter presence mismatch: want %v, got %v", tt.wantFilter, tt.service.gotFilter)
			}
			if tt.wantFilter != nil && *tt.service.gotFilter != *tt.wantFilter {
				t.Errorf("filter = %q; want %q", *tt.service.gotFilter, *tt.wantFilter)
			}
		})
	}
}

func TestAnnouncementHandler_Create(t *testing.T) {
	created := &models.Announcement{ID: "a1", Text: "hello", Type: models.General}

	tests := []struct {
		name         string
		body         string
		service      *fakeAnnouncementService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `nope`,
			service:      &fakeAnnouncementService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty text",
			body:         `{"text":"","type":"general"}`,
			service:      &fakeAnnouncementService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invented type",
			body:         `{"text":"hello","type":"urgent"}`,
			service:      &fakeAnnouncementService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "created",
			body:         `{"text":"hello","type":"general"}`,
			service:      &fakeAnnouncementService{created: created},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/announcements", bytes.NewBufferString(tt.body))
			h := &AnnouncementHandler{AnnouncementService: tt.service}
			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusCreated {
				var got models.Announcement
				if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if got.ID != "a1" {
					t.Errorf("expected created announcement, got %+v", got)
				}
			}
		})
	}
}

func TestAnnouncementHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeAnnouncementService
		expectedCode int
	}{
		{"deleted", &fakeAnnouncementService{deleted: true}, http.StatusNoContent},
		{"not found", &fakeAnnouncementService{deleted: false}, http.StatusNotFound},
		{"store failure", &fakeAnnouncementService{deleteErr: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withURLParam(httptest.NewRequest("DELETE", "/api/announcements/a1", nil), "id", "a1")
			h := &AnnouncementHandler{AnnouncementService: tt.service}
			h.Delete(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}
