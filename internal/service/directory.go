package service

import (
	"context"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// LinkRepository defines the persistence operations needed for proxy links.
type LinkRepository interface {
	// GetProxyLinks returns all links, newest first.
	GetProxyLinks(ctx context.Context) ([]models.ProxyLink, error)
	// GetActiveProxyLinks returns only active links, newest first.
	GetActiveProxyLinks(ctx context.Context) ([]models.ProxyLink, error)
	// CreateProxyLink inserts a link, defaulting active to true when omitted.
	CreateProxyLink(ctx context.Context, in models.InsertProxyLink) (*models.ProxyLink, error)
	// UpdateProxyLink merges non-nil fields; returns nil when the id is absent.
	UpdateProxyLink(ctx context.Context, id string, upd models.UpdateProxyLink) (*models.ProxyLink, error)
	// DeleteProxyLink removes a link, reporting whether it existed.
	DeleteProxyLink(ctx context.Context, id string) (bool, error)
}

// AnnouncementRepository defines the persistence operations needed for announcements.
type AnnouncementRepository interface {
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
	GetAnnouncementsByType(ctx context.Context, t models.AnnouncementType) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, in models.InsertAnnouncement) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) (bool, error)
}

// FeedbackRepository defines the persistence operations needed for feedback.
type FeedbackRepository interface {
	GetFeedback(ctx context.Context) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, in models.InsertFeedback) (*models.Feedback, error)
}

// DirectoryService implements the proxy-directory operations by delegating
// to the record repositories.
type DirectoryService struct {
	links         LinkRepository
	announcements AnnouncementRepository
	feedback      FeedbackRepository
}

// NewDirectoryService constructs a DirectoryService over the given repositories.
func NewDirectoryService(links LinkRepository, announcements AnnouncementRepository, feedback FeedbackRepository) *DirectoryService {
	return &DirectoryService{links: links, announcements: announcements, feedback: feedback}
}

// ProxyLinks returns every proxy link, newest first.
func (s *DirectoryService) ProxyLinks(ctx context.Context) ([]models.ProxyLink, error) {
	return s.links.GetProxyLinks(ctx)
}

// ActiveProxyLinks returns only the active proxy links, newest first.
func (s *DirectoryService) ActiveProxyLinks(ctx context.Context) ([]models.ProxyLink, error) {
	return s.links.GetActiveProxyLinks(ctx)
}

// CreateProxyLink inserts a new proxy link.
func (s *DirectoryService) CreateProxyLink(ctx context.Context, in models.InsertProxyLink) (*models.ProxyLink, error) {
	return s.links.CreateProxyLink(ctx, in)
}

// UpdateProxyLink applies a partial update; returns nil when the id is absent.
func (s *DirectoryService) UpdateProxyLink(ctx context.Context, id string, upd models.UpdateProxyLink) (*models.ProxyLink, error) {
	return s.links.UpdateProxyLink(ctx, id, upd)
}

// DeleteProxyLink removes a link, reporting whether it existed.
func (s *DirectoryService) DeleteProxyLink(ctx context.Context, id string) (bool, error) {
	return s.links.DeleteProxyLink(ctx, id)
}

// Announcements returns announcements, optionally filtered by type.
// A nil filter returns all of them.
func (s *DirectoryService) Announcements(ctx context.Context, t *models.AnnouncementType) ([]models.Announcement, error) {
	if t != nil {
		return s.announcements.GetAnnouncementsByType(ctx, *t)
	}
	return s.announcements.GetAnnouncements(ctx)
}

// CreateAnnouncement inserts a new announcement.
func (s *DirectoryService) CreateAnnouncement(ctx context.Context, in models.InsertAnnouncement) (*models.Announcement, error) {
	return s.announcements.CreateAnnouncement(ctx, in)
}

// DeleteAnnouncement removes an announcement, reporting whether it existed.
func (s *DirectoryService) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	return s.announcements.DeleteAnnouncement(ctx, id)
}

// Feedback returns every feedback entry, newest first.
func (s *DirectoryService) Feedback(ctx context.Context) ([]models.Feedback, error) {
	return s.feedback.GetFeedback(ctx)
}

// CreateFeedback stores a submitted feedback entry.
func (s *DirectoryService) CreateFeedback(ctx context.Context, in models.InsertFeedback) (*models.Feedback, error) {
	return s.feedback.CreateFeedback(ctx, in)
}
