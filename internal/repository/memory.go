// Package repository provides storage implementations for the proxy directory.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// MemoryStore is an in-memory repository for all four record kinds.
//
// Every operation runs under a single mutex, so interleaved calls from
// concurrent requests can never double-insert or lose an update. Records
// live only for the lifetime of the process.
type MemoryStore struct {
	mu sync.Mutex

	users         map[string]models.User
	links         map[string]models.ProxyLink
	announcements map[string]models.Announcement
	feedback      map[string]models.Feedback

	// seq records insertion order per record id; listings use it as the
	// tie-break for equal creation times so ordering is deterministic.
	seq  map[string]int64
	next int64

	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		links:         make(map[string]models.ProxyLink),
		announcements: make(map[string]models.Announcement),
		feedback:      make(map[string]models.Feedback),
		seq:           make(map[string]int64),
		now:           time.Now,
	}
}

func (s *MemoryStore) insertSeq(id string) {
	s.next++
	s.seq[id] = s.next
}

// newerFirst reports whether the record identified by idA (created at a)
// sorts before the record identified by idB (created at b).
func (s *MemoryStore) newerFirst(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return s.seq[idA] > s.seq[idB]
}

// GetUser returns the user with the given id, or nil if absent.
func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or nil if absent.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser inserts a user with a fresh id. The password must already be
// a hashed composite; the store never sees plaintext.
func (s *MemoryStore) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: passwordHash,
	}
	s.users[u.ID] = u
	s.insertSeq(u.ID)
	return &u, nil
}

// GetProxyLink returns the link with the given id, or nil if absent.
func (s *MemoryStore) GetProxyLink(_ context.Context, id string) (*models.ProxyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// GetProxyLinks returns all proxy links, newest first.
func (s *MemoryStore) GetProxyLinks(_ context.Context) ([]models.ProxyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLinks(func(models.ProxyLink) bool { return true }), nil
}

// GetActiveProxyLinks returns only active proxy links, newest first.
func (s *MemoryStore) GetActiveProxyLinks(_ context.Context) ([]models.ProxyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLinks(func(l models.ProxyLink) bool { return l.Active }), nil
}

func (s *MemoryStore) sortedLinks(keep func(models.ProxyLink) bool) []models.ProxyLink {
	out := make([]models.ProxyLink, 0, len(s.links))
	for _, l := range s.links {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

// CreateProxyLink inserts a proxy link with a fresh id and creation time.
// Active defaults to true when the caller omits it.
func (s *MemoryStore) CreateProxyLink(_ context.Context, in models.InsertProxyLink) (*models.ProxyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	l := models.ProxyLink{
		ID:          uuid.NewString(),
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
		Active:      active,
		CreatedAt:   s.now(),
	}
	s.links[l.ID] = l
	s.insertSeq(l.ID)
	return &l, nil
}

// UpdateProxyLink merges the non-nil fields of upd onto the stored link.
// It returns nil when no link has the given id. ID and CreatedAt are
// never reassigned.
func (s *MemoryStore) UpdateProxyLink(_ context.Context, id string, upd models.UpdateProxyLink) (*models.ProxyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		l.Name = *upd.Name
	}
	if upd.URL != nil {
		l.URL = *upd.URL
	}
	if upd.Description != nil {
		l.Description = *upd.Description
	}
	if upd.Active != nil {
		l.Active = *upd.Active
	}
	s.links[id] = l
	return &l, nil
}

// DeleteProxyLink removes a link by id, reporting whether it existed.
func (s *MemoryStore) DeleteProxyLink(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[id]; !ok {
		return false, nil
	}
	delete(s.links, id)
	delete(s.seq, id)
	return true, nil
}

// GetAnnouncements returns all announcements, newest first.
func (s *MemoryStore) GetAnnouncements(_ context.Context) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedAnnouncements(func(models.Announcement) bool { return true }), nil
}

// GetAnnouncementsByType returns announcements of the given type, newest first.
func (s *MemoryStore) GetAnnouncementsByType(_ context.Context, t models.AnnouncementType) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedAnnouncements(func(a models.Announcement) bool { return a.Type == t }), nil
}

func (s *MemoryStore) sortedAnnouncements(keep func(models.Announcement) bool) []models.Announcement {
	out := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

// CreateAnnouncement inserts an announcement with a fresh id and creation time.
func (s *MemoryStore) CreateAnnouncement(_ context.Context, in models.InsertAnnouncement) (*models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := models.Announcement{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Type:      in.Type,
		CreatedAt: s.now(),
	}
	s.announcements[a.ID] = a
	s.insertSeq(a.ID)
	return &a, nil
}

// DeleteAnnouncement removes an announcement by id, reporting whether it existed.
func (s *MemoryStore) DeleteAnnouncement(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.announcements[id]; !ok {
		return false, nil
	}
	delete(s.announcements, id)
	delete(s.seq, id)
	return true, nil
}

// GetFeedback returns all feedback entries, newest first.
func (s *MemoryStore) GetFeedback(_ context.Context) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Feedback, 0, len(s.feedback))
	for _, f := range s.feedback {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

// CreateFeedback inserts a feedback entry with a fresh id and creation time.
// Empty name and email are stored as absent rather than empty strings.
func (s *MemoryStore) CreateFeedback(_ context.Context, in models.InsertFeedback) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := models.Feedback{
		ID:        uuid.NewString(),
		Name:      optional(in.Name),
		Email:     optional(in.Email),
		Type:      in.Type,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	s.feedback[f.ID] = f
	s.insertSeq(f.ID)
	return &f, nil
}

// optional maps "" to nil so absent fields serialize as null, not "".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
