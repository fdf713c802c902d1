// Package models defines the core data structures for users, proxy links,
// announcements, and feedback.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Password is the stored password composite ("digestHex.saltHex").
	// It is never serialized in API responses.
	Password string `json:"-"`
}

// ProxyLink is a published proxy endpoint shown in the directory.
type ProxyLink struct {
	// ID is the unique identifier for the link.
	ID string `json:"id"`
	// Name is the display name of the proxy service.
	Name string `json:"name"`
	// URL is the address of the proxy service.
	URL string `json:"url"`
	// Description holds a short blurb about the service.
	Description string `json:"description"`
	// Active controls whether the link shows up in the public active view.
	Active bool `json:"active"`
	// CreatedAt is assigned once at creation and never mutated.
	CreatedAt time.Time `json:"createdAt"`
}

// AnnouncementType defines the set of valid announcement categories.
type AnnouncementType string

const (
	// Important marks announcements highlighted to all visitors.
	Important AnnouncementType = "important"
	// General marks routine announcements.
	General AnnouncementType = "general"
)

// Valid reports whether t is one of the known announcement types.
func (t AnnouncementType) Valid() bool {
	return t == Important || t == General
}

// Announcement is a site-wide notice posted by the admin.
type Announcement struct {
	// ID is the unique identifier for the announcement.
	ID string `json:"id"`
	// Text is the announcement body.
	Text string `json:"text"`
	// Type is either "important" or "general".
	Type AnnouncementType `json:"type"`
	// CreatedAt is assigned once at creation and never mutated.
	CreatedAt time.Time `json:"createdAt"`
}

// Feedback is a message submitted by any visitor.
type Feedback struct {
	// ID is the unique identifier for the feedback entry.
	ID string `json:"id"`
	// Name is the optional submitter name; nil when not provided.
	Name *string `json:"name"`
	// Email is the optional submitter email; nil when not provided.
	Email *string `json:"email"`
	// Type categorizes the feedback (e.g. "bug", "suggestion").
	Type string `json:"type"`
	// Message is the feedback body.
	Message string `json:"message"`
	// CreatedAt is assigned once at creation and never mutated.
	CreatedAt time.Time `json:"createdAt"`
}

// InsertProxyLink carries the caller-supplied fields for creating a proxy link.
type InsertProxyLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

// UpdateProxyLink carries a partial update; nil fields are left untouched.
// ID and CreatedAt are not representable here and so can never change.
type UpdateProxyLink struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// InsertAnnouncement carries the caller-supplied fields for creating an announcement.
type InsertAnnouncement struct {
	Text string           `json:"text"`
	Type AnnouncementType `json:"type"`
}

// InsertFeedback carries the caller-supplied fields for submitting feedback.
// Empty Name and Email are normalized to absent by the store.
type InsertFeedback struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
