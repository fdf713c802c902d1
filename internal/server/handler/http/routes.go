package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/titanmaster/vortexproxies/internal/middleware"
	"github.com/titanmaster/vortexproxies/internal/session"
)

// NewRouter constructs and returns an HTTP handler that serves the proxy
// directory API. It applies JSON content-type enforcement, request logging,
// and cookie-session resolution, and mounts the public and admin routes
// under /api.
//
// Routes:
//
//	POST   /api/register             → always 403 (registration disabled)
//	POST   /api/login                → authHandler.Login
//	POST   /api/logout               → authHandler.Logout
//	GET    /api/user                 → authHandler.CurrentUser
//	GET    /api/proxy-links          → linkHandler.List
//	GET    /api/proxy-links/active   → linkHandler.ListActive
//	GET    /api/announcements        → announcementHandler.List (?type= filter)
//	POST   /api/feedback             → feedbackHandler.Create
//
// Admin routes (session must belong to the admin identity):
//
//	POST   /api/proxy-links          → linkHandler.Create
//	PATCH  /api/proxy-links/{id}     → linkHandler.Update
//	DELETE /api/proxy-links/{id}     → linkHandler.Delete
//	POST   /api/announcements        → announcementHandler.Create
//	DELETE /api/announcements/{id}   → announcementHandler.Delete
//	GET    /api/feedback             → feedbackHandler.List
func NewRouter(
	authHandler *AuthHandler,
	linkHandler *LinkHandler,
	announcementHandler *AnnouncementHandler,
	feedbackHandler *FeedbackHandler,
	sessions *session.Store,
	users middleware.UserResolver,
	adminUsername string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session cookie to a user for downstream handlers
	r.Use(middleware.SessionAuth(sessions, users))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/user", authHandler.CurrentUser)

		r.Get("/proxy-links", linkHandler.List)
		r.Get("/proxy-links/active", linkHandler.ListActive)
		r.Get("/announcements", announcementHandler.List)
		r.Post("/feedback", feedbackHandler.Create)

		// Protected group: requires the admin session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(adminUsername))

			r.Post("/proxy-links", linkHandler.Create)
			r.Patch("/proxy-links/{id}", linkHandler.Update)
			r.Delete("/proxy-links/{id}", linkHandler.Delete)
			r.Post("/announcements", announcementHandler.Create)
			r.Delete("/announcements/{id}", announcementHandler.Delete)
			r.Get("/feedback", feedbackHandler.List)
		})
	})

	return r
}
