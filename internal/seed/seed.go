// Package seed populates the record store at process start.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/titanmaster/vortexproxies/internal/models"
	"github.com/titanmaster/vortexproxies/internal/password"
	"github.com/titanmaster/vortexproxies/internal/service"
)

// sampleLinks are illustrative directory entries, not canonical data.
var sampleLinks = []models.InsertProxyLink{
	{Name: "ProxyMesh", URL: "https://proxymesh.com", Description: "High-performance proxy network"},
	{Name: "HideMyAss", URL: "https://hidemyass-freeproxy.com", Description: "Free web proxy service"},
	{Name: "ProxySite", URL: "https://proxysite.com", Description: "Anonymous proxy browser"},
}

var sampleAnnouncements = []models.InsertAnnouncement{
	{Text: "Welcome to Vortex Proxies! New proxy links added weekly.", Type: models.Important},
	{Text: "Regular maintenance scheduled for weekends. Service may be temporarily unavailable.", Type: models.General},
}

// Run seeds the store once at startup: it creates the admin account if no
// user holds the admin username, and inserts the sample links and
// announcements when the directory is empty. It is not meant to be invoked
// again mid-process.
func Run(
	ctx context.Context,
	users service.UserRepository,
	links service.LinkRepository,
	announcements service.AnnouncementRepository,
	adminUsername, adminPassword string,
	log *zap.Logger,
) error {
	admin, err := users.GetUserByUsername(ctx, adminUsername)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if admin == nil {
		composite, err := password.Hash(adminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := users.CreateUser(ctx, adminUsername, composite); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Info("seeded admin user", zap.String("username", adminUsername))
	}

	existing, err := links.GetProxyLinks(ctx)
	if err != nil {
		return fmt.Errorf("list links: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, l := range sampleLinks {
		if _, err := links.CreateProxyLink(ctx, l); err != nil {
			return fmt.Errorf("seed link %q: %w", l.Name, err)
		}
	}
	for _, a := range sampleAnnouncements {
		if _, err := announcements.CreateAnnouncement(ctx, a); err != nil {
			return fmt.Errorf("seed announcement: %w", err)
		}
	}
	log.Info("seeded sample records",
		zap.Int("links", len(sampleLinks)),
		zap.Int("announcements", len(sampleAnnouncements)),
	)
	return nil
}
