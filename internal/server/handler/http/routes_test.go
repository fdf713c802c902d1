package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/titanmaster/vortexproxies/internal/models"
	"github.com/titanmaster/vortexproxies/internal/repository"
	"github.com/titanmaster/vortexproxies/internal/seed"
	"github.com/titanmaster/vortexproxies/internal/service"
	"github.com/titanmaster/vortexproxies/internal/session"
)

const (
	testAdminUser     = "Titanmaster"
	testAdminPassword = "Rygoobie2012!"
)

// newTestServer wires a real in-memory store, seed data, sessions, and the
// router, and returns a client with a cookie jar.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	store := repository.NewMemoryStore()
	if err := seed.Run(context.Background(), store, store, store,
		testAdminUser, testAdminPassword, zap.NewNop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sessions := session.NewStore(time.Hour)
	authService := service.NewAuthService(store)
	directoryService := service.NewDirectoryService(store, store, store)

	router := NewRouter(
		&AuthHandler{AuthService: authService, Sessions: sessions},
		&LinkHandler{LinkService: directoryService},
		&AnnouncementHandler{AnnouncementService: directoryService},
		&FeedbackHandler{FeedbackService: directoryService},
		sessions,
		authService,
		testAdminUser,
		zap.NewNop(),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return srv, &http.Client{Jar: jar}
}

func doRequest(t *testing.T, client *http.Client, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func loginAdmin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp, body := doRequest(t, client, "POST", baseURL+"/api/login",
		`{"username":"`+testAdminUser+`","password":"`+testAdminPassword+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", resp.StatusCode, body)
	}
}

func TestSeededDirectoryIsPublic(t *testing.T) {
	srv, client := newTestServer(t)

	resp, body := doRequest(t, client, "GET", srv.URL+"/api/proxy-links", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var links []models.ProxyLink
	if err := json.Unmarshal(body, &links); err != nil {
		t.Fatalf("decode links: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 seeded links, got %d", len(links))
	}

	resp, body = doRequest(t, client, "GET", srv.URL+"/api/announcements?type=important", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var anns []models.Announcement
	if err := json.Unmarshal(body, &anns); err != nil {
		t.Fatalf("decode announcements: %v", err)
	}
	if len(anns) != 1 || anns[0].Type != models.Important {
		t.Fatalf("expected exactly the seeded important announcement, got %+v", anns)
	}
}

func TestRegistrationIsDisabled(t *testing.T) {
	srv, client := newTestServer(t)

	resp, body := doRequest(t, client, "POST", srv.URL+"/api/register",
		`{"username":"newbie","password":"hunter22"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("Registration is disabled. Admin access only.")) {
		t.Errorf("expected fixed disabled message, got %s", body)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	srv, client := newTestServer(t)

	respBadPassword, bodyBadPassword := doRequest(t, client, "POST", srv.URL+"/api/login",
		`{"username":"Titanmaster","password":"wrong"}`)
	respBadUser, bodyBadUser := doRequest(t, client, "POST", srv.URL+"/api/login",
		`{"username":"nobody","password":"anything"}`)

	if respBadPassword.StatusCode != http.StatusUnauthorized || respBadUser.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", respBadPassword.StatusCode, respBadUser.StatusCode)
	}
	if !bytes.Equal(bodyBadPassword, bodyBadUser) {
		t.Errorf("failure bodies differ: %s vs %s", bodyBadPassword, bodyBadUser)
	}
}

func TestFeedbackFlowEndToEnd(t *testing.T) {
	srv, client := newTestServer(t)

	// Anonymous submission with only type and message.
	resp, body := doRequest(t, client, "POST", srv.URL+"/api/feedback",
		`{"type":"bug","message":"active list shows dead proxies"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var created map[string]any
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode created feedback: %v", err)
	}
	if created["name"] != nil || created["email"] != nil {
		t.Errorf("omitted name/email must be null, got %v / %v", created["name"], created["email"])
	}

	// Listing is admin-only: anonymous gets 401.
	resp, _ = doRequest(t, client, "GET", srv.URL+"/api/feedback", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous feedback listing: expected 401, got %d", resp.StatusCode)
	}

	// The admin sees the submitted entry.
	loginAdmin(t, client, srv.URL)
	resp, body = doRequest(t, client, "GET", srv.URL+"/api/feedback", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin feedback listing: expected 200, got %d", resp.StatusCode)
	}
	var entries []models.Feedback
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("decode feedback: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "active list shows dead proxies" {
		t.Fatalf("expected the submitted entry, got %+v", entries)
	}
}

func TestAdminLinkLifecycle(t *testing.T) {
	srv, client := newTestServer(t)

	// Mutations are rejected before login.
	resp, _ := doRequest(t, client, "POST", srv.URL+"/api/proxy-links",
		`{"name":"X","url":"https://x.example","description":"d"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", resp.StatusCode)
	}

	loginAdmin(t, client, srv.URL)

	// Create without active: defaults to true.
	resp, body := doRequest(t, client, "POST", srv.URL+"/api/proxy-links",
		`{"name":"FreshProxy","url":"https://fresh.example","description":"new entry"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var link models.ProxyLink
	if err := json.Unmarshal(body, &link); err != nil {
		t.Fatalf("decode link: %v", err)
	}
	if !link.Active {
		t.Error("active should default to true")
	}

	// Partial update keeps id and createdAt.
	resp, body = doRequest(t, client, "PATCH", srv.URL+"/api/proxy-links/"+link.ID,
		`{"name":"FreshProxy v2"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var updated models.ProxyLink
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode updated link: %v", err)
	}
	if updated.ID != link.ID || !updated.CreatedAt.Equal(link.CreatedAt) {
		t.Errorf("update must preserve id and createdAt: %+v vs %+v", updated, link)
	}
	if updated.Name != "FreshProxy v2" || updated.URL != link.URL {
		t.Errorf("unexpected merge result: %+v", updated)
	}

	// The new link sorts before the seeded ones.
	resp, body = doRequest(t, client, "GET", srv.URL+"/api/proxy-links", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var links []models.ProxyLink
	if err := json.Unmarshal(body, &links); err != nil {
		t.Fatalf("decode links: %v", err)
	}
	if len(links) != 4 || links[0].ID != link.ID {
		t.Fatalf("expected the new link first of 4, got %+v", links)
	}

	// Delete, then delete again.
	resp, _ = doRequest(t, client, "DELETE", srv.URL+"/api/proxy-links/"+link.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, client, "DELETE", srv.URL+"/api/proxy-links/"+link.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("repeat delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestLogoutEndsTheSession(t *testing.T) {
	srv, client := newTestServer(t)
	loginAdmin(t, client, srv.URL)

	resp, _ := doRequest(t, client, "GET", srv.URL+"/api/user", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 while logged in, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, client, "POST", srv.URL+"/api/logout", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}

	// Logging out again is fine.
	resp, _ = doRequest(t, client, "POST", srv.URL+"/api/logout", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeat logout: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, client, "GET", srv.URL+"/api/user", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}
