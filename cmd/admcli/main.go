// Package main implements an interactive admin console for the Vortex
// Proxies API. It logs in with the admin credentials, keeps the session
// cookie in an in-memory jar, and exposes the mutating endpoints as
// shell-style commands.
package main

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/titanmaster/vortexproxies/internal/models"
)

var (
	version   string
	buildDate string
)

// doJSON performs a request with an optional JSON body and decodes the
// response into out when it is non-nil. It returns the HTTP status code.
func doJSON(client *http.Client, method, url string, body, out any) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// login prompts for credentials (password without echo) and posts them.
func login(client *http.Client, baseURL string) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Failed to read password:", err)
		return
	}

	var user models.User
	status, err := doJSON(client, http.MethodPost, baseURL+"/api/login",
		map[string]string{"username": username, "password": string(raw)}, &user)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	if status != http.StatusOK {
		fmt.Println("Login failed: status", status)
		return
	}
	fmt.Println("Logged in as", user.Username)
}

func printLinks(client *http.Client, url string) {
	var links []models.ProxyLink
	if _, err := doJSON(client, http.MethodGet, url, nil, &links); err != nil {
		fmt.Println("Failed to fetch links:", err)
		return
	}
	for _, l := range links {
		fmt.Printf("%s  active=%t  %s  %s\n    %s\n", l.ID, l.Active, l.Name, l.URL, l.Description)
	}
}

// repl runs the interactive shell loop, accepting commands to manage the directory.
func repl(client *http.Client, baseURL string) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("vortex> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, whoami, links, active, add-link <name> <url> <description...>, del-link <id>, toggle-link <id> <true|false>, anns [type], add-ann <important|general> <text...>, del-ann <id>, feedback, exit")
		case "login":
			login(client, baseURL)
		case "logout":
			if _, err := doJSON(client, http.MethodPost, baseURL+"/api/logout", nil, nil); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "whoami":
			var user models.User
			status, err := doJSON(client, http.MethodGet, baseURL+"/api/user", nil, &user)
			if err != nil || status != http.StatusOK {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Println(user.Username)
		case "links":
			printLinks(client, baseURL+"/api/proxy-links")
		case "active":
			printLinks(client, baseURL+"/api/proxy-links/active")
		case "add-link":
			if len(args) < 4 {
				fmt.Println("Usage: add-link <name> <url> <description...>")
				continue
			}
			in := models.InsertProxyLink{
				Name:        args[1],
				URL:         args[2],
				Description: strings.Join(args[3:], " "),
			}
			var link models.ProxyLink
			status, err := doJSON(client, http.MethodPost, baseURL+"/api/proxy-links", in, &link)
			if err != nil || status != http.StatusCreated {
				fmt.Println("Failed to add link: status", status)
				continue
			}
			fmt.Println("Created", link.ID)
		case "del-link":
			if len(args) < 2 {
				fmt.Println("Usage: del-link <id>")
				continue
			}
			status, err := doJSON(client, http.MethodDelete, baseURL+"/api/proxy-links/"+args[1], nil, nil)
			if err != nil || status != http.StatusNoContent {
				fmt.Println("Failed to delete link: status", status)
				continue
			}
			fmt.Println("Deleted")
		case "toggle-link":
			if len(args) < 3 {
				fmt.Println("Usage: toggle-link <id> <true|false>")
				continue
			}
			active, err := strconv.ParseBool(args[2])
			if err != nil {
				fmt.Println("Usage: toggle-link <id> <true|false>")
				continue
			}
			upd := models.UpdateProxyLink{Active: &active}
			var link models.ProxyLink
			status, err := doJSON(client, http.MethodPatch, baseURL+"/api/proxy-links/"+args[1], upd, &link)
			if err != nil || status != http.StatusOK {
				fmt.Println("Failed to update link: status", status)
				continue
			}
			fmt.Printf("%s active=%t\n", link.ID, link.Active)
		case "anns":
			url := baseURL + "/api/announcements"
			if len(args) > 1 {
				url += "?type=" + args[1]
			}
			var anns []models.Announcement
			if _, err := doJSON(client, http.MethodGet, url, nil, &anns); err != nil {
				fmt.Println("Failed to fetch announcements:", err)
				continue
			}
			for _, a := range anns {
				fmt.Printf("%s  [%s]  %s\n", a.ID, a.Type, a.Text)
			}
		case "add-ann":
			if len(args) < 3 {
				fmt.Println("Usage: add-ann <important|general> <text...>")
				continue
			}
			in := models.InsertAnnouncement{
				Type: models.AnnouncementType(args[1]),
				Text: strings.Join(args[2:], " "),
			}
			var ann models.Announcement
			status, err := doJSON(client, http.MethodPost, baseURL+"/api/announcements", in, &ann)
			if err != nil || status != http.StatusCreated {
				fmt.Println("Failed to add announcement: status", status)
				continue
			}
			fmt.Println("Created", ann.ID)
		case "del-ann":
			if len(args) < 2 {
				fmt.Println("Usage: del-ann <id>")
				continue
			}
			status, err := doJSON(client, http.MethodDelete, baseURL+"/api/announcements/"+args[1], nil, nil)
			if err != nil || status != http.StatusNoContent {
				fmt.Println("Failed to delete announcement: status", status)
				continue
			}
			fmt.Println("Deleted")
		case "feedback":
			var entries []models.Feedback
			status, err := doJSON(client, http.MethodGet, baseURL+"/api/feedback", nil, &entries)
			if err != nil || status != http.StatusOK {
				fmt.Println("Failed to fetch feedback: status", status)
				continue
			}
			for _, f := range entries {
				name := "(anonymous)"
				if f.Name != nil {
					name = *f.Name
				}
				fmt.Printf("%s  [%s]  %s: %s\n", f.ID, f.Type, name, f.Message)
			}
		case "exit":
			return
		default:
			fmt.Println("Unknown command, try: help")
		}
	}
}

func main() {
	serverURL := flag.String("s", "http://localhost:8080", "server base URL")
	flag.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	repl(client, strings.TrimRight(*serverURL, "/"))
}
