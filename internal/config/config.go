// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string. When empty, the
	// server keeps all records in process memory.
	DatabaseDSN string

	// Config is the path to the Config file.
	Config string

	// AdminUsername is the single distinguished admin identity.
	AdminUsername string

	// AdminPassword is the plaintext seeded admin password; it is hashed
	// before storage and never kept around after seeding.
	AdminPassword string

	// SessionTTL is the session lifetime as a Go duration string.
	SessionTTL string

	// TLSCert and TLSKey enable HTTPS serving when both are set.
	TLSCert string
	TLSKey  string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address (empty: in-memory store)")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.StringVar(&options.AdminUsername, "admin-user", "Titanmaster", "admin username")
	flag.StringVar(&options.AdminPassword, "admin-password", "Rygoobie2012!", "admin password to seed")
	flag.StringVar(&options.SessionTTL, "session-ttl", "24h", "session lifetime")
	flag.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	flag.StringVar(&options.TLSKey, "tls-key", "", "path to TLS key")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if adminUser := os.Getenv("ADMIN_USERNAME"); adminUser != "" {
		options.AdminUsername = adminUser
	}
	if adminPassword := os.Getenv("ADMIN_PASSWORD"); adminPassword != "" {
		options.AdminPassword = adminPassword
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		options.SessionTTL = ttl
	}

	return options
}
