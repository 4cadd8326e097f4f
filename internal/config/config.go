// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// APIBaseURL is the base URL of the PlanbookAI REST gateway.
	APIBaseURL string

	// UseMockData enables the remote-first dispatch with local fallback:
	// when a gateway call fails, the equivalent local-store operation
	// serves the request instead.
	UseMockData bool

	// StoragePath is the path of the local SQLite state file holding the
	// persisted collections and the bearer token.
	StoragePath string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.APIBaseURL, "url", "http://localhost:8000", "base URL of the API gateway")
	flag.BoolVar(&options.UseMockData, "mock", true, "fall back to local mock data when the gateway is unavailable")
	flag.StringVar(&options.StoragePath, "storage", "planbook.db", "path to the local state file")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, an optional .env file and environment
// variables to set configuration values. It returns a pointer to the Options
// struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Load a .env file when present; real environment wins.
	_ = godotenv.Load()

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

	if baseURL := os.Getenv("PLANBOOK_API_URL"); baseURL != "" {
		options.APIBaseURL = baseURL
	}
	if mock := os.Getenv("PLANBOOK_USE_MOCK_DATA"); mock != "" {
		options.UseMockData = mock == "true" || mock == "1"
	}
	if storage := os.Getenv("PLANBOOK_STORAGE"); storage != "" {
		options.StoragePath = storage
	}

	return options
}
