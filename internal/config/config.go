// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and an
// optional JSON config file.
package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// BaseURL is the root URL of the Structura backend API.
	BaseURL string

	// SessionFile is the path of the persisted session store.
	SessionFile string

	// OutputDir is where generated reports, certificates and CSV exports
	// are written.
	OutputDir string

	// OAuthAddr is the loopback listen address for the OAuth callback.
	OAuthAddr string

	// TimeoutSeconds bounds every HTTP request issued by the client.
	TimeoutSeconds int

	// LogLevel selects the zap log level.
	LogLevel string

	// Config is the path to the JSON config file.
	Config string
}

// Timeout returns TimeoutSeconds as a duration.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Defaults returns an Options populated with built-in defaults.
func Defaults() *Options {
	return &Options{
		BaseURL:        "http://localhost:5000",
		SessionFile:    "session.json",
		OutputDir:      ".",
		OAuthAddr:      "localhost:8910",
		TimeoutSeconds: 15,
		LogLevel:       "info",
		Config:         "config.json",
	}
}

// Parse resolves the configuration. Precedence, lowest to highest:
// built-in defaults, JSON config file, environment variables. A .env file in
// the working directory is loaded first so env overrides can live there.
// configPath, when non-empty, pins the config file and wins over the
// STRUCTURA_CONFIG env var.
func Parse(configPath string) *Options {
	// .env.local carries per-machine values and wins over the shared .env.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	options := Defaults()

	if env := os.Getenv("STRUCTURA_CONFIG"); env != "" {
		options.Config = env
	}
	if configPath != "" {
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

	options.BaseURL = getenv("STRUCTURA_API_URL", options.BaseURL)
	options.SessionFile = getenv("STRUCTURA_SESSION_FILE", options.SessionFile)
	options.OutputDir = getenv("STRUCTURA_OUTPUT_DIR", options.OutputDir)
	options.OAuthAddr = getenv("STRUCTURA_OAUTH_ADDR", options.OAuthAddr)
	options.LogLevel = getenv("STRUCTURA_LOG_LEVEL", options.LogLevel)
	options.TimeoutSeconds = getenvInt("STRUCTURA_TIMEOUT_SECONDS", options.TimeoutSeconds)

	return options
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
