package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend names accepted in SEARCH_BACKEND.
const (
	SearchBackendAlgolia = "algolia"
	SearchBackendSQLite  = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Slack application configuration
	SlackClientID          string // Required: Slack OAuth client id
	SlackAPISecret         string // Required: Slack OAuth client secret
	SlackRedirectURI       string // Required: OAuth redirect URI registered with Slack
	SlackVerificationToken string // Required: shared secret checked on every inbound request

	// Credential store configuration
	CredentialBucketName string // Required: S3 bucket name for tenant credentials
	CredentialEncryptKey string // Required: 32-byte key for AES-256

	// Search index configuration
	SearchBackend string // Optional: algolia (default) or sqlite
	SearchDBPath  string // Optional: sqlite database path, sqlite backend only
	AlgoliaAppID  string // Required with the algolia backend
	AlgoliaAPIKey string // Required with the algolia backend

	// Log level
	LogLevel string // Required: Log level
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"SLACK_CLIENT_ID":          &cfg.SlackClientID,
		"SLACK_API_SECRET":         &cfg.SlackAPISecret,
		"SLACK_REDIRECT_URI":       &cfg.SlackRedirectURI,
		"SLACK_VERIFICATION_TOKEN": &cfg.SlackVerificationToken,

		"CREDENTIAL_BUCKET_NAME": &cfg.CredentialBucketName,
		"CREDENTIAL_ENCRYPT_KEY": &cfg.CredentialEncryptKey,

		"LOG_LEVEL": &cfg.LogLevel,
	}

	cfg.SearchBackend = os.Getenv("SEARCH_BACKEND")
	if cfg.SearchBackend == "" {
		cfg.SearchBackend = SearchBackendAlgolia
	}
	switch cfg.SearchBackend {
	case SearchBackendAlgolia:
		requiredVars["ALGOLIA_APP_ID"] = &cfg.AlgoliaAppID
		requiredVars["ALGOLIA_API_KEY"] = &cfg.AlgoliaAPIKey
	case SearchBackendSQLite:
		cfg.SearchDBPath = os.Getenv("SEARCH_DB_PATH")
		if cfg.SearchDBPath == "" {
			cfg.SearchDBPath = "librarian.db"
		}
	default:
		return nil, fmt.Errorf("unsupported SEARCH_BACKEND: %s", cfg.SearchBackend)
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if len(cfg.CredentialEncryptKey) != 32 {
		return nil, fmt.Errorf("CREDENTIAL_ENCRYPT_KEY must be exactly 32 bytes, got %d", len(cfg.CredentialEncryptKey))
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}
