// Package config loads application settings from environment variables
// (populated by the .env file in main.go).
package config

import (
	"errors"
	"os"
)

// DefaultCredentialsFile is the fixed relative path the no-argument
// commands read their service-account JSON from.
const DefaultCredentialsFile = "serviceAccountKey.json"

// Backend names for the document store.
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
)

type Config struct {
	Backend       string
	ProjectID     string
	MongoURI      string
	MongoDatabase string
}

// LoadConfig reads the store settings from the environment. Mongo settings
// are only required when the mongo backend is selected.
func LoadConfig(backend string) (*Config, error) {
	if backend == "" {
		backend = os.Getenv("STORE_BACKEND")
	}
	if backend == "" {
		backend = BackendFirestore
	}

	cfg := &Config{
		Backend:   backend,
		ProjectID: os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	switch backend {
	case BackendFirestore:
	case BackendMongo:
		cfg.MongoURI = os.Getenv("MONGO_URI")
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI environment variable not set")
		}
		cfg.MongoDatabase = os.Getenv("MONGO_DATABASE")
		if cfg.MongoDatabase == "" {
			return nil, errors.New("MONGO_DATABASE environment variable not set")
		}
	default:
		return nil, errors.New("unknown store backend: " + backend)
	}

	return cfg, nil
}
