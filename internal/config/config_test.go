package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsToFirestore(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "karmadeck-prod")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.Backend)
	assert.Equal(t, "karmadeck-prod", cfg.ProjectID)
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	cfg, err := LoadConfig(BackendFirestore)

	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.Backend)
}

func TestLoadConfig_MongoRequiresConnectionSettings(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")

	_, err := LoadConfig(BackendMongo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	_, err = LoadConfig(BackendMongo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_DATABASE")

	t.Setenv("MONGO_DATABASE", "karmadeck")
	cfg, err := LoadConfig(BackendMongo)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "karmadeck", cfg.MongoDatabase)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	_, err := LoadConfig("dynamo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
