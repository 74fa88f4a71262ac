package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viaphoniker/viaphoniker/internal/config"
)

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, generateDefaultConfig(path))

	result, err := config.ValidateFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	t.Setenv("FIREBASE_API_KEY", "test-api-key")
	t.Setenv("FIREBASE_APP_ID", "1:123:web:abc")
	t.Setenv("GOOGLE_CLIENT_ID", "client.apps.googleusercontent.com")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("ENCRYPTION_KEY", "test-encryption-key-32-bytes-ok!")
	t.Setenv("STATE_SECRET", "test-state-secret-at-least-32-bytes!")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://viaphoniker.de/auth/callback", cfg.Google.RedirectURI)
	assert.Equal(t, config.DefaultMediaRoutes(), cfg.Media.Routes)
}

func TestValidateConfig_Missing(t *testing.T) {
	err := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
