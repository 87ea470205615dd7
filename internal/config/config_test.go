package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chatdesk/chatdesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	require.Equal(t, "memory", cfg.StorageBackend)
	require.Equal(t, 4000, cfg.MaxMessageLen)
	require.Equal(t, 10, cfg.HistoryWindow)
	require.Equal(t, "30s", cfg.GenerateTimeout.String())
	require.NoError(t, cfg.Validate())
}

func TestValidateCredential(t *testing.T) {
	cfg := &config.Config{
		StorageBackend:  "memory",
		MaxMessageLen:   4000,
		HistoryWindow:   10,
		GenerateTimeout: 1,
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg.UseMockLLM = true
	require.NoError(t, cfg.Validate())
}

func TestValidateBackends(t *testing.T) {
	base := config.Config{
		UseMockLLM:      true,
		MaxMessageLen:   4000,
		HistoryWindow:   10,
		GenerateTimeout: 1,
	}

	pg := base
	pg.StorageBackend = "postgres"
	require.Error(t, pg.Validate())
	pg.DatabaseURL = "postgres://localhost/chatdesk"
	require.NoError(t, pg.Validate())

	fs := base
	fs.StorageBackend = "firestore"
	require.Error(t, fs.Validate())
	fs.GCPProjectID = "demo-project"
	require.NoError(t, fs.Validate())

	bad := base
	bad.StorageBackend = "cassandra"
	require.Error(t, bad.Validate())
}
