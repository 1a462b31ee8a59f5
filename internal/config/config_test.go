package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
	assert.Equal(t, "data/journal.db", cfg.Database.Path)
	assert.Equal(t, "testuser@example.com", cfg.Auth.Email)
	assert.Equal(t, "password", cfg.Auth.Password)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, 720, cfg.Auth.TokenTTLMinutes)
	assert.Empty(t, cfg.Backup.Bucket)
	assert.Equal(t, "journal-backups", cfg.Backup.KeyPrefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JOURNAL_SERVER_ADDR", "0.0.0.0:9000")
	t.Setenv("JOURNAL_AUTH_JWTSECRET", "super-secret")
	t.Setenv("JOURNAL_BACKUP_BUCKET", "my-journal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "my-journal", cfg.Backup.Bucket)
}
