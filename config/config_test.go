package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_DefaultsAndMissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 8, cfg.CommentTreeFanout)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.RedisEnabled)
}

func TestLoadFile_GroupedJSONThenEnv(t *testing.T) {
	path := writeConfig(t, `{
		"app": {"AppPort": "9000", "JWTSecret": "from-file", "AllowedOrigins": ["https://a.example", "https://b.example"]},
		"database": {"DBDriver": "postgres", "DBName": "boards"},
		"log": {"LogLevel": "debug"}
	}`)
	t.Setenv("APP_PORT", "9100")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.AppPort, "env wins over file")
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "boards", cfg.DBName)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFile_FlatJSON(t *testing.T) {
	path := writeConfig(t, `{"JWTSecret": "flat", "DBDriver": "sqlite", "DatabaseURI": "file.db", "RedisEnabled": true}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "flat", cfg.JWTSecret)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file.db", cfg.DatabaseURI)
	assert.True(t, cfg.RedisEnabled)
}

func TestLoadFile_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadFile_InvalidInteger(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_PORT", "not-a-port")

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_PORT")
}

func TestLoadFile_CORSList(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://x.example , ,https://y.example")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.AllowedOrigins)
}
