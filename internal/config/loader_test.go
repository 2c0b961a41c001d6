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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	path := writeConfig(t, "storage:\n  upload_dir: "+uploads+"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8002, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8002", cfg.Server.GetAddress())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 1, cfg.Database.MinConns)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []uint{1}, cfg.Auth.AdminUserIDs)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, int64(50<<20), cfg.Storage.MaxUploadBytes())
	assert.Equal(t, 3, cfg.Storage.MaxConcurrentUploads)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Server.ShouldExposeErrors())

	info, err := os.Stat(uploads)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
server:
  port: 9100
  production_mode: true
database:
  driver: SQLite
  dsn: `+filepath.Join(dir, "db", "gwp.db")+`
  max_conns: 4
auth:
  admin_user_ids: [1, 7]
storage:
  upload_dir: `+filepath.Join(dir, "files")+`
`)
	t.Setenv("GWP_SERVER_PORT", "9200")
	t.Setenv("GWP_SESSION_TTL", "0s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, time.Duration(0), cfg.Session.TTL)
	assert.Equal(t, []uint{1, 7}, cfg.Auth.AdminUserIDs)
	assert.False(t, cfg.Server.ShouldExposeErrors())

	_, err = os.Stat(filepath.Join(dir, "db"))
	assert.NoError(t, err)
}

func TestLoadConfigDatabaseURL(t *testing.T) {
	path := writeConfig(t, "storage:\n  upload_dir: "+t.TempDir()+"\n")
	t.Setenv("DATABASE_URL", "postgres://gwp:secret@db:5432/GWP")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://gwp:secret@db:5432/GWP", cfg.Database.DSN)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad port":      "server:\n  port: 70000\n",
		"bad driver":    "database:\n  driver: oracle\n",
		"bad session":   "session:\n  backend: memcached\n",
		"bad storage":   "storage:\n  provider: ftp\n",
		"s3 w/o bucket": "storage:\n  provider: s3\n",
		"pool inverted": "database:\n  min_conns: 5\n  max_conns: 2\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, body+"\n")
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestTLSFiles(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "fullchain.pem")
	key := filepath.Join(dir, "private.key")

	s := ServerConfig{TLSCert: cert, TLSKey: key}
	_, _, ok := s.TLSFiles()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(cert, []byte("c"), 0600))
	require.NoError(t, os.WriteFile(key, []byte("k"), 0600))
	gotCert, gotKey, ok := s.TLSFiles()
	assert.True(t, ok)
	assert.Equal(t, cert, gotCert)
	assert.Equal(t, key, gotKey)
}
