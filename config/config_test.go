package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LISA_ROOT", root)
	t.Setenv("LISA_ENV", "development")
	t.Setenv("LISA_ADMIN_GROUPS", "admin|ops")
	t.Setenv("LISA_RAG_LEGACY_FILE", "repositories.yaml")
	t.Setenv("LISA_RAG_POLL_INTERVAL", "2s")

	cfg := Load()
	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, cfg.Root)
	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, "TEXT", cfg.LogMode)
	assert.Equal(t, 100, cfg.LogMaxSize)
	assert.Equal(t, []string{"admin", "ops"}, cfg.Rag.AdminGroups)
	assert.Equal(t, filepath.Join(abs, "repositories.yaml"), cfg.Rag.LegacyFile)
	assert.Equal(t, 2*time.Second, cfg.Rag.PollInterval)
	assert.Equal(t, []string{"admin", "ops"}, cfg.Options().AdminGroups)
	assert.Equal(t, 2*time.Second, cfg.Options().PollInterval)
}

func TestLoadFrom(t *testing.T) {
	root := t.TempDir()
	envfile := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envfile, []byte("LISA_ENV=development\nLISA_LOG_MODE=JSON\nLISA_ADMIN_GROUPS=root\n"), 0644))

	t.Setenv("LISA_ROOT", root)
	t.Setenv("LISA_ENV", "production")
	t.Setenv("LISA_LOG_MODE", "TEXT")
	t.Setenv("LISA_ADMIN_GROUPS", "admin")

	cfg := LoadFrom(envfile)
	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, "JSON", cfg.LogMode)
	assert.Equal(t, []string{"root"}, cfg.Rag.AdminGroups)
}

func TestInitLog(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "logs"), 0755))
	t.Setenv("LISA_ROOT", root)
	t.Setenv("LISA_ENV", "production")
	t.Setenv("LISA_LOG", "")

	Init(root)
	defer CloseLog()

	assert.Equal(t, "production", Conf.Mode)
	assert.Equal(t, filepath.Join(Conf.Root, "logs", "lisa.log"), Conf.Log)
	assert.NotNil(t, LogOutput)
}
