package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_ADDR", "")
	t.Setenv("STORAGE_DB_PATH", "")
	t.Setenv("STORAGE_DB_LOG", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg := Load()
	require.Equal(t, ":8008", cfg.Addr)
	require.Equal(t, "storage-control.db", cfg.DBPath)
	require.Equal(t, logger.Warn, cfg.DBLog)
	require.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_ADDR", "127.0.0.1:9000")
	t.Setenv("STORAGE_DB_PATH", "/tmp/x.db")
	t.Setenv("STORAGE_DB_LOG", "silent")
	t.Setenv("STORAGE_BACKEND", "Memory")

	cfg := Load()
	require.Equal(t, "127.0.0.1:9000", cfg.Addr)
	require.Equal(t, "/tmp/x.db", cfg.DBPath)
	require.Equal(t, logger.Silent, cfg.DBLog)
	require.Equal(t, BackendMemory, cfg.Backend)
}
