package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
import:
  policies:
    books: fail_fast
`)
	t.Setenv("JWT_SECRET", "rahasia")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")
	t.Setenv("IMPORT_POLICIES", "authors=collect_errors, research = collect_errors")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.TrustedProxies)
	assert.Equal(t, map[string]string{"authors": "collect_errors", "research": "collect_errors"}, cfg.Import.Policies,
		"the environment replaces the file's map")
	assert.Equal(t, "lppm", cfg.Database.DBName, "defaults survive")
}

func TestLoadConfig_RejectsBadImportPolicy(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")

	t.Setenv("IMPORT_POLICIES", "authors=sometimes")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "fail_fast or collect_errors")

	t.Setenv("IMPORT_POLICIES", "lecturers=fail_fast")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, `unknown import entity "lecturers"`)

	t.Setenv("IMPORT_POLICIES", "authors")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "IMPORT_POLICIES")
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "JWT secret is required")
}

func TestSetFromEnv(t *testing.T) {
	var target struct {
		Ratio   float64
		Timeout time.Duration
		Small   int8
		Flags   []int
	}
	v := reflect.ValueOf(&target).Elem()

	require.NoError(t, setFromEnv(v.FieldByName("Ratio"), "0.75"))
	assert.Equal(t, 0.75, target.Ratio)

	require.NoError(t, setFromEnv(v.FieldByName("Timeout"), "90s"))
	assert.Equal(t, 90*time.Second, target.Timeout)

	assert.Error(t, setFromEnv(v.FieldByName("Small"), "300"), "out of range for int8")
	assert.Error(t, setFromEnv(v.FieldByName("Flags"), "1,2"))
}
