package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("migrations/001_init.sql"))
	assert.Equal(t, "010", Version("010_access_tokens_index.sql"))
}

func TestSQLFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "001_a.sql"), filepath.Join(dir, "002_b.sql")}, files)
}

func TestSQLFilesMissingDirectory(t *testing.T) {
	_, err := SQLFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRepositoryMigrationsAreNumbered(t *testing.T) {
	files, err := SQLFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	seen := map[string]bool{}
	for _, f := range files {
		v := Version(f)
		assert.Len(t, v, 3, f)
		assert.False(t, seen[v], "duplicate migration version %s", v)
		seen[v] = true
	}
}
