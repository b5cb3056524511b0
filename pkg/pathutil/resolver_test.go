package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{})
	assert.Equal(t, DefaultDatabasePath(), p.GetDatabasePath())
	assert.Equal(t, DefaultOutputDir, p.GetOutputDir())
	assert.Equal(t, "invoices.db", filepath.Base(p.GetDatabasePath()))

	p = New(Config{DatabasePath: "/tmp/x.db", OutputDir: "/tmp/out"})
	assert.Equal(t, "/tmp/x.db", p.GetDatabasePath())
	assert.Equal(t, "/tmp/out", p.GetOutputDir())
}

func TestUniquePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	p := New(Config{OutputDir: dir})
	name := "Invoice-20240102-Acme-Consulting.txt"

	path, err := p.UniquePath(name, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)
	assert.DirExists(t, dir)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	path, err = p.UniquePath(name, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice-20240102-Acme-Consulting_(1).txt"), path)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	path, err = p.UniquePath(name, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice-20240102-Acme-Consulting_(2).txt"), path)

	path, err = p.UniquePath(name, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)
}

func TestFileExists(t *testing.T) {
	p := New(Config{})
	file := filepath.Join(t.TempDir(), "f")
	assert.False(t, p.FileExists(file))
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.True(t, p.FileExists(file))
}
