package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamon-in/invoice/pkg/config"
)

func TestDateRange(t *testing.T) {
	from, to, err := dateRange("2024-01-10", "2024-02-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", from.Format("2006-01-02"))
	assert.Equal(t, "2024-02-05", to.Format("2006-01-02"))

	from, to, err = dateRange("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, from.Month(), to.Month())
	assert.NotEqual(t, to.Month(), to.AddDate(0, 0, 1).Month())
	assert.Equal(t, time.Now().Month(), from.Month())

	_, _, err = dateRange("2024-02-01", "2024-01-01")
	assert.Error(t, err)

	_, _, err = dateRange("01/02/2024", "")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			id, err := parseID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "1 Main St, Calicut", oneLine(`1 Main St\nCalicut`))
	assert.Equal(t, "a, b", oneLine("a\nb"))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"init"},
		{"summary"},
		{"account", "add"},
		{"client", "list"},
		{"template", "show"},
		{"invoice", "generate"},
		{"timesheet", "edit"},
		{"tag", "rm"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}

func TestExitOnErrorClosesStore(t *testing.T) {
	dir := t.TempDir()
	cfg = &config.Config{DBPath: filepath.Join(dir, "invoice.db"), OutputDir: dir}
	exitCode := -1
	osExit = func(code int) { exitCode = code }
	t.Cleanup(func() {
		cfg = nil
		osExit = os.Exit
		cleanups = nil
	})

	store, closeStore := openStore()
	_, err := store.GetSummary()
	require.NoError(t, err)

	exitOnError(errors.New("boom"), "failed")
	assert.Equal(t, 1, exitCode)
	_, err = store.GetSummary()
	assert.Error(t, err, "database should be closed before exiting")

	// the deferred close after an error exit is a no-op
	assert.NotPanics(t, closeStore)
	assert.Empty(t, cleanups)
}

func TestExitOnErrorNil(t *testing.T) {
	called := false
	osExit = func(int) { called = true }
	t.Cleanup(func() { osExit = os.Exit })

	exitOnError(nil, "unused")
	assert.False(t, called)
}
