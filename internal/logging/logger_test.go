package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledLoggingWritesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{Debug: false}))
	t.Cleanup(Close)

	Session("should not appear")
	APIError("should not appear either")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCategoryFileCreated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{Debug: true, Level: "debug"}))
	t.Cleanup(Close)

	Get(CategoryWizard).Info("step advanced")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if strings.Contains(e.Name(), "wizard") {
			found = true
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			assert.Contains(t, string(data), "step advanced")
		}
	}
	assert.True(t, found, "expected a wizard log file")
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{
		Debug:      true,
		Level:      "debug",
		Categories: map[string]bool{"api": false},
	}))
	t.Cleanup(Close)

	assert.False(t, IsCategoryEnabled(CategoryAPI))
	assert.True(t, IsCategoryEnabled(CategorySession))
}

func TestLevelGating(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{Debug: true, Level: "warn"}))
	t.Cleanup(Close)

	l := Get(CategoryBoot)
	l.Debug("debug line")
	l.Warn("warn line")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug line")
	assert.Contains(t, string(data), "warn line")
}
