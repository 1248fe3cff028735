package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreUsableWithoutSetup(t *testing.T) {
	assert.Greater(t, Settings.Search.TTSizeMb, 0)
	assert.NotEmpty(t, Settings.Log.LogLevel)
}

func TestSetupOverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte("[Search]\nTTSizeMb = 256\n"), 0o644)
	require.NoError(t, err)

	original := Settings.Search.TTSizeMb
	defer func() { Settings.Search.TTSizeMb = original }()

	require.NoError(t, Setup(path))
	assert.Equal(t, 256, Settings.Search.TTSizeMb)
}

func TestSetupWithEmptyPathIsNoop(t *testing.T) {
	before := Settings
	assert.NoError(t, Setup(""))
	assert.Equal(t, before, Settings)
}

func TestStringRendersNestedFields(t *testing.T) {
	s := Settings.String()
	assert.Contains(t, s, "Search.TTSizeMb")
}
