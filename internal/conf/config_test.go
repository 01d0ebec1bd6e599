package conf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a scratch directory so a developer's config.yaml cannot leak
	// into the assertions.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	settings, err := Load()
	require.NoError(t, err)

	assert.False(t, settings.Debug)
	assert.Empty(t, settings.Tables.Path)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "text", settings.Output.Format)

	assert.Same(t, settings, GetSettings())
}

func TestDefaultConfigIsEmbedded(t *testing.T) {
	contents := DefaultConfig()
	assert.Contains(t, contents, "tables:")
	assert.Contains(t, contents, "log:")
}
