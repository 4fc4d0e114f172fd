package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Window.Width)
	assert.False(t, cfg.Shaders.Watch)
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapshader.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults should be written to disk")
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapshader.toml")
	data := `
[window]
width = 640

[shaders]
dir = "shaders"
watch = true

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(640), cfg.Window.Width)
	assert.Equal(t, int32(768), cfg.Window.Height, "unset keys keep their default")
	assert.Equal(t, "shaders", cfg.Shaders.Dir)
	assert.True(t, cfg.Shaders.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveLoadKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapshader.toml")
	cfg := Default()
	cfg.Window.Title = "tiles"
	cfg.Shaders.Dir = "/tmp/glsl"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	cfg := Default()
	cfg.Shaders.Watch = true
	assert.Error(t, cfg.Validate(), "watch without a directory")

	cfg = Default()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Window.Height = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapshader.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\nwidth = "), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
