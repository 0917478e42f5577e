package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("NEHAZARS_CONFIG", "")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, filepath.Join("data", "uploads"), cfg.UploadDir)
		assert.Equal(t, filepath.Join("outputs", "nehazars.db"), cfg.DBPath)
		assert.Equal(t, ":8080", cfg.Addr)
	})

	t.Run("ExplicitFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/srv/chat/data"
addr = ":9090"
extra_stopwords = ["lol"]

[users]
maks = "Maxat"
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/srv/chat/data", cfg.DataDir)
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, []string{"lol"}, cfg.ExtraStopwords)

		// file values override defaults, untouched keys keep them
		assert.Equal(t, "outputs", cfg.OutputDir)

		aliases := cfg.Aliases()
		assert.Equal(t, "Maxat", aliases["maks"])
		assert.Equal(t, "Dias", aliases["dias"]) // built-in survives the merge
	})

	t.Run("ExplicitMissingFileIsError", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("EnvPointsAtFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`addr = ":7070"`), 0o644))
		t.Setenv("NEHAZARS_CONFIG", path)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Addr)
	})

	t.Run("ConfigUserOverridesBuiltin", func(t *testing.T) {
		cfg := &Config{Users: map[string]string{"maksat": "Maksat K."}}
		aliases := cfg.Aliases()
		assert.Equal(t, "Maksat K.", aliases["maksat"])
	})
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "exports"), expandHome("~/exports", "/home/u"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path", "/home/u"))
	assert.Equal(t, "~", expandHome("~", "/home/u"))
}
