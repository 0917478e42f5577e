package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/DiasStein2/NeHazars/internal/identity"
)

type Config struct {
	DataDir   string `toml:"data_dir"`
	UploadDir string `toml:"upload_dir"`
	OutputDir string `toml:"output_dir"`
	DBPath    string `toml:"db_path"`
	StaticDir string `toml:"static_dir"`
	Addr      string `toml:"addr"`

	// Users layers extra alias entries (lowercased first-name token ->
	// canonical name) over the built-in table.
	Users map[string]string `toml:"users"`

	ExtraStopwords []string `toml:"extra_stopwords"`
}

// Load reads the config file, falling back to defaults rooted in the current
// directory. An empty path checks NEHAZARS_CONFIG, then
// ~/.config/nehazars/config.toml; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir:   "data",
		UploadDir: filepath.Join("data", "uploads"),
		OutputDir: "outputs",
		DBPath:    filepath.Join("outputs", "nehazars.db"),
		StaticDir: "frontend",
		Addr:      ":8080",
	}

	home, _ := os.UserHomeDir()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("NEHAZARS_CONFIG")
		explicit = path != ""
	}
	if path == "" && home != "" {
		path = filepath.Join(home, ".config", "nehazars", "config.toml")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if explicit {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if home != "" {
		cfg.DataDir = expandHome(cfg.DataDir, home)
		cfg.UploadDir = expandHome(cfg.UploadDir, home)
		cfg.OutputDir = expandHome(cfg.OutputDir, home)
		cfg.DBPath = expandHome(cfg.DBPath, home)
		cfg.StaticDir = expandHome(cfg.StaticDir, home)
	}

	return cfg, nil
}

// Aliases merges the built-in alias table with the configured entries.
func (c *Config) Aliases() map[string]string {
	merged := make(map[string]string, len(identity.DefaultAliases)+len(c.Users))
	for k, v := range identity.DefaultAliases {
		merged[k] = v
	}
	for k, v := range c.Users {
		merged[k] = v
	}
	return merged
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
