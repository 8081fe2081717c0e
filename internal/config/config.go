// Package config loads and validates the site configuration file
// (sitebuilder.toml). The rest of the build consumes only the resolved
// Config value; it never re-reads the file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Config is the resolved site configuration, immutable for one build.
type Config struct {
	Site   Site           `toml:"site"`
	Params map[string]any `toml:"params"`
}

// Site holds the fixed site fields.
type Site struct {
	// BaseURL is the site base URL, fed to the absURL template function.
	BaseURL string `toml:"baseURL"`

	// OutDir is where rendered pages and synced assets land.
	OutDir string `toml:"publishdir"`

	// Content is the directory tree whose templates each produce one page.
	Content string `toml:"content"`

	// Theme is the optional directory tree of partials and layouts.
	Theme string `toml:"theme,omitempty"`

	// Assets is the optional static tree mirrored into OutDir.
	Assets string `toml:"assets,omitempty"`

	// Strict makes unresolved context references a hard render error
	// instead of a silent empty substitution.
	Strict bool `toml:"strict"`
}

// Load reads and resolves the configuration at configPath. Environment
// variables referenced in the file are expanded, after .env/.env.local (if
// present) have been loaded into the process environment.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", logfields.Error(err))
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.ConfigInvalid(err, configPath)
	}

	var cfg Config
	if err := toml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigInvalid(err, configPath)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads the first readable env file into the process environment.
// Existing environment variables are never overridden.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

func (c *Config) applyDefaults() {
	if c.Site.OutDir == "" {
		c.Site.OutDir = "./html"
	}
	if c.Params == nil {
		c.Params = map[string]any{}
	}
}

// Validate checks the fields the build cannot proceed without.
func (c *Config) Validate() error {
	if c.Site.Content == "" {
		return errors.ConfigRequired("site.content")
	}
	if c.Site.BaseURL == "" {
		return errors.ConfigRequired("site.baseURL")
	}
	return nil
}

// Save writes the configuration to path in TOML form.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.ConfigInvalid(err, path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WriteFailed(err, path)
	}
	return nil
}
