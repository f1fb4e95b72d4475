package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the tracker.
type Config struct {
	DataDir     string `env:"SKILLTRACK_DATA_DIR"`
	CatalogPath string `env:"SKILLTRACK_CATALOG"`
	LogPath     string `env:"SKILLTRACK_LOG"`
	UserName    string `env:"SKILLTRACK_USER"`
	ASCIIOnly   bool   `env:"SKILLTRACK_ASCII"`
	Debug       bool   `env:"SKILLTRACK_DEBUG"`
	UI          UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"SKILLTRACK_THEME"`
	MotionLevel  string `env:"SKILLTRACK_MOTION"`
}

func DefaultConfig() Config {
	return Config{
		UserName: "learner",
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MotionLevel:  "full",
		},
	}
}

// FromEnv layers SKILLTRACK_* environment variables over the defaults.
// Flags in main may still override the result before Validate.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	if c.UserName == "" {
		c.UserName = "learner"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "skilltrack")
	}

	return nil
}
