package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"GopherMap/internal/logger"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

type WindowConfig struct {
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type ShaderConfig struct {
	// Dir overrides the built-in sources with "<name>.vertex.glsl" and
	// "<name>.fragment.glsl" files. Empty means built-in only.
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Config is the demo application configuration
type Config struct {
	Window  WindowConfig `toml:"window"`
	Shaders ShaderConfig `toml:"shaders"`
	Log     LogConfig    `toml:"log"`
}

// Default returns sensible defaults for every setting
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "GopherMap",
			VSync:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file is
// created with the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Log.Info("No config file found, using defaults", zap.String("path", path))
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path as TOML
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Shaders.Watch && c.Shaders.Dir == "" {
		return errors.New("shaders.watch needs shaders.dir")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
