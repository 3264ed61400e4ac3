package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg, flag.Args())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would break the viewer.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalid, c.Graphics.FOV)
	}
	if f := c.Graphics.ScreenshotFormat; f != "png" && f != "webp" {
		return fmt.Errorf("%w: screenshot_format %q", ErrInvalid, f)
	}
	if l := c.Graphics.Light.Latitude; l < -90 || l > 90 {
		return fmt.Errorf("%w: light latitude %v", ErrInvalid, l)
	}
	if c.Assets.ModelScale <= 0 {
		return fmt.Errorf("%w: model_scale %v", ErrInvalid, c.Assets.ModelScale)
	}
	if c.Assets.MaxTextureSize < 0 {
		return fmt.Errorf("%w: max_texture_size %d", ErrInvalid, c.Assets.MaxTextureSize)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ObjScene")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ObjScene")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "objscene")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "objscene")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
