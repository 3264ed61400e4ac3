package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Graphics.FOV)
	}
	if cfg.Graphics.ScreenshotFormat != "png" {
		t.Errorf("expected png screenshots, got %q", cfg.Graphics.ScreenshotFormat)
	}
	if cfg.Graphics.Light.Latitude != 50 {
		t.Errorf("expected light latitude 50, got %v", cfg.Graphics.Light.Latitude)
	}

	if cfg.Assets.ModelScale != 1.0 {
		t.Errorf("expected model scale 1.0, got %f", cfg.Assets.ModelScale)
	}
	if !cfg.Assets.FlipTextures || !cfg.Assets.GenerateMipmaps {
		t.Error("expected texture flipping and mipmaps on by default")
	}
	if len(cfg.Assets.Models) != 0 {
		t.Errorf("expected no default models, got %v", cfg.Assets.Models)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 60
  clear_color: [0.2, 0.3, 0.4]

assets:
  models:
    - "models/house.obj"
    - "models/tree.obj"
  model_scale: 0.01
  max_texture_size: 512
  flip_textures: false

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Graphics.FOV)
	}
	if cfg.Graphics.ClearColor != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("expected clear color [0.2 0.3 0.4], got %v", cfg.Graphics.ClearColor)
	}

	if len(cfg.Assets.Models) != 2 || cfg.Assets.Models[1] != "models/tree.obj" {
		t.Errorf("unexpected models %v", cfg.Assets.Models)
	}
	if cfg.Assets.ModelScale != 0.01 {
		t.Errorf("expected model scale 0.01, got %f", cfg.Assets.ModelScale)
	}
	if cfg.Assets.MaxTextureSize != 512 {
		t.Errorf("expected max texture size 512, got %d", cfg.Assets.MaxTextureSize)
	}
	if cfg.Assets.FlipTextures {
		t.Error("expected flip_textures to be false")
	}
	// Not in the file: default kept
	if !cfg.Assets.GenerateMipmaps {
		t.Error("expected generate_mipmaps to keep its default")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"zero fov", func(c *Config) { c.Graphics.FOV = 0 }},
		{"fov 180", func(c *Config) { c.Graphics.FOV = 180 }},
		{"zero scale", func(c *Config) { c.Assets.ModelScale = 0 }},
		{"negative texture size", func(c *Config) { c.Assets.MaxTextureSize = -4 }},
		{"screenshot format", func(c *Config) { c.Graphics.ScreenshotFormat = "bmp" }},
		{"light latitude", func(c *Config) { c.Graphics.Light.Latitude = 120 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		args     []string
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "scale flag",
			setup: func() { *flagScale = 2.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.ModelScale != 2.5 {
					t.Errorf("expected model scale 2.5, got %f", cfg.Assets.ModelScale)
				}
			},
			teardown: func() { *flagScale = 0 },
		},
		{
			name:  "positional models",
			setup: func() {},
			args:  []string{"a.obj", "b.obj"},
			verify: func(t *testing.T, cfg *Config) {
				if len(cfg.Assets.Models) != 2 || cfg.Assets.Models[0] != "a.obj" {
					t.Errorf("expected models [a.obj b.obj], got %v", cfg.Assets.Models)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg, tt.args)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("assets:\n  model_scale: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Assets.Models = []string{"scene/root.obj"}
	cfg.Graphics.FOV = 70
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Graphics.FOV != 70 || len(loaded.Assets.Models) != 1 || loaded.Assets.Models[0] != "scene/root.obj" {
		t.Errorf("reloaded config = %+v", loaded)
	}
}
