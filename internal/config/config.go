// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FOV        float32    `yaml:"fov"` // Vertical, degrees
	ClearColor [3]float32 `yaml:"clear_color"`

	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or webp

	Light LightConfig `yaml:"light"`
}

// LightConfig places the directional light.
type LightConfig struct {
	Longitude float32    `yaml:"longitude"` // Degrees around Y
	Latitude  float32    `yaml:"latitude"`  // Degrees above the horizon
	Color     [3]float32 `yaml:"color"`
}

// AssetsConfig holds model and texture loading settings.
type AssetsConfig struct {
	Models          []string `yaml:"models"`           // OBJ files; the first is the root node
	ModelScale      float32  `yaml:"model_scale"`      // Uniform scale applied at load
	MaxTextureSize  int      `yaml:"max_texture_size"` // 0 keeps source size
	FlipTextures    bool     `yaml:"flip_textures"`    // Flip rows for GL's bottom-left origin
	GenerateMipmaps bool     `yaml:"generate_mipmaps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			ClearColor: [3]float32{0.1, 0.1, 0.15},

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",

			Light: LightConfig{
				Longitude: 45,
				Latitude:  50,
				Color:     [3]float32{1, 1, 1},
			},
		},
		Assets: AssetsConfig{
			ModelScale:      1.0,
			MaxTextureSize:  4096,
			FlipTextures:    true,
			GenerateMipmaps: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
