package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Tick    TickConfig    `yaml:"tick"`
	Player  PlayerConfig  `yaml:"player"`
	Clips   []string      `yaml:"clips"`
	Logging LoggingConfig `yaml:"logging"`
	DebugUI bool          `yaml:"debug_ui"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type TickConfig struct {
	// Rate is in ticks per second.
	Rate int `yaml:"rate"`
}

type PlayerConfig struct {
	Name  string  `yaml:"name"`
	Scene string  `yaml:"scene"`
	Speed float32 `yaml:"speed"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default mirrors the demo window: 1000x600, vsync, 60 ticks per second.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "rust game demo",
			Width:  1000,
			Height: 600,
			VSync:  true,
		},
		Tick: TickConfig{Rate: 60},
		Player: PlayerConfig{
			Name:  "ba",
			Scene: "ba.gltf#Scene0",
			Speed: 0.5,
		},
		Clips: []string{
			"ba.gltf#Animation2",
			"ba.gltf#Animation1",
			"ba.gltf#Animation0",
			"ba.gltf#Animation3",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file over Default and validates the result. Keys absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Tick.Rate <= 0 || c.Tick.Rate > 1000:
		return fmt.Errorf("%w: tick rate %d not in (0, 1000]", ErrInvalid, c.Tick.Rate)
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player speed %v must be positive", ErrInvalid, c.Player.Speed)
	case len(c.Clips) != 4:
		return fmt.Errorf("%w: want 4 clip names, got %d", ErrInvalid, len(c.Clips))
	}
	for i, name := range c.Clips {
		if name == "" {
			return fmt.Errorf("%w: clip %d is empty", ErrInvalid, i)
		}
	}
	return nil
}

// ClipNames returns the clip list as the fixed-size slot array the
// controller loads.
func (c *Config) ClipNames() [4]string {
	var names [4]string
	copy(names[:], c.Clips)
	return names
}

// TickSeconds is the fixed tick interval in seconds.
func (c *Config) TickSeconds() float64 {
	return 1 / float64(c.Tick.Rate)
}
