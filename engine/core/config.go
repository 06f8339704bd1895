package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"`
	MaxQuads   int        `toml:"max_quads"` // initial staging capacity hint
}

func DefaultConfig() Config {
	return Config{
		Title:      "ember",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		MaxQuads:   10000,
	}
}

// LoadConfig reads a TOML config file, applying defaults for absent keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
