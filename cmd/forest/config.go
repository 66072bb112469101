package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config drives the demo. Every field has a default so the program runs
// without a config file.
type Config struct {
	Window WindowConfig `toml:"window"`
	Map    MapConfig    `toml:"map"`
	Atlas  AtlasConfig  `toml:"atlas"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Vsync  bool   `toml:"vsync"`
}

type MapConfig struct {
	Cols        int     `toml:"cols"`
	Rows        int     `toml:"rows"`
	TileSize    float32 `toml:"tile_size"`
	Seed        int64   `toml:"seed"`
	MutateEvery int     `toml:"mutate_every"`
}

type AtlasConfig struct {
	// Path points at a PNG atlas; empty means procedural.
	Path      string `toml:"path"`
	HalfTexel bool   `toml:"half_texel"`
}

func defaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 960, Height: 640, Title: "moss forest", Vsync: true},
		Map:    MapConfig{Cols: 48, Rows: 32, TileSize: 32, Seed: 1, MutateEvery: 90},
		Atlas:  AtlasConfig{HalfTexel: true},
	}
}

// loadConfig reads the TOML file at path over the defaults. A missing file
// is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %q: %w", path, err)
	}
	if cfg.Map.Cols <= 0 || cfg.Map.Rows <= 0 {
		return cfg, fmt.Errorf("config %q: map dimensions must be positive", path)
	}
	return cfg, nil
}
