// Package config loads sketchbook settings from an optional YAML file with
// SKETCHBOOK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Canvas Canvas `yaml:"canvas"`
	FPS    int    `yaml:"fps"`
	// Seed for every random source; 0 picks a time-based seed.
	Seed   int64  `yaml:"seed"`
	Log    Log    `yaml:"log"`
	Data   Data   `yaml:"data"`
	Camera Camera `yaml:"camera"`
	Scene  Scene  `yaml:"scene"`
}

type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Log struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Data locates the remote data files. When BaseURL is set the files are
// fetched over HTTP relative to it, otherwise they are read from Dir.
type Data struct {
	Dir         string `yaml:"dir"`
	BaseURL     string `yaml:"base_url"`
	Stations    string `yaml:"stations"`
	Streamgraph string `yaml:"streamgraph"`
}

// Scene tunes the sphere scene. With the floor off and some gravity the
// spheres fall through and are removed.
type Scene struct {
	Floor   bool    `yaml:"floor"`
	Gravity float64 `yaml:"gravity"`
}

// Camera maps terminal input onto the pixel deltas the controller expects.
type Camera struct {
	PixelsPerCellX float64 `yaml:"pixels_per_cell_x"`
	PixelsPerCellY float64 `yaml:"pixels_per_cell_y"`
	WheelDelta     float64 `yaml:"wheel_delta"`
}

func Default() Config {
	return Config{
		Canvas: Canvas{Width: 800, Height: 400},
		FPS:    30,
		Log:    Log{Path: "sketchbook.log", Level: "info"},
		Data: Data{
			Dir:         ".",
			Stations:    "subway-stations.geojson",
			Streamgraph: "streamgraph.csv",
		},
		Camera: Camera{PixelsPerCellX: 8, PixelsPerCellY: 16, WheelDelta: 40},
		Scene:  Scene{Floor: true},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment. A missing file is an error only when path was given.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Canvas.Width = getEnvInt("SKETCHBOOK_CANVAS_WIDTH", c.Canvas.Width)
	c.Canvas.Height = getEnvInt("SKETCHBOOK_CANVAS_HEIGHT", c.Canvas.Height)
	c.FPS = getEnvInt("SKETCHBOOK_FPS", c.FPS)
	c.Seed = int64(getEnvInt("SKETCHBOOK_SEED", int(c.Seed)))
	c.Log.Path = getEnv("SKETCHBOOK_LOG_PATH", c.Log.Path)
	c.Log.Level = getEnv("SKETCHBOOK_LOG_LEVEL", c.Log.Level)
	c.Data.Dir = getEnv("SKETCHBOOK_DATA_DIR", c.Data.Dir)
	c.Data.BaseURL = getEnv("SKETCHBOOK_DATA_BASE_URL", c.Data.BaseURL)
	c.Data.Stations = getEnv("SKETCHBOOK_DATA_STATIONS", c.Data.Stations)
	c.Data.Streamgraph = getEnv("SKETCHBOOK_DATA_STREAMGRAPH", c.Data.Streamgraph)
	c.Scene.Floor = getEnvBool("SKETCHBOOK_SCENE_FLOOR", c.Scene.Floor)
	c.Scene.Gravity = getEnvFloat("SKETCHBOOK_SCENE_GRAVITY", c.Scene.Gravity)
}

func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps out of range: %d", c.FPS))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if c.Camera.PixelsPerCellX <= 0 || c.Camera.PixelsPerCellY <= 0 {
		errs = append(errs, errors.New("camera pixels per cell must be positive"))
	}
	if c.Scene.Gravity < 0 {
		errs = append(errs, fmt.Errorf("scene gravity must not be negative, got %g", c.Scene.Gravity))
	}
	return errors.Join(errs...)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return f
}
