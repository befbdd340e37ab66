package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"trirast/internal/display"
	"trirast/internal/raster"
	"trirast/internal/scene"
)

// Config represents the application configuration
type Config struct {
	Width       int            `json:"width"`  // 0 fills the terminal
	Height      int            `json:"height"` // 0 fills the terminal
	Name        string         `json:"name"`
	Supersample int            `json:"supersample"`
	Coverage    string         `json:"coverage"`
	FrameMS     int            `json:"frame_ms"`
	Rotation    float64        `json:"rotation"` // radians per frame
	Scene       string         `json:"scene"`
	Colorer     string         `json:"colorer"`
	Seed        int64          `json:"seed"` // 0 seeds from the clock
	Plain       bool           `json:"plain"`
	LogFile     string         `json:"log_file"`
	Display     display.Config `json:"display"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Name:        "triangle",
		Supersample: raster.DefaultSupersample,
		Coverage:    raster.CoverageBarycentric.String(),
		FrameMS:     50,
		Rotation:    0.05,
		Scene:       "spin",
		Colorer:     "vertex",
		Display:     display.DefaultConfig(),
	}
}

// LoadConfig reads a JSON file over the defaults. Fields missing from the
// file keep their default value.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must not be negative", c.Width, c.Height))
	}
	if c.Supersample < 1 {
		errs = append(errs, fmt.Errorf("supersample %d must be at least 1", c.Supersample))
	}
	if _, ok := raster.ParseCoverageMode(c.Coverage); !ok {
		errs = append(errs, fmt.Errorf("unknown coverage mode %q", c.Coverage))
	}
	if c.FrameMS <= 0 {
		errs = append(errs, fmt.Errorf("frame_ms %d must be positive", c.FrameMS))
	}
	if !slices.Contains(scene.Kinds, c.Scene) {
		errs = append(errs, fmt.Errorf("unknown scene %q", c.Scene))
	}
	if _, ok := scene.LookupColorer(c.Colorer); !ok {
		errs = append(errs, fmt.Errorf("unknown colorer %q", c.Colorer))
	}
	if err := c.Display.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FrameInterval is the delay between two animation frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameMS) * time.Millisecond
}

// CoverageMode returns the parsed coverage mode.
func (c *Config) CoverageMode() raster.CoverageMode {
	m, _ := raster.ParseCoverageMode(c.Coverage)
	return m
}

// RasterOptions returns the framebuffer options the config selects.
func (c *Config) RasterOptions() []raster.Option {
	return []raster.Option{
		raster.WithName(c.Name),
		raster.WithSupersample(c.Supersample),
		raster.WithCoverage(c.CoverageMode()),
	}
}

// Rand returns the random source for scene generation.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
