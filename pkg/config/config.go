// Package config loads the YAML configuration of the capture application.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/intothevoid/shutter/pkg/camera"
	"gopkg.in/yaml.v3"
)

// CameraConfig describes which devices back each position.
type CameraConfig struct {
	Position    string `yaml:"position"`     // "back" or "front"
	BackDevice  *int   `yaml:"back_device"`  // OpenCV index, -1 = none
	FrontDevice *int   `yaml:"front_device"` // OpenCV index, -1 = none
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

// PreviewConfig controls the live preview.
type PreviewConfig struct {
	FPS int `yaml:"fps"`
}

// PhotoConfig controls still encoding.
type PhotoConfig struct {
	Format      string `yaml:"format"`       // "jpeg" or "png"
	JPEGQuality int    `yaml:"jpeg_quality"` // 1-100
}

// LogConfig controls logging.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config aggregates all application configuration.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Preview PreviewConfig `yaml:"preview"`
	Photo   PhotoConfig   `yaml:"photo"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.applyDefaults(); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads a YAML file and returns the configuration.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Camera.Position == "" {
		c.Camera.Position = "back"
	}
	if _, err := camera.ParsePosition(c.Camera.Position); err != nil {
		return fmt.Errorf("camera.position: %w", err)
	}
	if c.Camera.BackDevice == nil {
		c.Camera.BackDevice = intPtr(0)
	}
	if c.Camera.FrontDevice == nil {
		c.Camera.FrontDevice = intPtr(1)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 {
		return fmt.Errorf("camera resolution must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.Width == 0 || c.Camera.Height == 0 {
		c.Camera.Width, c.Camera.Height = 1280, 720
	}

	if c.Preview.FPS < 0 || c.Preview.FPS > 120 {
		return fmt.Errorf("preview.fps must be between 1 and 120, got %d", c.Preview.FPS)
	}
	if c.Preview.FPS == 0 {
		c.Preview.FPS = 30
	}

	switch c.Photo.Format {
	case "":
		c.Photo.Format = "jpeg"
	case "jpeg", "png":
	default:
		return fmt.Errorf("photo.format must be jpeg or png, got %q", c.Photo.Format)
	}
	if c.Photo.JPEGQuality < 0 || c.Photo.JPEGQuality > 100 {
		return fmt.Errorf("photo.jpeg_quality must be between 1 and 100, got %d", c.Photo.JPEGQuality)
	}
	if c.Photo.JPEGQuality == 0 {
		c.Photo.JPEGQuality = camera.DefaultPhotoSettings().Quality
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

func intPtr(v int) *int { return &v }

// Position returns the configured initial camera position.
func (c *Config) Position() camera.Position {
	p, _ := camera.ParsePosition(c.Camera.Position)
	return p
}

// FrameInterval returns the delay between two preview reads.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Preview.FPS)
}

// PhotoSettings returns the still capture settings.
func (c *Config) PhotoSettings() camera.PhotoSettings {
	return camera.PhotoSettings{Format: c.Photo.Format, Quality: c.Photo.JPEGQuality}
}
