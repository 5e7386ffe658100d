package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Presenter settings (laser pointer)
	Presenter PresenterConfig `yaml:"presenter"`

	// Media playback settings
	Media MediaConfig `yaml:"media"`

	mu   sync.Mutex
	path string
}

// PresenterConfig holds the presenter-window preferences
type PresenterConfig struct {
	Pointer     string `yaml:"pointer"`
	PointerMode string `yaml:"pointer_mode"`
}

// MediaConfig holds media backend settings
type MediaConfig struct {
	Backend      string `yaml:"backend"`
	MPVPath      string `yaml:"mpv_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	ShowControls bool   `yaml:"show_controls"`
	AutoPlay     bool   `yaml:"autoplay"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	cfg.path = path

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	c.mu.Lock()
	data, err := yaml.Marshal(c)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// Path returns the file this config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Get returns the string value of a section/key preference. Unknown
// section/key pairs return an error, this is a programming-error guard.
func (c *Config) Get(section, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch section + "." + key {
	case "presenter.pointer":
		return c.Presenter.Pointer, nil
	case "presenter.pointer_mode":
		return c.Presenter.PointerMode, nil
	case "media.backend":
		return c.Media.Backend, nil
	case "media.mpv_path":
		return c.Media.MPVPath, nil
	case "media.ffprobe_path":
		return c.Media.FFprobePath, nil
	default:
		return "", fmt.Errorf("unknown config entry %s.%s", section, key)
	}
}

// Set updates a section/key preference and persists the config if it was
// loaded from a file.
func (c *Config) Set(section, key, value string) error {
	c.mu.Lock()
	switch section + "." + key {
	case "presenter.pointer":
		c.Presenter.Pointer = value
	case "presenter.pointer_mode":
		c.Presenter.PointerMode = value
	case "media.backend":
		c.Media.Backend = value
	case "media.mpv_path":
		c.Media.MPVPath = value
	case "media.ffprobe_path":
		c.Media.FFprobePath = value
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown config entry %s.%s", section, key)
	}
	path := c.path
	c.mu.Unlock()

	if path == "" {
		return nil
	}
	return c.Save(path)
}

func defaultConfig() *Config {
	return &Config{
		Presenter: PresenterConfig{
			Pointer:     "red",
			PointerMode: "manual",
		},
		Media: MediaConfig{
			Backend:      "mpv",
			MPVPath:      "mpv",
			FFprobePath:  "ffprobe",
			ShowControls: true,
			AutoPlay:     false,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./beamview.yaml",
		"./beamview.yml",
		filepath.Join(os.Getenv("HOME"), ".beamview", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
