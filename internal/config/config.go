package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"stopwatch_tui/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. STOPWATCH_FRAME_RATE.
const EnvPrefix = "STOPWATCH"

const maxFrameRate = 240

type Config struct {
	Frame   FrameConfig   `yaml:"frame"`
	Storage StorageConfig `yaml:"storage"`
	Logging LogConfig     `yaml:"logging"`
}

type FrameConfig struct {
	// Rate is the display refresh rate driving the stopwatch, in frames per
	// second.
	Rate int `yaml:"rate"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

func Default() *Config {
	log := logging.DefaultConfig()
	return &Config{
		Frame: FrameConfig{
			Rate: 60,
		},
		Storage: StorageConfig{
			Path: "stopwatch.db",
		},
		Logging: LogConfig{
			Level:       log.Level,
			Development: log.Development,
			File:        log.File,
		},
	}
}

// Load builds a Config from the defaults, then the YAML file at path (if
// path is set and the file exists), then STOPWATCH_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	return cfg, nil
}

// LoadOrCreate writes the defaults to path when no file exists there yet,
// then loads it as Load does.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Default().Save(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.Frame.Rate <= 0 || c.Frame.Rate > maxFrameRate {
		return fmt.Errorf("frame rate must be between 1 and %d, got %d", maxFrameRate, c.Frame.Rate)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is empty")
	}
	if c.Logging.File == "" {
		return fmt.Errorf("log file is empty")
	}
	return nil
}

func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Development: c.Logging.Development,
		File:        c.Logging.File,
	}
}

// Save writes c as YAML to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
