// Package config loads the ticker list and runtime settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/franco-grobler/tickerbar/internal/feed"
	"github.com/franco-grobler/tickerbar/internal/market"
	binancestream "github.com/franco-grobler/tickerbar/pkg/binance-stream"
)

// DefaultPath is the configuration location used when none is given.
const DefaultPath = "~/.config/tickerbar/config.yaml"

// 'Enum' for Feed.Source
const (
	SourceWebsocket = "websocket"
	SourceREST      = "rest"
)

var (
	// ErrPathExpansion is returned when a path references an unknown variable.
	ErrPathExpansion = errors.New("path expansion failed")
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("invalid configuration")
)

//go:embed config.example.yaml
var example []byte

var validate = validator.New()

// Example returns the content written to a missing configuration file.
func Example() []byte {
	return append([]byte(nil), example...)
}

// Ticker is one tracked symbol.
type Ticker struct {
	Name string `yaml:"name" validate:"required"`
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// Config holds everything read from the configuration file.
type Config struct {
	Tickers []Ticker `yaml:"tickers" validate:"required,min=1,dive"`

	Feed struct {
		Source       string        `yaml:"source" validate:"oneof=websocket rest"`
		Streams      string        `yaml:"streams" validate:"oneof=all symbols"`
		WSURL        string        `yaml:"ws_url"`
		APIURL       string        `yaml:"api_url"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"feed"`

	Engine struct {
		Update       string `yaml:"update" validate:"oneof=replace rolling"`
		OnParseError string `yaml:"on_parse_error" validate:"oneof=abort skip validate"`
	} `yaml:"engine"`

	Log struct {
		Level string `yaml:"level" validate:"oneof=panic fatal error warn warning info debug trace"`
	} `yaml:"log"`
}

// Default returns a configuration with every optional field set.
func Default() *Config {
	cfg := &Config{}
	cfg.Feed.Source = SourceWebsocket
	cfg.Feed.Streams = string(feed.AllStreams)
	cfg.Feed.WSURL = binancestream.WSEndpoint
	cfg.Feed.APIURL = binancestream.APIEndpoint
	cfg.Feed.PollInterval = feed.DefaultPollInterval
	cfg.Engine.Update = "replace"
	cfg.Engine.OnParseError = "abort"
	cfg.Log.Level = logrus.WarnLevel.String()
	return cfg
}

// Expand resolves a leading "~" and $VAR or ${VAR} references in path.
// A reference to an unset variable is an error.
func Expand(path string) (string, error) {
	var missing []string
	expanded := os.Expand(path, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s: unset variable %s", ErrPathExpansion, path, strings.Join(missing, ", "))
	}

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrPathExpansion, path, err)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded, nil
}

// CreateIfNotExists writes the example configuration to path, creating
// parent directories, unless a file is already there. It reports whether
// the file was created.
func CreateIfNotExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, example, 0o644); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}

// Load expands path, creates it from the example if missing, then reads
// and validates it.
func Load(path string) (*Config, error) {
	resolved, err := Expand(path)
	if err != nil {
		return nil, err
	}

	if created, err := CreateIfNotExists(resolved); err != nil {
		return nil, err
	} else if created {
		logrus.WithField("path", resolved).Info("created default configuration")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch c.Feed.Source {
	case SourceWebsocket:
		if !strings.HasPrefix(c.Feed.WSURL, "ws://") && !strings.HasPrefix(c.Feed.WSURL, "wss://") {
			return fmt.Errorf("%w: invalid ws_url: %s", ErrInvalid, c.Feed.WSURL)
		}
	case SourceREST:
		if !strings.HasPrefix(c.Feed.APIURL, "http://") && !strings.HasPrefix(c.Feed.APIURL, "https://") {
			return fmt.Errorf("%w: invalid api_url: %s", ErrInvalid, c.Feed.APIURL)
		}
		if c.Feed.PollInterval <= 0 {
			return fmt.Errorf("%w: poll_interval must be positive", ErrInvalid)
		}
	}

	return nil
}

// Definitions builds the ticker definition table.
func (c *Config) Definitions() (*market.Definitions, error) {
	defs := make([]market.Definition, 0, len(c.Tickers))
	for _, t := range c.Tickers {
		defs = append(defs, market.Definition{Symbol: t.Name, Base: t.From, Quote: t.To})
	}
	return market.NewDefinitions(defs)
}

// EngineOptions maps the engine section to market engine options.
// The values are assumed to have passed Validate.
func (c *Config) EngineOptions() []market.Option {
	update, _ := market.ParseUpdatePolicy(c.Engine.Update)
	onError, _ := market.ParseErrorPolicy(c.Engine.OnParseError)
	return []market.Option{
		market.WithUpdatePolicy(update),
		market.WithErrorPolicy(onError),
	}
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
