package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after a successful load.
const (
	DefaultPort          = 16180
	DefaultScanInterval  = 60 // seconds
	DefaultNumDepartures = 3
	DefaultPolicy        = "slots"
)

// defaultPaths are tried in order when Load is called without a path.
var defaultPaths = []string{"sl-departures.yml", "config.yml"}

// Load reads and validates the application configuration. An empty path
// tries the default file locations.
func Load(path string) (*AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = defaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	names := map[string]bool{}
	for i, b := range cfg.Boards {
		if err := v.Struct(b); err != nil {
			return nil, fmt.Errorf("board %d (%s): %w", i, b.Name, err)
		}
		if names[b.Name] {
			return nil, fmt.Errorf("board %d: duplicate name %q", i, b.Name)
		}
		names[b.Name] = true
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	for i := range cfg.Boards {
		b := &cfg.Boards[i]
		if b.ScanInterval == 0 {
			b.ScanInterval = DefaultScanInterval
		}
		if b.NumDepartures == 0 {
			b.NumDepartures = DefaultNumDepartures
		}
		if b.Policy == "" {
			b.Policy = DefaultPolicy
		}
		if len(b.TransportModes) == 0 {
			b.TransportModes = []string{"TRAIN"}
		}
	}
}

// ErrNoBoards reports a configuration without any boards. Kept for
// callers that build an AppConfig programmatically and skip Load.
var ErrNoBoards = errors.New("configuration has no boards")

// Validate checks a programmatically built configuration the same way
// Load does, defaults included.
func (cfg *AppConfig) Validate() error {
	if len(cfg.Boards) == 0 {
		return ErrNoBoards
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	applyDefaults(cfg)
	return nil
}
