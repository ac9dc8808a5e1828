// Package config loads sampling settings from YAML files.
package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/internalerr"
	"github.com/cognicore/korpus/pkg/korpus/sample"
)

// Table points at the tabular corpus source.
type Table struct {
	Path       string `yaml:"path"`
	Name       string `yaml:"name"`
	TextColumn string `yaml:"text_column"`
}

// Config carries the sampling knobs and the corpus source.
type Config struct {
	SubsampleThreshold float64 `yaml:"subsample_threshold"`
	Window             int     `yaml:"window"`
	NumNegative        int     `yaml:"num_negative"`
	MaxAttempts        int     `yaml:"max_attempts"`

	// Seed fixes the random source for reproducible runs; zero seeds from
	// the wall clock.
	Seed int64 `yaml:"seed"`

	Table Table `yaml:"table"`
}

// Default returns the reference settings.
func Default() Config {
	return Config{
		SubsampleThreshold: corpus.DefaultSubsampleThreshold,
		Window:             sample.DefaultWindow,
		NumNegative:        sample.DefaultNumNegative,
		Table: Table{
			Name:       "articles",
			TextColumn: "abstract",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result. Keys
// absent from the file keep their Default() values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the samplers would reject.
func (c Config) Validate() error {
	if c.SubsampleThreshold < 0 {
		return fmt.Errorf("%w: subsample_threshold must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Window < 0 {
		return fmt.Errorf("%w: window must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.NumNegative < 0 {
		return fmt.Errorf("%w: num_negative must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: max_attempts must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Table.Path != "" {
		if c.Table.Name == "" {
			return fmt.Errorf("%w: table.name is required when table.path is set", internalerr.ErrInvalidConfig)
		}
		if c.Table.TextColumn == "" {
			return fmt.Errorf("%w: table.text_column is required when table.path is set", internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

// Rand returns the randomness source the config asks for: a generator
// seeded with Seed, or nil for a wall-clock seed (the samplers then seed
// themselves).
func (c Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.Seed))
}
