// Package config loads the YAML configuration of the bordertax CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Dataset Dataset `yaml:"dataset"`
	Bench   Bench   `yaml:"bench"`
	Output  Output  `yaml:"output"`
	Log     Log     `yaml:"log"`
}

// Dataset controls synthetic entity generation.
type Dataset struct {
	Size        int     `yaml:"size"`
	ActiveRatio float64 `yaml:"active_ratio"`
	Seed        uint64  `yaml:"seed"`
	// MalformedEvery drops the active member from every N-th loose entity
	// (0 disables it).
	MalformedEvery int `yaml:"malformed_every"`
}

// Bench controls the per-operation timing harness.
type Bench struct {
	Iterations int `yaml:"iterations"`
}

// Output selects the report format.
type Output struct {
	Format string `yaml:"format"` // table, json or yaml
}

// Log configures the CLI logger and issue message language.
type Log struct {
	Level    string `yaml:"level"`
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Dataset: Dataset{Size: 10000, ActiveRatio: 0.5, Seed: 42},
		Bench:   Bench{Iterations: 100000},
		Output:  Output{Format: "table"},
		Log:     Log{Level: "info", Language: "en"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default, rejecting unknown keys, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Dataset.Size < 0 {
		errs = append(errs, fmt.Errorf("dataset.size must be >= 0, got %d", c.Dataset.Size))
	}
	if c.Dataset.ActiveRatio < 0 || c.Dataset.ActiveRatio > 1 {
		errs = append(errs, fmt.Errorf("dataset.active_ratio must be within [0,1], got %v", c.Dataset.ActiveRatio))
	}
	if c.Dataset.MalformedEvery < 0 {
		errs = append(errs, fmt.Errorf("dataset.malformed_every must be >= 0, got %d", c.Dataset.MalformedEvery))
	}
	if c.Bench.Iterations < 2 {
		errs = append(errs, fmt.Errorf("bench.iterations must be >= 2, got %d", c.Bench.Iterations))
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format must be table, json or yaml, got %q", c.Output.Format))
	}
	switch c.Log.Language {
	case "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("log.language must be en or ja, got %q", c.Log.Language))
	}
	return errors.Join(errs...)
}
