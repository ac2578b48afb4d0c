package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// Config is the YAML pipeline configuration. Every field has a working
// default so an empty file (or no file) is a valid configuration.
type Config struct {
	Normalize  Normalize   `yaml:"normalize"`
	Epsilon    float64     `yaml:"epsilon"` // 0 means derive from vocabulary size
	TopK       int         `yaml:"top_k"`
	References []Reference `yaml:"references"`
	StorePath  string      `yaml:"store_path"`
	LLM        LLM         `yaml:"llm"`
}

// Normalize toggles the line-cleaning steps. The flags are inverted
// ("keep") so that the YAML zero value matches the default behavior of
// cleaning everything.
type Normalize struct {
	KeepHTML        bool `yaml:"keep_html"`
	KeepNumbers     bool `yaml:"keep_numbers"`
	KeepUncertainty bool `yaml:"keep_uncertainty"`
}

// Reference names one historical-language corpus to compare against.
type Reference struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LLM configures the optional hypothesis reviewer endpoint.
type LLM struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TopK: 20,
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must not be negative: %w", internalerr.ErrInvalidInput)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive: %w", internalerr.ErrInvalidInput)
	}
	for _, ref := range c.References {
		if ref.Name == "" || ref.Path == "" {
			return fmt.Errorf("reference entries need both name and path: %w", internalerr.ErrInvalidInput)
		}
	}
	return nil
}
