package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the stylic.toml manifest. Every field has a default; an
// empty or missing manifest behaves like the zero configuration.
type Config struct {
	Primitive PrimitiveConfig `toml:"primitive"`
	Attrs     AttrConfig      `toml:"attributes"`
	Extract   ExtractConfig   `toml:"extract"`
}

// PrimitiveConfig names the styling primitive the extractor matches.
type PrimitiveConfig struct {
	// Source is the import specifier providing the primitive.
	Source string `toml:"source"`
	// Name is the exported name; "default" matches a default import.
	Name string `toml:"name"`
}

// AttrConfig names the reserved attributes.
type AttrConfig struct {
	CSS   string `toml:"css"`
	Class string `toml:"class"`
}

// ExtractConfig controls extraction output and strictness.
type ExtractConfig struct {
	// Static escalates every fallback to an error, as if each file
	// carried an all-static directive.
	Static bool `toml:"static"`
	// Stylesheet is where the generated CSS goes, relative to the
	// project root.
	Stylesheet string `toml:"stylesheet"`
	// ClassPrefix seeds generated class names.
	ClassPrefix string `toml:"class_prefix"`
}

// DefaultConfig returns the configuration used when no manifest exists.
func DefaultConfig() Config {
	return Config{
		Primitive: PrimitiveConfig{
			Source: "@stylic/core",
			Name:   "styled",
		},
		Attrs: AttrConfig{
			CSS:   "css",
			Class: "className",
		},
		Extract: ExtractConfig{
			Stylesheet:  "stylic.css",
			ClassPrefix: "sc",
		},
	}
}

// LoadConfig reads stylic.toml and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return cfg, fmt.Errorf("%s: unknown key %q", path, key)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Primitive.Source) == "" {
		return fmt.Errorf("primitive.source must not be empty")
	}
	if strings.TrimSpace(c.Primitive.Name) == "" {
		return fmt.Errorf("primitive.name must not be empty")
	}
	if c.Attrs.CSS == c.Attrs.Class {
		return fmt.Errorf("attributes.css and attributes.class must differ")
	}
	return nil
}
