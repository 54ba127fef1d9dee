package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Config is the YAML settings file read with --config
type Config struct {
	Keywords      []string `yaml:"keywords"`
	MaxDepth      *int     `yaml:"max_depth"`
	NestedMembers bool     `yaml:"nested_members"`
	Jobs          int      `yaml:"jobs"`
	// Requires is a version constraint on eopcheck itself, e.g. ">= 0.1, < 2"
	Requires string `yaml:"requires"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("config %s: jobs must not be negative", path)
	}
	return &cfg, nil
}

// checkVersion fails if the running version does not satisfy Requires
func (c *Config) checkVersion(v string) error {
	if c.Requires == "" {
		return nil
	}
	cons, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("config requires %q: %w", c.Requires, err)
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	if ok, errs := cons.Validate(sv); !ok {
		return fmt.Errorf("eopcheck %s does not satisfy %q: %w", v, c.Requires, errors.Join(errs...))
	}
	return nil
}
