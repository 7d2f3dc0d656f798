// Package config loads reader settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultObject is the book opened when no source is given.
const DefaultObject = "eBook/Mobidick.epub"

const defaultLinesPerPage = 20

// InfoField names a meta label and the heading it is shown under on the
// info page.
type InfoField struct {
	Key     string `yaml:"key"`
	Heading string `yaml:"heading"`
}

// Config holds the settings from config.yaml.
type Config struct {
	Bucket       string      `yaml:"bucket"`
	Endpoint     string      `yaml:"endpoint"`
	Object       string      `yaml:"object"`
	CacheDir     string      `yaml:"cache_dir"`
	LinesPerPage int         `yaml:"lines_per_page"`
	InfoFields   []InfoField `yaml:"info_fields"`
	LogFile      string      `yaml:"log_file"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Object:       DefaultObject,
		CacheDir:     defaultCacheDir(),
		LinesPerPage: defaultLinesPerPage,
		InfoFields: []InfoField{
			{Key: "Release date", Heading: "Release Date"},
			{Key: "Language", Heading: "Language"},
			{Key: "Credits", Heading: "Credits"},
		},
	}
}

// Load reads path over the defaults. Fields left out of the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Object == "" {
		c.Object = def.Object
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.LinesPerPage < 1 {
		c.LinesPerPage = def.LinesPerPage
	}
	if len(c.InfoFields) == 0 {
		c.InfoFields = def.InfoFields
	}
	for i, f := range c.InfoFields {
		if f.Heading == "" {
			c.InfoFields[i].Heading = f.Key
		}
	}
}

// DefaultPath returns XDG_CONFIG_HOME/prr/config.yaml or ~/.config/prr/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "prr", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "prr", "config.yaml")
}

// defaultCacheDir returns XDG_CACHE_HOME/prr or ~/.cache/prr
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "prr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "prr")
}
