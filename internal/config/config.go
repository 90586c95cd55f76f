// Package config loads the mkdocs.yml configuration that drives the
// general-documentation stage and identifies the package being documented.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/weygoldt/thunderfish/internal/errors"
)

const (
	// FileName is the fixed-name configuration file consumed by the
	// general-documentation tool, located at the package root.
	FileName = "mkdocs.yml"

	// DefaultPackage is the import name of the package handed to the API
	// reference extractor and used as a path segment in its output.
	DefaultPackage = "thunderfish"

	// DefaultDocsDir is mkdocs' conventional source directory.
	DefaultDocsDir = "docs"
)

// Config mirrors the subset of mkdocs.yml the orchestrator cares about. The
// file as a whole stays opaque to us; mkdocs owns its full semantics.
type Config struct {
	SiteName string `yaml:"site_name"`
	DocsDir  string `yaml:"docs_dir"`

	// Package is the identity of the documented package. Not part of
	// mkdocs.yml; defaults to DefaultPackage and may be overridden by the CLI.
	Package string `yaml:"-"`

	// Path is the absolute location the config was loaded from.
	Path string `yaml:"-"`
}

// Load reads and parses the mkdocs configuration at the package root.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.ConfigInvalid(path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigInvalid(path, fmt.Errorf("parse yaml: %w", err))
	}

	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
	cfg.Package = DefaultPackage
	cfg.Path = path
	return cfg, nil
}

// DocsPath returns the absolute markdown source directory for the given root.
func (c *Config) DocsPath(root string) string {
	if filepath.IsAbs(c.DocsDir) {
		return c.DocsDir
	}
	return filepath.Join(root, c.DocsDir)
}

// LoadEnv loads environment variables from .env/.env.local at the package
// root. Existing process environment variables are not overwritten. Missing
// files are not an error.
func LoadEnv(root string) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// godotenv.Load never overrides variables already present.
		_ = godotenv.Load(path)
	}
}
