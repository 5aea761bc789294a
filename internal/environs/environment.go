// Package environs generates the constrained conda environment file the
// image build consumes. The reference file from the development environment
// carries far more than the scoring container needs, so generation keeps only
// the pinned interpreter and an explicit package whitelist.
package environs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"model-deploy-service/internal/core/domain"
)

// DefaultPythonVersion is the interpreter pin used when Options leaves it
// empty.
const DefaultPythonVersion = "3.6"

// Environment is the conda environment file shape, top-level keys only.
type Environment struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []any    `yaml:"dependencies"`
}

// Options constrains what Generate keeps.
type Options struct {
	Name          string
	PythonVersion string
	CondaPackages []string
	PipPackages   []string
}

// Generate reads the reference environment file and produces a constrained
// environment: the pinned interpreter first, then exactly the requested conda
// whitelist, then the pip whitelist. Channels are carried over from the
// reference; everything else in it is ignored.
func Generate(referencePath string, opts Options) (*Environment, error) {
	data, err := os.ReadFile(referencePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, referencePath)
		}
		return nil, fmt.Errorf("read reference environment: %w", err)
	}

	var ref Environment
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("parse reference environment %s: %w", referencePath, err)
	}

	pythonVersion := opts.PythonVersion
	if pythonVersion == "" {
		pythonVersion = DefaultPythonVersion
	}
	name := opts.Name
	if name == "" {
		name = "scoring-env"
	}

	deps := make([]any, 0, len(opts.CondaPackages)+2)
	deps = append(deps, "python="+pythonVersion)
	for _, pkg := range opts.CondaPackages {
		deps = append(deps, pkg)
	}
	if len(opts.PipPackages) > 0 {
		deps = append(deps, map[string][]string{"pip": opts.PipPackages})
	}

	return &Environment{
		Name:         name,
		Channels:     ref.Channels,
		Dependencies: deps,
	}, nil
}

// Write serializes the environment to path, creating parent directories.
func (e *Environment) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create environment dir: %w", err)
		}
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode environment: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write environment: %w", err)
	}
	return nil
}

// PythonPin returns the interpreter pin string of the environment, or "" if
// absent.
func (e *Environment) PythonPin() string {
	for _, dep := range e.Dependencies {
		if s, ok := dep.(string); ok && len(s) > 7 && s[:7] == "python=" {
			return s
		}
	}
	return ""
}
