// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Manifest is a dictionary registry: it maps a resource type name
// (e.g. "Chassis.v1_14_0") to the schema dictionary used to decode
// it, plus a shared annotation dictionary used across all types.
type Manifest struct {
	// DictionaryDir is the base directory dictionary paths are resolved
	// against when they are not absolute. May itself use ${VAR} syntax.
	DictionaryDir string `yaml:"dictionary_dir"`

	// Annotation is the global annotation dictionary path, shared by
	// every resource type unless a TypeEntry overrides it.
	Annotation string `yaml:"annotation"`

	// Types maps a resource type name to its dictionary entry.
	Types map[string]TypeEntry `yaml:"types"`
}

// TypeEntry names the dictionaries for a single resource type.
type TypeEntry struct {
	// Schema is the schema dictionary path for this resource type.
	Schema string `yaml:"schema"`

	// Annotation overrides the manifest's global annotation dictionary
	// for this resource type. Usually left empty.
	Annotation string `yaml:"annotation,omitempty"`
}

// Load loads a manifest from the BEJ_REGISTRY environment variable.
//
// This is the only way to load a manifest without an explicit path.
// There is no fallback - if BEJ_REGISTRY is not set, this fails.
func Load() (*Manifest, error) {
	path := os.Getenv("BEJ_REGISTRY")
	if path == "" {
		return nil, fmt.Errorf("BEJ_REGISTRY environment variable not set; " +
			"set it to the path of your registry.yaml manifest, or use --registry")
	}
	return LoadFile(path)
}

// LoadFile loads a manifest from a specific file path.
//
// ${VAR} and ${VAR:-default} references in DictionaryDir, Annotation,
// and each TypeEntry's paths are expanded against the process
// environment, plus BEJ_REGISTRY_DIR which resolves to the manifest
// file's own directory. This lets a manifest locate dictionaries
// relative to itself without hardcoding an absolute path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing registry manifest %s: %w", path, err)
	}

	m.expandVariables(filepath.Dir(path))

	return &m, nil
}

// expandVariables expands ${VAR} references in all path fields.
func (m *Manifest) expandVariables(manifestDir string) {
	vars := map[string]string{
		"BEJ_REGISTRY_DIR": manifestDir,
	}

	m.DictionaryDir = expandVars(m.DictionaryDir, vars)
	m.Annotation = expandVars(m.Annotation, vars)

	for name, entry := range m.Types {
		entry.Schema = expandVars(entry.Schema, vars)
		entry.Annotation = expandVars(entry.Annotation, vars)
		m.Types[name] = entry
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the manifest for structural errors: every resource
// type must name a schema dictionary, and the global annotation
// dictionary must be set unless every type overrides it.
func (m *Manifest) Validate() error {
	var errs []error

	if len(m.Types) == 0 {
		errs = append(errs, fmt.Errorf("registry manifest declares no resource types"))
	}

	for name, entry := range m.Types {
		if entry.Schema == "" {
			errs = append(errs, fmt.Errorf("type %q: schema dictionary is required", name))
		}
		if m.Annotation == "" && entry.Annotation == "" {
			errs = append(errs, fmt.Errorf("type %q: no annotation dictionary (neither manifest-level nor per-type)", name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Resolve returns the schema and annotation dictionary paths for the
// named resource type, resolving relative paths against DictionaryDir.
func (m *Manifest) Resolve(resourceType string) (schemaPath, annotationPath string, err error) {
	entry, ok := m.Types[resourceType]
	if !ok {
		return "", "", fmt.Errorf("registry: unknown resource type %q", resourceType)
	}

	annotation := entry.Annotation
	if annotation == "" {
		annotation = m.Annotation
	}
	if annotation == "" {
		return "", "", fmt.Errorf("registry: no annotation dictionary for resource type %q", resourceType)
	}

	return m.resolvePath(entry.Schema), m.resolvePath(annotation), nil
}

// Names returns every resource type name registered in the manifest.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Types))
	for name := range m.Types {
		names = append(names, name)
	}
	return names
}

func (m *Manifest) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || m.DictionaryDir == "" {
		return p
	}
	return filepath.Join(m.DictionaryDir, p)
}
