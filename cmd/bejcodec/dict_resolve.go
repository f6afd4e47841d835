// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/cmd/bejcodec/clierr"
	"github.com/dmtf-tools/bej/lib/dictcache"
	"github.com/dmtf-tools/bej/lib/registry"
)

// dictFlags is the pair of ways every `dict` subcommand can be told
// which dictionary to operate on: an explicit schema/annotation path
// pair, or a registry manifest plus a resource type name to resolve
// against it.
type dictFlags struct {
	schemaPath     string
	annotationPath string
	registryPath   string
	resourceType   string
}

// resolve loads the schema dictionary (and, where available, the
// annotation dictionary) named by f, using whichever of the two
// addressing modes f carries.
func (f dictFlags) resolve(logger *slog.Logger, cache *dictcache.Cache) (schemaDict, annotDict *bej.Dictionary, resourceType string, err error) {
	if f.schemaPath != "" {
		schemaDict, err = loadDictionary(logger, cache, f.schemaPath)
		if err != nil {
			return nil, nil, "", err
		}
		if f.annotationPath != "" {
			annotDict, err = loadDictionary(logger, cache, f.annotationPath)
			if err != nil {
				return nil, nil, "", err
			}
		}
		return schemaDict, annotDict, f.resourceType, nil
	}

	if f.registryPath == "" || f.resourceType == "" {
		return nil, nil, "", clierr.Usage("either -s/--schema or both -r/--registry and -t/--type are required")
	}

	manifest, err := registry.LoadFile(f.registryPath)
	if err != nil {
		return nil, nil, "", err
	}
	if err := manifest.Validate(); err != nil {
		return nil, nil, "", err
	}

	schemaPath, annotationPath, err := manifest.Resolve(f.resourceType)
	if err != nil {
		return nil, nil, "", err
	}

	schemaDict, err = loadDictionary(logger, cache, schemaPath)
	if err != nil {
		return nil, nil, "", err
	}
	if annotationPath != "" {
		annotDict, err = loadDictionary(logger, cache, annotationPath)
		if err != nil {
			return nil, nil, "", err
		}
	}
	return schemaDict, annotDict, f.resourceType, nil
}
