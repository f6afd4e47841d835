// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry loads a dictionary registry: a YAML manifest
// mapping Redfish resource type names to the schema and annotation
// dictionaries used to encode and decode them.
//
// A manifest is loaded from a single file specified by:
//   - BEJ_REGISTRY environment variable, or
//   - --registry flag passed to the command
//
// There are no fallbacks or automatic discovery. This keeps dictionary
// resolution deterministic and auditable: a tool run against the same
// manifest always resolves the same resource type to the same bytes.
package registry
