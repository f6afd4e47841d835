// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dictsearch provides fuzzy lookup of property names within a
// BEJ schema dictionary, for interactive tools (grep-by-fragment
// against a large Redfish schema) where a user does not know a
// property's exact dotted path.
package dictsearch
