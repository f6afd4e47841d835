// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dictdoc renders a BEJ schema dictionary's property tree as
// Markdown reference documentation, with an HTML conversion for
// publishing. It exists so a dictionary — otherwise a packed binary
// blob meaningful only to the codec — has a human-readable form a
// schema author can review without an encoder/decoder round-trip.
package dictdoc
