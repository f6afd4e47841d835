// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bej implements a bidirectional codec between a JSON value
// tree and Binary Encoded JSON (BEJ), the dictionary-compressed wire
// format used by the Redfish/DMTF family of management interfaces.
//
// BEJ replaces JSON property names with small integer sequence
// numbers resolved through a pre-shared schema [Dictionary],
// producing a compact byte stream. A second, optional annotation
// dictionary resolves "@"-prefixed properties (e.g. "@odata.count")
// independently of the schema dictionary.
//
// The package has three layers:
//
//   - [Dictionary] and [Cursor]: the packed binary entry table and
//     the position+count iterator used both for full walks and for
//     bounded child subsets.
//   - [Encode]: a recursive, schema-driven walk of a [Value] tree
//     that emits (Sequence, FormatFlags, Length) tuples with their
//     payload length computed before the header is written.
//   - [Decode]: the mirror image, streaming SFL tuples and
//     recursing into sets and arrays using the payload-declared
//     element count.
//
// A single [Encode] or [Decode] call is synchronous and
// single-threaded. A loaded [Dictionary] is immutable and safe for
// concurrent use by multiple goroutines once [Load] returns.
package bej
