// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsontext is the JSON front end for the BEJ codec: it parses
// JSON (optionally with // and /* */ comments, for hand-edited test
// fixtures and example payloads) into a [bej.Value] tree, and formats
// a [bej.Value] tree back into JSON text.
//
// Numbers are decoded with json.Decoder's UseNumber mode, parsed as
// int64 when the text is an integer and as float64 otherwise, and
// stored in bej.Value as float64; integers beyond ±2^53 do not keep
// their exact value.
package jsontext
