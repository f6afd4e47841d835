// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides this tool's standard CBOR encoding
// configuration.
//
// The bejcodec CLI uses two serialization formats with a clear
// boundary:
//
//   - JSON at the BEJ wire boundary itself — the JSON trees that
//     package bej encodes to and decodes from binary.
//   - CBOR for internal tooling state: the on-disk dictionary parse
//     cache in lib/dictcache, and the optional --trace envelope the
//     CLI emits when asked to record a decode session.
//
// This package provides the shared CBOR encoding and decoding modes
// so every internal consumer encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC
// 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces
// identical bytes, which matters for a cache keyed by content digest.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
