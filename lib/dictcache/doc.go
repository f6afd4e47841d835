// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dictcache loads BEJ dictionary files, resolving a ".map"
// path to its sibling ".bin" file and transparently decompressing
// .gz and .lz4 siblings, and keeps a copy of each dictionary on disk
// keyed by a BLAKE3 digest of the raw bytes.
//
// Every load reads (and, if needed, decompresses) the source file to
// compute its digest and parses a dictionary buffer with bej.Parse,
// whether or not the cache already holds an entry for that digest.
// The cache entry itself is a small CBOR envelope — the digest, the
// entry count, and the raw bytes — written through lib/codec so its
// on-disk representation is stable across runs.
package dictcache
