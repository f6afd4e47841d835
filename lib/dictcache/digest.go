// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictcache

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the BLAKE3 digest of data, hex-encoded, prefixed
// with "b3-" to make the hash algorithm unambiguous in cache
// filenames and log output.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return "b3-" + hex.EncodeToString(sum[:])
}
