// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/lib/codec"
)

// entry is the on-disk cache record. Digest is redundant with the
// filename but kept inline so a cache directory's contents remain
// self-describing if copied elsewhere.
type entry struct {
	Digest     string `cbor:"digest"`
	SourcePath string `cbor:"source_path,omitempty"`
	EntryCount int    `cbor:"entry_count"`
	Bytes      []byte `cbor:"bytes"`
}

// Cache is an on-disk store of parsed dictionaries keyed by the
// BLAKE3 digest of their raw bytes. The zero Cache is not usable;
// construct one with [Open].
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir, creating it if it does not
// exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) entryPath(digest string) string {
	return filepath.Join(c.dir, digest+".cbor")
}

// Load reads and parses the dictionary at path, consulting the cache
// by content digest. The raw file is always read (and, if compressed,
// decompressed) so its digest can be computed. On a hit the cached
// copy's bytes are parsed with bej.Parse; on a miss the raw bytes are
// parsed and written to the cache. A hit therefore still reads the
// source file and still parses a dictionary buffer.
func (c *Cache) Load(path string) (*bej.Dictionary, error) {
	raw, err := ReadDictionaryFile(path)
	if err != nil {
		return nil, err
	}
	digest := Digest(raw)

	if cached, ok := c.read(digest); ok {
		return bej.Parse(cached.Bytes)
	}

	dict, err := bej.Parse(raw)
	if err != nil {
		return nil, err
	}

	c.write(entry{
		Digest:     digest,
		SourcePath: path,
		EntryCount: int(dict.EntryCount()),
		Bytes:      raw,
	})
	return dict, nil
}

func (c *Cache) read(digest string) (entry, bool) {
	data, err := os.ReadFile(c.entryPath(digest))
	if err != nil {
		return entry{}, false
	}
	var e entry
	if err := codec.Unmarshal(data, &e); err != nil {
		return entry{}, false
	}
	if e.Digest != digest {
		return entry{}, false
	}
	return e, true
}

// write best-effort persists e to disk. A failure to cache is not
// fatal to the caller's Load; the dictionary was already parsed
// successfully.
func (c *Cache) write(e entry) {
	data, err := codec.Marshal(e)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.entryPath(e.Digest), data, 0o644)
}
