// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	dictionaryHeaderSize = 12
	dictionaryEntrySize  = 10

	// childCountArrayArchetype is the 0xFFFF sentinel stored in an
	// entry's child-count field marking it as an array's sole
	// element-type archetype rather than an ordinary child count.
	childCountArrayArchetype = 0xFFFF

	// invalidNameOffset marks an entry with no name.
	invalidNameOffset = 0xFFFF

	// unboundedCount marks a Cursor that scans to the end of the
	// dictionary buffer rather than a fixed number of entries. Used
	// only for global annotation-dictionary sequence lookups.
	unboundedCount = 0xFFFF
)

// Dictionary is a loaded BEJ schema or annotation dictionary: a
// 12-byte header, a packed array of 10-byte entries, and a trailing
// NUL-terminated name table, all within a single immutable byte
// buffer. A *Dictionary is safe for concurrent use by multiple
// goroutines once [Load] returns; it is never mutated afterward.
type Dictionary struct {
	bytes       []byte
	entryCount  uint16
	totalSize   uint32
}

// Load reads the dictionary file at path into memory and validates
// its header. A path ending in ".map" is resolved to its sibling
// ".bin" file before loading; any other extension is loaded as-is.
func Load(path string) (*Dictionary, error) {
	resolved := path
	if strings.EqualFold(filepath.Ext(path), ".map") {
		resolved = strings.TrimSuffix(path, filepath.Ext(path)) + ".bin"
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, Resourcef("load dictionary %s: %w", resolved, err)
	}
	return Parse(data)
}

// Parse validates and wraps an in-memory dictionary buffer. The
// buffer is retained, not copied; callers must not mutate it
// afterward.
func Parse(data []byte) (*Dictionary, error) {
	if len(data) < dictionaryHeaderSize {
		return nil, DictionaryCorruptf("dictionary is %d bytes, smaller than the %d-byte header", len(data), dictionaryHeaderSize)
	}

	entryCount := readUint16LE(data[2:4])
	totalSize := readUint32LE(data[4:8])

	requiredSize := dictionaryHeaderSize + int(entryCount)*dictionaryEntrySize
	if requiredSize > len(data) {
		return nil, DictionaryCorruptf("dictionary declares %d entries requiring %d bytes, buffer is only %d bytes", entryCount, requiredSize, len(data))
	}

	return &Dictionary{bytes: data, entryCount: entryCount, totalSize: totalSize}, nil
}

// Size returns the number of bytes backing the dictionary.
func (d *Dictionary) Size() int { return len(d.bytes) }

// Bytes returns the raw dictionary buffer. Callers must not mutate
// the returned slice.
func (d *Dictionary) Bytes() []byte { return d.bytes }

// EntryCount returns the entry count declared in the dictionary
// header; [Parse] checks that the buffer holds at least that many
// 10-byte entries after the header.
func (d *Dictionary) EntryCount() uint16 { return d.entryCount }

// Root returns the dictionary's root entry at offset 12, the entry
// describing the schema's top-level object.
func (d *Dictionary) Root() (Entry, bool) {
	cursor := d.FullWalk()
	return cursor.Next()
}
