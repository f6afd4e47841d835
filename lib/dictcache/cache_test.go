// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// minimalDictionaryBytes returns a syntactically valid, empty BEJ
// dictionary: a 12-byte header declaring zero entries.
func minimalDictionaryBytes() []byte {
	return make([]byte, 12)
}

func TestDigestDeterministic(t *testing.T) {
	data := []byte("a dictionary's worth of bytes")
	if Digest(data) != Digest(data) {
		t.Error("Digest is not deterministic")
	}
}

func TestDigestDiffersOnContent(t *testing.T) {
	if Digest([]byte("a")) == Digest([]byte("b")) {
		t.Error("Digest collided for distinct inputs")
	}
}

func TestCacheLoadMissThenHit(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	dictPath := filepath.Join(dir, "chassis.bin")
	if err := os.WriteFile(dictPath, minimalDictionaryBytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := cache.Load(dictPath)
	if err != nil {
		t.Fatalf("Load (miss): %v", err)
	}
	if first.Size() != 12 {
		t.Errorf("first.Size() = %d, want 12", first.Size())
	}

	second, err := cache.Load(dictPath)
	if err != nil {
		t.Fatalf("Load (hit): %v", err)
	}
	if second.Size() != first.Size() {
		t.Errorf("cached load size = %d, want %d", second.Size(), first.Size())
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache directory has %d entries, want 1", len(entries))
	}
}

func TestReadDictionaryFileGzip(t *testing.T) {
	dir := t.TempDir()
	raw := minimalDictionaryBytes()

	path := filepath.Join(dir, "chassis.bin.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	encoder := gzip.NewWriter(file)
	if _, err := encoder.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDictionaryFile(path)
	if err != nil {
		t.Fatalf("ReadDictionaryFile: %v", err)
	}
	if len(got) != len(raw) {
		t.Errorf("decompressed length = %d, want %d", len(got), len(raw))
	}
}

func TestReadDictionaryFileResolvesMapToBin(t *testing.T) {
	dir := t.TempDir()
	raw := minimalDictionaryBytes()

	if err := os.WriteFile(filepath.Join(dir, "chassis.bin"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	mapPath := filepath.Join(dir, "chassis.map")
	if err := os.WriteFile(mapPath, []byte("schema map content, never parsed as a dictionary"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDictionaryFile(mapPath)
	if err != nil {
		t.Fatalf("ReadDictionaryFile(%q): %v", mapPath, err)
	}
	if len(got) != len(raw) {
		t.Errorf("length = %d, want %d (the .bin sibling's bytes, not the .map file's)", len(got), len(raw))
	}
}

func TestReadDictionaryFileUncompressed(t *testing.T) {
	dir := t.TempDir()
	raw := minimalDictionaryBytes()
	path := filepath.Join(dir, "chassis.bin")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDictionaryFile(path)
	if err != nil {
		t.Fatalf("ReadDictionaryFile: %v", err)
	}
	if len(got) != len(raw) {
		t.Errorf("length = %d, want %d", len(got), len(raw))
	}
}
