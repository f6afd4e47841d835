// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// minimalRootDictionary returns a syntactically valid BEJ dictionary
// with a single root entry (format SET, sequence 0, no children) —
// enough to encode "{}".
func minimalRootDictionary() []byte {
	const headerSize = 12
	const entrySize = 10

	header := make([]byte, headerSize)
	header[0] = 1 // version
	binary.LittleEndian.PutUint16(header[2:4], 1) // entry count
	binary.LittleEndian.PutUint32(header[4:8], headerSize+entrySize)

	entry := make([]byte, entrySize)
	binary.LittleEndian.PutUint16(entry[8:10], 0xFFFF) // no name

	return append(header, entry...)
}

func TestRunEncodeResolvesMapSchemaToBin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BEJ_CACHE_DIR", filepath.Join(dir, "cache"))

	binPath := filepath.Join(dir, "chassis.bin")
	if err := os.WriteFile(binPath, minimalRootDictionary(), 0o644); err != nil {
		t.Fatal(err)
	}
	mapPath := filepath.Join(dir, "chassis.map")
	if err := os.WriteFile(mapPath, []byte("schema map content, never parsed as a dictionary"), 0o644); err != nil {
		t.Fatal(err)
	}

	inputPath := filepath.Join(dir, "input.json")
	if err := os.WriteFile(inputPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	outputPath := filepath.Join(dir, "output.bej")

	exitCode := run([]string{"encode", "-s", mapPath, "-o", outputPath, inputPath})
	if exitCode != 0 {
		t.Fatalf("run(encode) exit code = %d, want 0", exitCode)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	exitCodeDirect := run([]string{"encode", "-s", binPath, "-o", filepath.Join(dir, "output_direct.bej"), inputPath})
	if exitCodeDirect != 0 {
		t.Fatalf("run(encode) with .bin schema exit code = %d, want 0", exitCodeDirect)
	}
	directOutput, err := os.ReadFile(filepath.Join(dir, "output_direct.bej"))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, directOutput) {
		t.Errorf("encode via .map schema produced %x, want the same bytes as encoding via the .bin schema directly (%x)", got, directOutput)
	}
}

func TestRunEncodeRequiresSchemaFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BEJ_CACHE_DIR", filepath.Join(dir, "cache"))

	exitCode := run([]string{"encode"})
	if exitCode == 0 {
		t.Error("run(encode) with no -s flag should fail")
	}
}
