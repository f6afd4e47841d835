// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictsearch

import (
	"testing"

	"github.com/dmtf-tools/bej/bej"
)

// buildTestDictionary assembles a minimal schema dictionary: a root
// SET with two string properties, "FanSpeed" and "FanState".
func buildTestDictionary(t *testing.T) *bej.Dictionary {
	t.Helper()

	const headerSize = 12
	const entrySize = 10

	names := []string{"", "FanSpeed", "FanState"}
	formats := []byte{0x0, 0x5, 0x5}

	nameTableStart := headerSize + len(names)*entrySize
	var nameTable []byte
	nameOffsets := make([]uint16, len(names))
	nameLengths := make([]byte, len(names))
	for i, name := range names {
		if name == "" {
			nameOffsets[i] = 0xFFFF
			continue
		}
		nameOffsets[i] = uint16(nameTableStart + len(nameTable))
		nameLengths[i] = byte(len(name) + 1)
		nameTable = append(nameTable, []byte(name)...)
		nameTable = append(nameTable, 0)
	}

	buf := make([]byte, nameTableStart+len(nameTable))
	buf[2] = byte(len(names))
	totalSize := uint32(len(buf))
	buf[4] = byte(totalSize)
	buf[5] = byte(totalSize >> 8)
	buf[6] = byte(totalSize >> 16)
	buf[7] = byte(totalSize >> 24)

	for i := range names {
		base := headerSize + i*entrySize
		buf[base] = formats[i] << 4
		buf[base+1] = byte(uint16(i))
		if i == 0 {
			// Root's child subset: entries 1..2.
			buf[base+3] = byte(headerSize + entrySize)
			buf[base+5] = 2
		}
		buf[base+7] = nameLengths[i]
		buf[base+8] = byte(nameOffsets[i])
		buf[base+9] = byte(nameOffsets[i] >> 8)
	}
	copy(buf[nameTableStart:], nameTable)

	dict, err := bej.Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return dict
}

func TestSearchRanksCloserMatchHigher(t *testing.T) {
	dict := buildTestDictionary(t)
	idx, err := Build(dict, "Chassis.v1_14_0")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	matches := idx.Search("FanSpeed")
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Path != "FanSpeed" {
		t.Errorf("top match = %q, want FanSpeed", matches[0].Path)
	}
}

func TestSearchEmptyPatternReturnsAll(t *testing.T) {
	dict := buildTestDictionary(t)
	idx, err := Build(dict, "Chassis.v1_14_0")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	matches := idx.Search("")
	if len(matches) != 2 {
		t.Fatalf("Search(\"\") returned %d matches, want 2", len(matches))
	}
}

func TestSearchNoMatch(t *testing.T) {
	dict := buildTestDictionary(t)
	idx, err := Build(dict, "Chassis.v1_14_0")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	matches := idx.Search("zzzznotfound")
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}
