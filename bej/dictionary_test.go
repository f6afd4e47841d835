// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import (
	"bytes"
	"encoding/binary"
)

// entrySpec describes one dictionary entry for test fixture
// construction; offsets are filled in by dictBuilder.build once every
// entry's position is known.
type entrySpec struct {
	format       Format
	flags        Flag
	sequence     uint16
	childPointer uint16
	childCount   uint16
	name         string
}

// dictBuilder assembles a synthetic BEJ dictionary buffer from a flat
// list of entries in the caller's chosen layout order, resolving name
// offsets automatically. Tests use it instead of checked-in binary
// fixtures so each case can show its own shape inline.
type dictBuilder struct {
	entries []entrySpec
}

func (b *dictBuilder) add(e entrySpec) uint16 {
	offset := uint16(dictionaryHeaderSize + len(b.entries)*dictionaryEntrySize)
	b.entries = append(b.entries, e)
	return offset
}

func (b *dictBuilder) build() []byte {
	entriesSize := len(b.entries) * dictionaryEntrySize
	nameTableOffset := dictionaryHeaderSize + entriesSize

	var names bytes.Buffer
	nameOffsets := make([]uint16, len(b.entries))
	for i, e := range b.entries {
		if e.name == "" {
			nameOffsets[i] = invalidNameOffset
			continue
		}
		nameOffsets[i] = uint16(nameTableOffset + names.Len())
		names.WriteString(e.name)
		names.WriteByte(0)
	}

	var buf bytes.Buffer
	header := make([]byte, dictionaryHeaderSize)
	header[0] = 1 // version
	header[1] = 0 // flags
	binary.LittleEndian.PutUint16(header[2:4], 1) // declared top-level entry count: the root
	binary.LittleEndian.PutUint32(header[4:8], uint32(nameTableOffset+names.Len()))
	buf.Write(header)

	for i, e := range b.entries {
		var entry [dictionaryEntrySize]byte
		entry[0] = byte(e.format)<<4 | byte(e.flags&0x0F)
		binary.LittleEndian.PutUint16(entry[1:3], e.sequence)
		binary.LittleEndian.PutUint16(entry[3:5], e.childPointer)
		binary.LittleEndian.PutUint16(entry[5:7], e.childCount)
		if e.name == "" {
			entry[7] = 0
		} else {
			entry[7] = byte(len(e.name) + 1)
		}
		binary.LittleEndian.PutUint16(entry[8:10], nameOffsets[i])
		buf.Write(entry[:])
	}

	buf.Write(names.Bytes())
	return buf.Bytes()
}

// testSchemaDictionary builds a small representative schema dictionary:
//
//	{
//	  "Id": string,            seq 1
//	  "Count": integer,        seq 2
//	  "Enabled": boolean,      seq 3
//	  "Tags": [string],        seq 4
//	  "Mode": enum{On,Off},    seq 5
//	}
func testSchemaDictionary() *Dictionary {
	b := &dictBuilder{}

	rootIndex := len(b.entries)
	b.add(entrySpec{format: FormatSet, sequence: 0}) // child_pointer/child_count patched below

	idOffset := b.add(entrySpec{format: FormatString, sequence: 1, name: "Id"})
	b.add(entrySpec{format: FormatInteger, sequence: 2, name: "Count"})
	b.add(entrySpec{format: FormatBoolean, sequence: 3, name: "Enabled"})
	tagsIndex := len(b.entries)
	b.add(entrySpec{format: FormatArray, sequence: 4, name: "Tags"}) // child_pointer patched below
	modeIndex := len(b.entries)
	b.add(entrySpec{format: FormatEnum, sequence: 5, name: "Mode"}) // child_pointer patched below

	tagsElementOffset := b.add(entrySpec{format: FormatString, sequence: 0})
	modeOnOffset := b.add(entrySpec{format: FormatEnum, sequence: 0, name: "On"})
	b.add(entrySpec{format: FormatEnum, sequence: 1, name: "Off"})

	b.entries[rootIndex].childPointer = idOffset
	b.entries[rootIndex].childCount = 5
	b.entries[tagsIndex].childPointer = tagsElementOffset
	b.entries[tagsIndex].childCount = 1
	b.entries[modeIndex].childPointer = modeOnOffset
	b.entries[modeIndex].childCount = 2

	data, err := Parse(b.build())
	if err != nil {
		panic(err) // programmer error in the fixture, not a runtime condition
	}
	return data
}

// testAnnotationDictionary builds a global annotation dictionary
// holding a single "@odata.count" integer property at sequence 5,
// matching scenario S5 in the encode/decode test suite.
func testAnnotationDictionary() *Dictionary {
	root := entrySpec{format: FormatSet, sequence: 0, childPointer: 0, childCount: 0}
	odataCount := entrySpec{format: FormatInteger, sequence: 5, name: "@odata.count"}

	b := &dictBuilder{entries: []entrySpec{root, odataCount}}
	data, err := Parse(b.build())
	if err != nil {
		panic(err)
	}
	return data
}

func mustParse(data []byte) *Dictionary {
	d, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return d
}
