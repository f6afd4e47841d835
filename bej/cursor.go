// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

// Entry is a single decoded dictionary entry: a type and its
// position among its siblings and children. Names are resolved
// lazily from the dictionary's name table.
type Entry struct {
	dict *Dictionary

	Format       Format
	Flags        Flag
	Sequence     uint16
	ChildPointer uint16
	ChildCount   uint16
	nameLength   uint8
	nameOffset   uint16
}

// IsArrayArchetype reports whether this entry's ChildCount field
// carries the 0xFFFF sentinel, marking it as an array's sole
// element-type archetype rather than an ordinary container.
func (e Entry) IsArrayArchetype() bool { return e.ChildCount == childCountArrayArchetype }

// Name returns the entry's NUL-terminated name from the dictionary's
// name table, and whether it has one. An entry has no name when its
// name length is 0 or its name offset is the 0xFFFF sentinel.
func (e Entry) Name() (string, bool) {
	if e.nameLength == 0 || e.nameOffset == invalidNameOffset || int(e.nameOffset) >= len(e.dict.bytes) {
		return "", false
	}
	buf := e.dict.bytes[e.nameOffset:]
	end := 0
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	return string(buf[:end]), true
}

// IsAnnotation reports whether the entry's name begins with "@",
// the marker for a property resolved through the annotation
// dictionary rather than the schema dictionary.
func (e Entry) IsAnnotation() bool {
	name, ok := e.Name()
	return ok && len(name) > 0 && name[0] == '@'
}

// Cursor iterates a run of sibling entries in a [Dictionary]: either
// the implicit single-entry root walk, or an explicit (offset,
// count) child subset. A cursor with count == 0xFFFF is unbounded
// and proceeds until the dictionary buffer is exhausted; this mode
// is used only to search the annotation dictionary globally by
// sequence number.
type Cursor struct {
	dict      *Dictionary
	byteIndex int
	remaining int // -1 means unbounded
}

// FullWalk returns a cursor over the dictionary's single root entry
// at offset 12. Callers that want the whole table follow child
// pointers from the root themselves.
func (d *Dictionary) FullWalk() Cursor {
	return Cursor{dict: d, byteIndex: dictionaryHeaderSize, remaining: 1}
}

// Subset returns a cursor over count sibling entries starting at the
// given absolute byte offset. count == 0xFFFF produces an unbounded
// cursor that scans to the end of the buffer.
func (d *Dictionary) Subset(offset uint16, count uint16) Cursor {
	remaining := int(count)
	if count == unboundedCount {
		remaining = -1
	}
	return Cursor{dict: d, byteIndex: int(offset), remaining: remaining}
}

// Next decodes and returns the next entry in the cursor's run,
// advancing the cursor by one entry. ok is false once the run is
// exhausted (remaining reached 0, or — for an unbounded cursor — the
// buffer has no more full entries).
func (c *Cursor) Next() (Entry, bool) {
	if c.remaining == 0 {
		return Entry{}, false
	}
	if c.byteIndex+dictionaryEntrySize > len(c.dict.bytes) {
		if c.remaining < 0 {
			// Unbounded cursor ran off the end of the buffer: done,
			// not an error.
			return Entry{}, false
		}
		return Entry{}, false
	}

	buf := c.dict.bytes[c.byteIndex:]
	entry := Entry{
		dict:         c.dict,
		Format:       Format(buf[0] >> 4),
		Flags:        Flag(buf[0] & 0x0F),
		Sequence:     readUint16LE(buf[1:3]),
		ChildPointer: readUint16LE(buf[3:5]),
		ChildCount:   readUint16LE(buf[5:7]),
		nameLength:   buf[7],
		nameOffset:   readUint16LE(buf[8:10]),
	}

	c.byteIndex += dictionaryEntrySize
	if c.remaining > 0 {
		c.remaining--
	}
	return entry, true
}

// FindBySequence linearly scans the subset (offset, count) for an
// entry whose sequence number equals seq.
func (d *Dictionary) FindBySequence(offset uint16, count uint16, seq uint16) (Entry, bool) {
	cursor := d.Subset(offset, count)
	for {
		entry, ok := cursor.Next()
		if !ok {
			return Entry{}, false
		}
		if entry.Sequence == seq {
			return entry, true
		}
	}
}

// FindByName linearly scans the subset (offset, count) for an entry
// whose name is exactly equal to name.
func (d *Dictionary) FindByName(offset uint16, count uint16, name string) (Entry, bool) {
	cursor := d.Subset(offset, count)
	for {
		entry, ok := cursor.Next()
		if !ok {
			return Entry{}, false
		}
		if entryName, has := entry.Name(); has && entryName == name {
			return entry, true
		}
	}
}

// ArrayArchetype returns the sole element-type child of an ARRAY
// entry: the single entry in its child subset whose own ChildCount
// carries the 0xFFFF array-archetype sentinel is not required here,
// since an array entry's child subset always has exactly one member
// by construction; this returns that member directly.
func (d *Dictionary) ArrayArchetype(arrayEntry Entry) (Entry, bool) {
	cursor := d.Subset(arrayEntry.ChildPointer, arrayEntry.ChildCount)
	return cursor.Next()
}
