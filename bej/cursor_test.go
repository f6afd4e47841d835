// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import "testing"

func TestDictionaryRoot(t *testing.T) {
	dict := testSchemaDictionary()

	root, ok := dict.Root()
	if !ok {
		t.Fatal("Root() = false, want true")
	}
	if root.Format != FormatSet {
		t.Errorf("root.Format = %v, want FormatSet", root.Format)
	}
	if root.ChildCount != 5 {
		t.Errorf("root.ChildCount = %d, want 5", root.ChildCount)
	}
}

func TestFindBySequence(t *testing.T) {
	dict := testSchemaDictionary()
	root, _ := dict.Root()

	tests := []struct {
		seq      uint16
		wantName string
		wantOK   bool
	}{
		{1, "Id", true},
		{2, "Count", true},
		{5, "Mode", true},
		{99, "", false},
	}

	for _, test := range tests {
		entry, ok := dict.FindBySequence(root.ChildPointer, root.ChildCount, test.seq)
		if ok != test.wantOK {
			t.Errorf("FindBySequence(%d) ok = %v, want %v", test.seq, ok, test.wantOK)
			continue
		}
		if !ok {
			continue
		}
		name, _ := entry.Name()
		if name != test.wantName {
			t.Errorf("FindBySequence(%d) name = %q, want %q", test.seq, name, test.wantName)
		}
	}
}

func TestFindByName(t *testing.T) {
	dict := testSchemaDictionary()
	root, _ := dict.Root()

	entry, ok := dict.FindByName(root.ChildPointer, root.ChildCount, "Enabled")
	if !ok {
		t.Fatal("FindByName(Enabled) = false, want true")
	}
	if entry.Format != FormatBoolean {
		t.Errorf("FindByName(Enabled).Format = %v, want FormatBoolean", entry.Format)
	}

	if _, ok := dict.FindByName(root.ChildPointer, root.ChildCount, "Nonexistent"); ok {
		t.Error("FindByName(Nonexistent) = true, want false")
	}
}

func TestArrayArchetype(t *testing.T) {
	dict := testSchemaDictionary()
	root, _ := dict.Root()

	tags, ok := dict.FindByName(root.ChildPointer, root.ChildCount, "Tags")
	if !ok {
		t.Fatal("FindByName(Tags) = false")
	}

	archetype, ok := dict.ArrayArchetype(tags)
	if !ok {
		t.Fatal("ArrayArchetype(Tags) = false, want true")
	}
	if archetype.Format != FormatString {
		t.Errorf("ArrayArchetype(Tags).Format = %v, want FormatString", archetype.Format)
	}
}

func TestAnnotationDictionaryGlobalLookup(t *testing.T) {
	annot := testAnnotationDictionary()

	entry, ok := annot.FindByName(dictionaryHeaderSize, unboundedCount, "@odata.count")
	if !ok {
		t.Fatal("FindByName(@odata.count) = false, want true")
	}
	if entry.Sequence != 5 {
		t.Errorf("entry.Sequence = %d, want 5", entry.Sequence)
	}

	bySeq, ok := annot.FindBySequence(dictionaryHeaderSize, unboundedCount, 5)
	if !ok {
		t.Fatal("FindBySequence(5) = false, want true")
	}
	name, _ := bySeq.Name()
	if name != "@odata.count" {
		t.Errorf("FindBySequence(5).Name() = %q, want @odata.count", name)
	}
}

func TestParseRejectsShortBuffer(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err == nil {
		t.Error("Parse(short buffer) = nil error, want error")
	}
}

func TestParseRejectsTruncatedEntries(t *testing.T) {
	header := make([]byte, dictionaryHeaderSize)
	header[2] = 5 // declares 5 entries but the buffer has none
	if _, err := Parse(header); err == nil {
		t.Error("Parse(truncated entries) = nil error, want error")
	}
}
