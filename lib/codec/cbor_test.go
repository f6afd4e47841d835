// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// cacheEntry is a representative dictcache record using cbor struct
// tags, the convention for purely-internal types.
type cacheEntry struct {
	Digest     string `cbor:"digest"`
	SourcePath string `cbor:"source_path,omitempty"`
	EntryCount int    `cbor:"entry_count"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := cacheEntry{
		Digest:     "b3-deadbeef",
		SourcePath: "/etc/bej/dictionaries/chassis.bin",
		EntryCount: 42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded cacheEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	entry := cacheEntry{Digest: "b3-feed", EntryCount: 7}

	first, err := Marshal(entry)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(entry)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	entries := []cacheEntry{
		{Digest: "b3-1", EntryCount: 1},
		{Digest: "b3-2", EntryCount: 2},
		{Digest: "b3-3", EntryCount: 0},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range entries {
		var got cacheEntry
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode entry %d: %v", i, err)
		}
		if got != want {
			t.Errorf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withPath := cacheEntry{Digest: "b3-1", SourcePath: "/x", EntryCount: 1}
	withoutPath := cacheEntry{Digest: "b3-1", EntryCount: 1}

	dataWith, err := Marshal(withPath)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var entry cacheEntry
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &entry)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// Verify that []byte fields encode as CBOR byte strings (major
	// type 2), not text strings. This matters for the raw dictionary
	// bytes cached alongside a parsed entry.
	type envelope struct {
		DictionaryBytes []byte `cbor:"dictionary_bytes"`
	}

	original := envelope{DictionaryBytes: []byte{0x00, 0xF0, 0xF1, 0xF1}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded envelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !bytes.Equal(decoded.DictionaryBytes, original.DictionaryBytes) {
		t.Errorf("byte string roundtrip: got %x, want %x", decoded.DictionaryBytes, original.DictionaryBytes)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"digest": "b3-1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"digest"`) {
		t.Errorf("notation %q does not contain \"digest\"", notation)
	}
	if !strings.Contains(notation, `"b3-1"`) {
		t.Errorf("notation %q does not contain \"b3-1\"", notation)
	}
}

func BenchmarkMarshal(b *testing.B) {
	entry := cacheEntry{Digest: "b3-deadbeef", SourcePath: "/etc/bej/x.bin", EntryCount: 42}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(entry)
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	entry := cacheEntry{Digest: "b3-deadbeef", SourcePath: "/etc/bej/x.bin", EntryCount: 42}
	data, err := Marshal(entry)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var decoded cacheEntry
		Unmarshal(data, &decoded)
	}
}
