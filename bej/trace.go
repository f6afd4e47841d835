// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import (
	"bytes"
	"io"
)

// TraceEvent describes one SFL tuple observed while tracing a decode:
// its byte offset in the stream, the three wire fields, and the
// dictionary-resolved property name when one was found.
type TraceEvent struct {
	Offset   int64
	Sequence uint64
	Selector int
	Format   Format
	Length   uint64
	Name     string
}

// countingReader tracks how many bytes have been read through it, so
// Trace can report each SFL tuple's offset in the original stream.
type countingReader struct {
	source io.Reader
	offset int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.source.Read(p)
	c.offset += int64(n)
	return n, err
}

// Trace walks a BEJ-encoded stream exactly as Decode does, but instead
// of reconstructing a JSON value tree it reports every SFL tuple it
// reads to emit, in wire order. It is meant for the debug tooling
// that inspects what a producer actually put on the wire, not for
// normal decoding: a malformed or forward-incompatible stream that
// Decode would tolerate may abort a trace early.
func Trace(source io.Reader, schemaDict, annotDict *Dictionary, emit func(TraceEvent)) error {
	if schemaDict == nil {
		return SchemaMismatchf("trace: schema dictionary is required")
	}

	counting := &countingReader{source: source}

	var header [7]byte
	if _, err := io.ReadFull(counting, header[:]); err != nil {
		return Framingf("read file header: %w", err)
	}
	if !bytes.Equal(header[:4], fileHeaderMagic) {
		return Framingf("file header magic %x does not match expected %x", header[:4], fileHeaderMagic)
	}

	rootEntry, ok := schemaDict.Root()
	if !ok {
		return DictionaryCorruptf("trace: schema dictionary has no root entry")
	}

	offset := counting.offset
	outer, err := readSFL(counting)
	if err != nil {
		return err
	}
	if outer.format != FormatSet {
		return Framingf("root value has format %#x, expected SET", outer.format)
	}
	rootEntry.Format = FormatSet
	name, _ := rootEntry.Name()
	emit(TraceEvent{Offset: offset, Sequence: outer.sequence, Selector: outer.selector, Format: outer.format, Length: outer.length, Name: name})

	return traceValue(counting, rootEntry, schemaDict, annotDict, emit)
}

func traceValue(source *countingReader, entry Entry, schemaDict, annotDict *Dictionary, emit func(TraceEvent)) error {
	switch entry.Format {
	case FormatSet:
		return traceSet(source, entry, schemaDict, annotDict, emit)
	case FormatArray:
		return traceArray(source, entry, schemaDict, annotDict, emit)
	case FormatInteger, FormatString, FormatBoolean, FormatEnum, FormatNull:
		_, err := decodeValue(source, entry, 0, schemaDict, annotDict)
		return err
	default:
		return nil
	}
}

func traceSet(source *countingReader, entry Entry, schemaDict, annotDict *Dictionary, emit func(TraceEvent)) error {
	count, err := ReadNNINT(source)
	if err != nil {
		return err
	}

	contextDict := schemaDict
	if entry.IsAnnotation() {
		contextDict = annotDict
	}

	for i := uint64(0); i < count; i++ {
		offset := source.offset
		header, err := readSFL(source)
		if err != nil {
			return err
		}

		var child Entry
		var ok bool
		if header.selector == selectorSchema {
			child, ok = contextDict.FindBySequence(entry.ChildPointer, entry.ChildCount, uint16(header.sequence))
		} else {
			if annotDict == nil {
				return SchemaMismatchf("trace: annotation-selector property with no annotation dictionary loaded")
			}
			child, ok = annotDict.FindBySequence(dictionaryHeaderSize, unboundedCount, uint16(header.sequence))
		}

		var name string
		if ok {
			name, _ = child.Name()
		}
		emit(TraceEvent{Offset: offset, Sequence: header.sequence, Selector: header.selector, Format: header.format, Length: header.length, Name: name})

		if !ok {
			if err := discard(source, header.length); err != nil {
				return err
			}
			continue
		}
		if err := traceValue(source, child, schemaDict, annotDict, emit); err != nil {
			return err
		}
	}
	return nil
}

func traceArray(source *countingReader, entry Entry, schemaDict, annotDict *Dictionary, emit func(TraceEvent)) error {
	count, err := ReadNNINT(source)
	if err != nil {
		return err
	}

	elementDict := schemaDict
	if entry.IsAnnotation() {
		elementDict = annotDict
	}

	archetype, ok := elementDict.ArrayArchetype(entry)
	if !ok {
		return nil
	}

	for i := uint64(0); i < count; i++ {
		offset := source.offset
		header, err := readSFL(source)
		if err != nil {
			return err
		}
		name, _ := archetype.Name()
		emit(TraceEvent{Offset: offset, Sequence: header.sequence, Selector: header.selector, Format: header.format, Length: header.length, Name: name})

		if err := traceValue(source, archetype, schemaDict, annotDict, emit); err != nil {
			return err
		}
	}
	return nil
}
