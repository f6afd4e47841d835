// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import (
	"bytes"
	"io"
)

// Decode reads a BEJ-encoded stream from source and reconstructs its
// JSON value tree, resolving property and enum names against
// schemaDict and, for globally-addressed annotation properties,
// against annotDict. annotDict may be nil if the stream contains no
// annotation properties.
//
// Properties encoded with a format code this implementation does not
// recognize are skipped over, not reported as errors, and are simply
// absent from the result: this lets a decoder built against an older
// dictionary tolerate newer producers.
func Decode(source io.Reader, schemaDict, annotDict *Dictionary) (*Value, error) {
	if schemaDict == nil {
		return nil, SchemaMismatchf("decode: schema dictionary is required")
	}

	var header [7]byte
	if _, err := io.ReadFull(source, header[:]); err != nil {
		return nil, Framingf("read file header: %w", err)
	}
	if !bytes.Equal(header[:4], fileHeaderMagic) {
		return nil, Framingf("file header magic %x does not match expected %x", header[:4], fileHeaderMagic)
	}

	rootEntry, ok := schemaDict.Root()
	if !ok {
		return nil, DictionaryCorruptf("decode: schema dictionary has no root entry")
	}

	outer, err := readSFL(source)
	if err != nil {
		return nil, err
	}
	if outer.format != FormatSet {
		return nil, Framingf("root value has format %#x, expected SET", outer.format)
	}
	rootEntry.Format = FormatSet

	return decodeValue(source, rootEntry, outer.length, schemaDict, annotDict)
}

// decodeValue decodes entry's payload of length bytes from source,
// dispatching on entry's format. length is consumed in full even when
// the format is unrecognized, so the caller's stream position stays
// correct for subsequent siblings.
func decodeValue(source io.Reader, entry Entry, length uint64, schemaDict, annotDict *Dictionary) (*Value, error) {
	switch entry.Format {
	case FormatSet:
		return decodeSet(source, entry, schemaDict, annotDict)
	case FormatArray:
		return decodeArray(source, entry, schemaDict, annotDict)
	case FormatInteger:
		return unpackInteger(source)
	case FormatString:
		return unpackString(source)
	case FormatBoolean:
		return unpackBoolean(source)
	case FormatEnum:
		enumDict := schemaDict
		if entry.IsAnnotation() {
			enumDict = annotDict
		}
		return unpackEnum(source, enumDict, entry)
	case FormatNull:
		return NewNull(), nil
	default:
		if err := discard(source, length); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// discard reads and drops n bytes from source, for skipping the
// payload of an unrecognized format code.
func discard(source io.Reader, n uint64) error {
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, source, int64(n))
	if err != nil {
		return Framingf("skip %d-byte payload of unrecognized format: %w", n, err)
	}
	return nil
}

// decodeSet decodes a counted run of properties into an object Value.
func decodeSet(source io.Reader, entry Entry, schemaDict, annotDict *Dictionary) (*Value, error) {
	count, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}

	contextDict := schemaDict
	if entry.IsAnnotation() {
		contextDict = annotDict
	}

	obj := NewObject()
	if count == 0 {
		return obj, nil
	}
	if err := decodeProperties(source, obj, contextDict, schemaDict, annotDict, entry.ChildPointer, entry.ChildCount, count); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeArray decodes a counted run of elements into an array Value,
// using entry's sole child as the element-type archetype for every
// element.
func decodeArray(source io.Reader, entry Entry, schemaDict, annotDict *Dictionary) (*Value, error) {
	count, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}

	elementDict := schemaDict
	if entry.IsAnnotation() {
		elementDict = annotDict
	}

	archetype, ok := elementDict.ArrayArchetype(entry)
	if !ok {
		// No element-type definition: an empty, typeless array.
		return NewArray(), nil
	}

	array := NewArray()
	for i := uint64(0); i < count; i++ {
		header, err := readSFL(source)
		if err != nil {
			return nil, err
		}
		element, err := decodeValue(source, archetype, header.length, schemaDict, annotDict)
		if err != nil {
			return nil, err
		}
		if element != nil {
			array.Append(element)
		}
	}
	return array, nil
}

// decodeProperties is the central recursive loop: it reads propCount
// SFL-framed values from source, resolving each one's dictionary
// entry either from (contextDict, childPtr, childCount) for a
// schema-selector property, or globally from annotDict for an
// annotation-selector property, and appends each to obj by name in
// wire order.
func decodeProperties(source io.Reader, obj *Value, contextDict, schemaDict, annotDict *Dictionary, childPtr, childCount uint16, propCount uint64) error {
	for i := uint64(0); i < propCount; i++ {
		header, err := readSFL(source)
		if err != nil {
			return err
		}

		var entry Entry
		var ok bool
		if header.selector == selectorSchema {
			entry, ok = contextDict.FindBySequence(childPtr, childCount, uint16(header.sequence))
		} else {
			if annotDict == nil {
				return SchemaMismatchf("decode: annotation-selector property with no annotation dictionary loaded")
			}
			entry, ok = annotDict.FindBySequence(dictionaryHeaderSize, unboundedCount, uint16(header.sequence))
		}
		if !ok {
			return SchemaMismatchf("decode: no dictionary entry for sequence %d (selector %d)", header.sequence, header.selector)
		}

		value, err := decodeValue(source, entry, header.length, schemaDict, annotDict)
		if err != nil {
			return err
		}
		if value == nil {
			continue
		}

		name, _ := entry.Name()
		obj.Set(name, value)
	}
	return nil
}

// unpackInteger reads a minimally-sized two's-complement integer
// payload, sign-extending it back to a full 64-bit value.
func unpackInteger(source io.Reader) (*Value, error) {
	width, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}
	if width == 0 || width > 8 {
		return nil, Framingf("integer payload width %d out of range 1..8", width)
	}

	var buf [8]byte
	if _, err := io.ReadFull(source, buf[:width]); err != nil {
		return nil, Framingf("read %d-byte integer payload: %w", width, err)
	}

	var u uint64
	for i := int(width) - 1; i >= 0; i-- {
		u = u<<8 | uint64(buf[i])
	}
	if width < 8 && buf[width-1]&0x80 != 0 {
		shift := (8 - width) * 8
		u = uint64(int64(u<<shift) >> shift)
	}
	return NewNumber(float64(int64(u))), nil
}

// unpackString reads a NUL-terminated BEJ string payload and returns
// it with the terminator stripped.
func unpackString(source io.Reader) (*Value, error) {
	length, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return NewString(""), nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(source, buf); err != nil {
		return nil, Framingf("read %d-byte string payload: %w", length, err)
	}
	return NewString(string(buf[:length-1])), nil
}

// unpackBoolean reads a 1-byte BEJ boolean payload.
func unpackBoolean(source io.Reader) (*Value, error) {
	length, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}
	if length != 1 {
		return nil, Framingf("boolean payload length %d, expected 1", length)
	}
	var b [1]byte
	if _, err := io.ReadFull(source, b[:]); err != nil {
		return nil, Framingf("read boolean payload: %w", err)
	}
	return NewBool(b[0] != 0), nil
}

// unpackEnum reads an NNINT-framed sequence number and resolves it to
// its name in entry's child subset of dict.
func unpackEnum(source io.Reader, dict *Dictionary, entry Entry) (*Value, error) {
	payloadLen, err := ReadNNINT(source)
	if err != nil {
		return nil, err
	}
	limited := io.LimitReader(source, int64(payloadLen))
	value, err := ReadNNINT(limited)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, SchemaMismatchf("decode: enum property %q has no dictionary to resolve against", debugName(entry))
	}
	match, ok := dict.FindBySequence(entry.ChildPointer, entry.ChildCount, uint16(value))
	if !ok {
		return nil, SchemaMismatchf("decode: enum property %q has no value with sequence %d", debugName(entry), value)
	}
	name, _ := match.Name()
	return NewString(name), nil
}
