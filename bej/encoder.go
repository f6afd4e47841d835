// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import (
	"bytes"
	"io"
	"strings"
)

// Encode writes root to sink in BEJ wire format, resolving property and
// enum names against schemaDict and, for "@"-prefixed annotation
// properties, against annotDict. annotDict may be nil; "@"-prefixed
// properties are then unresolvable and are skipped like any other
// unresolved property.
//
// Properties that cannot be resolved in the relevant dictionary are
// silently omitted, not reported as errors:
// this lets an encoder stay ahead of a schema dictionary that has not
// yet caught up with newer JSON producers.
func Encode(sink io.Writer, root *Value, schemaDict, annotDict *Dictionary) error {
	if schemaDict == nil {
		return SchemaMismatchf("encode: schema dictionary is required")
	}
	rootEntry, ok := schemaDict.Root()
	if !ok {
		return DictionaryCorruptf("encode: schema dictionary has no root entry")
	}

	var payload bytes.Buffer
	if err := encodeProperties(&payload, root, rootEntry, schemaDict, annotDict); err != nil {
		return err
	}

	if _, err := sink.Write(fileHeader[:]); err != nil {
		return Resourcef("write file header: %w", err)
	}
	if err := writeSFL(sink, 0, selectorSchema, FormatSet, 0, uint64(payload.Len())); err != nil {
		return Resourcef("write root SFL header: %w", err)
	}
	if _, err := sink.Write(payload.Bytes()); err != nil {
		return Resourcef("write root set payload: %w", err)
	}
	return nil
}

// encodeProperties writes the counted member list of obj, resolving
// each member's dictionary entry through parentEntry's child subset
// (schema properties) or globally through annotDict ("@"-prefixed
// annotation properties).
func encodeProperties(out *bytes.Buffer, obj *Value, parentEntry Entry, schemaDict, annotDict *Dictionary) error {
	if obj.Type() != TypeObject {
		return TypeMismatchf("encode: expected a JSON object for a Set property, got %v", obj.Type())
	}

	type resolved struct {
		member Member
		entry  Entry
		selector int
	}
	var members []resolved

	for _, member := range obj.Members() {
		entry, selector, ok := resolveProperty(member.Key, parentEntry, schemaDict, annotDict)
		if !ok {
			continue
		}
		members = append(members, resolved{member: member, entry: entry, selector: selector})
	}

	if err := WriteNNINT(out, uint64(len(members))); err != nil {
		return err
	}
	for _, r := range members {
		if err := encodeValue(out, r.entry, r.selector, r.member.Value, schemaDict, annotDict); err != nil {
			return err
		}
	}
	return nil
}

// resolveProperty finds the dictionary entry for a Set member named
// key. Names beginning with "@" are looked up globally in annotDict;
// all others are looked up in parentEntry's own child subset of
// schemaDict.
func resolveProperty(key string, parentEntry Entry, schemaDict, annotDict *Dictionary) (Entry, int, bool) {
	if strings.HasPrefix(key, "@") {
		if annotDict == nil {
			return Entry{}, 0, false
		}
		entry, ok := annotDict.FindByName(dictionaryHeaderSize, unboundedCount, key)
		return entry, selectorAnnotation, ok
	}
	entry, ok := schemaDict.FindByName(parentEntry.ChildPointer, parentEntry.ChildCount, key)
	return entry, selectorSchema, ok
}

// encodeValue encodes one complete property: its SFL header followed
// by its payload, buffering the payload first so its length is known
// before the header is written.
func encodeValue(out *bytes.Buffer, entry Entry, selector int, value *Value, schemaDict, annotDict *Dictionary) error {
	var payload bytes.Buffer

	switch entry.Format {
	case FormatSet:
		if err := encodeProperties(&payload, value, entry, schemaDict, annotDict); err != nil {
			return err
		}
	case FormatArray:
		if err := encodeArrayPayload(&payload, entry, value, schemaDict, annotDict); err != nil {
			return err
		}
	case FormatInteger:
		if value.Type() != TypeNumber {
			return TypeMismatchf("encode: property %q expects an integer, got %v", debugName(entry), value.Type())
		}
		if err := packInteger(&payload, int64(value.Number())); err != nil {
			return err
		}
	case FormatString:
		if value.Type() != TypeString {
			return TypeMismatchf("encode: property %q expects a string, got %v", debugName(entry), value.Type())
		}
		if err := packString(&payload, value.String()); err != nil {
			return err
		}
	case FormatBoolean:
		if value.Type() != TypeBool {
			return TypeMismatchf("encode: property %q expects a boolean, got %v", debugName(entry), value.Type())
		}
		if err := packBoolean(&payload, value.Bool()); err != nil {
			return err
		}
	case FormatEnum:
		if value.Type() != TypeString {
			return TypeMismatchf("encode: property %q expects an enum string, got %v", debugName(entry), value.Type())
		}
		enumDict := schemaDict
		if selector == selectorAnnotation {
			enumDict = annotDict
		}
		if err := packEnum(&payload, enumDict, entry, value.String()); err != nil {
			return err
		}
	case FormatNull:
		// Empty payload.
	default:
		return SchemaMismatchf("encode: property %q has unsupported format %#x", debugName(entry), entry.Format)
	}

	if err := writeSFL(out, uint64(entry.Sequence), selector, entry.Format, 0, uint64(payload.Len())); err != nil {
		return err
	}
	_, err := out.Write(payload.Bytes())
	return err
}

// encodeArrayPayload encodes a JSON array using entry's sole child as
// the element-type archetype for every element; the archetype's
// sequence number is overridden with each element's index.
func encodeArrayPayload(out *bytes.Buffer, entry Entry, array *Value, schemaDict, annotDict *Dictionary) error {
	if array.Type() != TypeArray {
		return TypeMismatchf("encode: property %q expects an array, got %v", debugName(entry), array.Type())
	}

	elementDict := schemaDict
	selector := selectorSchema
	if entry.IsAnnotation() {
		elementDict = annotDict
		selector = selectorAnnotation
	}

	archetype, ok := elementDict.ArrayArchetype(entry)
	if !ok {
		return DictionaryCorruptf("encode: array property %q has no element-type entry", debugName(entry))
	}

	elements := array.Elements()
	if err := WriteNNINT(out, uint64(len(elements))); err != nil {
		return err
	}
	for i, element := range elements {
		archetype.Sequence = uint16(i)
		if err := encodeValue(out, archetype, selector, element, schemaDict, annotDict); err != nil {
			return err
		}
	}
	return nil
}

// packInteger writes the minimal two's-complement encoding of value:
// the fewest bytes whose sign-extension reproduces value exactly.
func packInteger(out *bytes.Buffer, value int64) error {
	var buf [8]byte
	u := uint64(value)
	for i := range buf {
		buf[i] = byte(u >> (8 * i))
	}

	width := 8
	for width > 1 {
		msb := buf[width-2]
		msbNext := buf[width-1]
		positiveRedundant := value >= 0 && msbNext == 0x00 && msb&0x80 == 0
		negativeRedundant := value < 0 && msbNext == 0xFF && msb&0x80 != 0
		if !positiveRedundant && !negativeRedundant {
			break
		}
		width--
	}

	if err := WriteNNINT(out, uint64(width)); err != nil {
		return err
	}
	_, err := out.Write(buf[:width])
	return err
}

// packString writes str as a NUL-terminated BEJ string payload.
func packString(out *bytes.Buffer, str string) error {
	if err := WriteNNINT(out, uint64(len(str))+1); err != nil {
		return err
	}
	if _, err := out.WriteString(str); err != nil {
		return Framingf("write string payload: %w", err)
	}
	return out.WriteByte(0)
}

// packBoolean writes a 1-byte BEJ boolean payload.
func packBoolean(out *bytes.Buffer, b bool) error {
	if err := WriteNNINT(out, 1); err != nil {
		return err
	}
	if b {
		return out.WriteByte(1)
	}
	return out.WriteByte(0)
}

// packEnum resolves enumName to its sequence number in entry's child
// subset of dict and writes that sequence number as an NNINT-framed
// payload.
func packEnum(out *bytes.Buffer, dict *Dictionary, entry Entry, enumName string) error {
	if dict == nil {
		return SchemaMismatchf("encode: enum property %q has no dictionary to resolve against", debugName(entry))
	}
	value, ok := dict.FindByName(entry.ChildPointer, entry.ChildCount, enumName)
	if !ok {
		return SchemaMismatchf("encode: enum property %q has no value named %q", debugName(entry), enumName)
	}

	var encoded bytes.Buffer
	if err := WriteNNINT(&encoded, uint64(value.Sequence)); err != nil {
		return err
	}
	if err := WriteNNINT(out, uint64(encoded.Len())); err != nil {
		return err
	}
	_, err := out.Write(encoded.Bytes())
	return err
}

// debugName returns entry's dictionary name for error messages, or a
// placeholder if it has none.
func debugName(entry Entry) string {
	if name, ok := entry.Name(); ok {
		return name
	}
	return "<unnamed>"
}
