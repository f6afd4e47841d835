// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsontext

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmtf-tools/bej/bej"
)

// Format renders a [bej.Value] tree, typically produced by
// [bej.Decode], as indented JSON text.
//
// Object members are written directly from [bej.Value.Members] in
// their stored order, not by round-tripping through a Go map: a map
// has no stable iteration order, and encoding/json always re-sorts
// its keys alphabetically on marshal, which would silently discard
// the wire order bej.Decode took care to preserve.
func Format(v *bej.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, "  ", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compact renders a [bej.Value] tree as single-line JSON text,
// members still in their stored order.
func Compact(v *bej.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeValue writes v to buf. indent is the per-level indent string;
// an empty indent produces compact, single-line output. depth is the
// current nesting level, used to size each line's leading indent.
func writeValue(buf *bytes.Buffer, v *bej.Value, indent string, depth int) error {
	switch v.Type() {
	case bej.TypeNull:
		buf.WriteString("null")
		return nil
	case bej.TypeBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case bej.TypeNumber:
		data, err := json.Marshal(numberToNative(v.Number()))
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case bej.TypeString:
		data, err := json.Marshal(v.String())
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case bej.TypeArray:
		return writeArray(buf, v.Elements(), indent, depth)
	case bej.TypeObject:
		return writeObject(buf, v.Members(), indent, depth)
	default:
		buf.WriteString("null")
		return nil
	}
}

func writeArray(buf *bytes.Buffer, elements []*bej.Value, indent string, depth int) error {
	if len(elements) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteByte('[')
	for i, element := range elements {
		writeItemSeparator(buf, indent, depth+1, i)
		if err := writeValue(buf, element, indent, depth+1); err != nil {
			return err
		}
	}
	writeClosingIndent(buf, indent, depth)
	buf.WriteByte(']')
	return nil
}

func writeObject(buf *bytes.Buffer, members []bej.Member, indent string, depth int) error {
	if len(members) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteByte('{')
	for i, member := range members {
		writeItemSeparator(buf, indent, depth+1, i)
		keyData, err := json.Marshal(member.Key)
		if err != nil {
			return err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeValue(buf, member.Value, indent, depth+1); err != nil {
			return err
		}
	}
	writeClosingIndent(buf, indent, depth)
	buf.WriteByte('}')
	return nil
}

// writeItemSeparator writes the comma (for every item after the
// first) and the newline-plus-indent that precedes item index within
// an array or object, or nothing beyond the comma in compact mode.
func writeItemSeparator(buf *bytes.Buffer, indent string, depth, index int) {
	if index > 0 {
		buf.WriteByte(',')
	}
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

// writeClosingIndent writes the newline-plus-indent that precedes a
// container's closing bracket in indented mode; a no-op in compact
// mode.
func writeClosingIndent(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

// numberToNative renders a whole-valued float64 as an int64 so
// integer-typed properties serialize as "42" rather than "42.0" when
// decoded output is re-encoded to JSON text.
func numberToNative(f float64) any {
	if i := int64(f); float64(i) == f {
		return i
	}
	return f
}
