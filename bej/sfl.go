// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import "io"

// Format identifies the BEJ type of a value's payload. The upper 4
// bits of an SFL tuple's FormatFlags byte.
type Format uint8

const (
	FormatSet                 Format = 0x0
	FormatArray               Format = 0x1
	FormatNull                Format = 0x2
	FormatInteger             Format = 0x3
	FormatEnum                Format = 0x4
	FormatString              Format = 0x5
	FormatReal                Format = 0x6
	FormatBoolean             Format = 0x7
	FormatPropertyAnnotation  Format = 0xA
	FormatResourceLink        Format = 0xE
)

// Flag holds the BEJ flag bits carried in the lower nibble of an
// SFL tuple's FormatFlags byte.
type Flag uint8

const (
	FlagDeferredBinding          Flag = 1 << 0
	FlagNestedTopLevelAnnotation Flag = 1 << 1
)

// selectorSchema and selectorAnnotation are the two values of the
// low bit packed into an SFL tuple's Sequence NNINT.
const (
	selectorSchema     = 0
	selectorAnnotation = 1
)

// sflHeader is a decoded (Sequence, FormatFlags, Length) tuple, the
// three-field header that introduces every encoded BEJ value.
type sflHeader struct {
	sequence uint64 // sequence number, selector bit already stripped
	selector int    // 0 = schema dictionary, 1 = annotation dictionary
	format   Format
	flags    Flag
	length   uint64
}

// readSFL reads one SFL tuple from src.
func readSFL(src io.Reader) (sflHeader, error) {
	rawSequence, err := ReadNNINT(src)
	if err != nil {
		return sflHeader{}, Framingf("read SFL sequence: %w", err)
	}

	var formatFlags [1]byte
	if _, err := io.ReadFull(src, formatFlags[:]); err != nil {
		return sflHeader{}, Framingf("read SFL format/flags byte: %w", err)
	}

	length, err := ReadNNINT(src)
	if err != nil {
		return sflHeader{}, Framingf("read SFL length: %w", err)
	}

	return sflHeader{
		sequence: rawSequence >> 1,
		selector: int(rawSequence & 1),
		format:   Format(formatFlags[0] >> 4),
		flags:    Flag(formatFlags[0] & 0x0F),
		length:   length,
	}, nil
}

// writeSFL writes one SFL tuple to sink.
func writeSFL(sink io.Writer, sequence uint64, selector int, format Format, flags Flag, length uint64) error {
	rawSequence := (sequence << 1) | uint64(selector&1)
	if err := WriteNNINT(sink, rawSequence); err != nil {
		return err
	}
	formatFlags := byte(format)<<4 | byte(flags&0x0F)
	if _, err := sink.Write([]byte{formatFlags}); err != nil {
		return err
	}
	return WriteNNINT(sink, length)
}

// fileHeader is the fixed 7-byte header every encoded BEJ stream
// begins with: magic bytes, two reserved flag bytes, and a
// schema-class byte (0x00 = major schema).
var fileHeader = [7]byte{0x00, 0xF0, 0xF1, 0xF1, 0x00, 0x00, 0x00}

// fileHeaderMagic is the first four bytes of fileHeader, the portion
// this implementation validates on decode.
var fileHeaderMagic = fileHeader[:4]
