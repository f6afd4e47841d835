// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bej

import "io"

// readUint16LE decodes a little-endian uint16 from the first two
// bytes of buf. Callers must ensure len(buf) >= 2.
func readUint16LE(buf []byte) uint16 {
	return uint16(buf[0]) | uint16(buf[1])<<8
}

// readUint32LE decodes a little-endian uint32 from the first four
// bytes of buf. Callers must ensure len(buf) >= 4.
func readUint32LE(buf []byte) uint32 {
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// ReadNNINT reads a BEJ non-negative integer from src: a single
// length byte L (0 <= L <= 8) followed by L little-endian payload
// bytes. Zero encodes as L=1 with a payload byte of 0, not L=0; a
// length byte of 0 is a protocol error.
func ReadNNINT(src io.Reader) (uint64, error) {
	var lengthByte [1]byte
	if _, err := io.ReadFull(src, lengthByte[:]); err != nil {
		return 0, Framingf("read NNINT length: %w", err)
	}
	length := lengthByte[0]
	if length == 0 {
		return 0, Framingf("NNINT length byte is 0, minimum valid length is 1")
	}
	if length > 8 {
		return 0, Framingf("NNINT length %d exceeds maximum of 8", length)
	}

	var payload [8]byte
	if _, err := io.ReadFull(src, payload[:length]); err != nil {
		return 0, Framingf("read NNINT payload of %d bytes: %w", length, err)
	}

	var value uint64
	for i := int(length) - 1; i >= 0; i-- {
		value = value<<8 | uint64(payload[i])
	}
	return value, nil
}

// WriteNNINT writes v to sink in BEJ NNINT form: a length byte
// followed by the minimal number of little-endian bytes needed to
// represent v. Zero is special-cased to length 1, value byte 0 (the
// minimal encoding is not length 0).
func WriteNNINT(sink io.Writer, v uint64) error {
	if v == 0 {
		_, err := sink.Write([]byte{1, 0})
		return err
	}

	var payload [8]byte
	length := 0
	for remaining := v; remaining != 0; remaining >>= 8 {
		payload[length] = byte(remaining)
		length++
	}

	out := make([]byte, 1+length)
	out[0] = byte(length)
	copy(out[1:], payload[:length])
	_, err := sink.Write(out)
	return err
}

// nnintByteWidth returns the number of bytes WriteNNINT would emit
// for v, not counting the length byte itself.
func nnintByteWidth(v uint64) int {
	if v == 0 {
		return 1
	}
	width := 0
	for remaining := v; remaining != 0; remaining >>= 8 {
		width++
	}
	return width
}
