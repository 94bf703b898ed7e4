// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when decoding a varint from an empty
// buffer.
var ErrInvalidLength = errors.New("wire: invalid length")

// ErrInvalidFrom is returned when decoding a varint at an offset at or
// past the end of the buffer.
var ErrInvalidFrom = errors.New("wire: invalid offset")

// VarIntSerializeSize returns the number of bytes VarIntEncode would use
// to encode n.
func VarIntSerializeSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// VarIntEncode encodes n using Bitcoin's variable-length integer format:
// 1 byte for n < 0xfd, 0xfd + 2 little-endian bytes for n < 0x10000,
// 0xfe + 4 little-endian bytes for n < 0x100000000, otherwise 0xff + 8
// little-endian bytes.
func VarIntEncode(n uint64) []byte {
	switch {
	case n < 0xfd:
		return []byte{byte(n)}
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		return buf
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
		return buf
	}
}

// VarIntDecode decodes a varint starting at offset in buf, returning the
// decoded value and the number of bytes consumed.
func VarIntDecode(buf []byte, offset int) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrInvalidLength
	}
	if offset < 0 || offset >= len(buf) {
		return 0, 0, ErrInvalidFrom
	}

	discriminant := buf[offset]
	switch discriminant {
	case 0xff:
		if offset+9 > len(buf) {
			return 0, 0, fmt.Errorf("%w: truncated 9-byte varint", ErrInvalidLength)
		}
		return binary.LittleEndian.Uint64(buf[offset+1 : offset+9]), 9, nil
	case 0xfe:
		if offset+5 > len(buf) {
			return 0, 0, fmt.Errorf("%w: truncated 5-byte varint", ErrInvalidLength)
		}
		return uint64(binary.LittleEndian.Uint32(buf[offset+1 : offset+5])), 5, nil
	case 0xfd:
		if offset+3 > len(buf) {
			return 0, 0, fmt.Errorf("%w: truncated 3-byte varint", ErrInvalidLength)
		}
		return uint64(binary.LittleEndian.Uint16(buf[offset+1 : offset+3])), 3, nil
	default:
		return uint64(discriminant), 1, nil
	}
}

// VarStringEncode encodes s as a varint length prefix followed by its raw
// bytes.
func VarStringEncode(s string) []byte {
	b := []byte(s)
	out := make([]byte, 0, VarIntSerializeSize(uint64(len(b)))+len(b))
	out = append(out, VarIntEncode(uint64(len(b)))...)
	out = append(out, b...)
	return out
}

// VarStringDecode decodes a varstring starting at offset, returning the
// string and the number of bytes consumed.
func VarStringDecode(buf []byte, offset int) (string, int, error) {
	length, n, err := VarIntDecode(buf, offset)
	if err != nil {
		return "", 0, err
	}
	start := offset + n
	end := start + int(length)
	if end > len(buf) {
		return "", 0, fmt.Errorf("%w: truncated varstring payload", ErrInvalidLength)
	}
	return string(buf[start:end]), n + int(length), nil
}

// PutUint32LE writes v little-endian into buf[offset:offset+4].
func PutUint32LE(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], v)
}

// Uint32LE reads a little-endian uint32 from buf[offset:offset+4].
func Uint32LE(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

// PutUint64LE writes v little-endian into buf[offset:offset+8].
func PutUint64LE(buf []byte, offset int, v uint64) {
	binary.LittleEndian.PutUint64(buf[offset:offset+8], v)
}

// Uint64LE reads a little-endian uint64 from buf[offset:offset+8].
func Uint64LE(buf []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(buf[offset : offset+8])
}
