// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest possible encoding of a uint64
//
// bytes one to eight carry seven bits each with the top bit marking
// continuation, a ninth byte carries the remaining eight bits whole
const Varint64MaximumBytes = 9

const (
	varintMore    = 0x80
	varintPayload = 0x7f
)

// AppendVarint64 - append the encoding of value to buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	for i := 1; i < Varint64MaximumBytes; i += 1 {
		if value <= varintPayload {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value&varintPayload)|varintMore)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ToVarint64 - encode value into a new slice
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// FromVarint64 - decode the leading varint of buffer
//
// returns the value and the number of bytes consumed, or 0, 0 when the
// buffer ends before the encoding does
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		shift := uint(7 * i)
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<shift, Varint64MaximumBytes
		}
		value |= uint64(b&varintPayload) << shift
		if 0 == b&varintMore {
			return value, i + 1
		}
	}
	return 0, 0
}

// ClippedVarint64 - decode a varint that must lie in minimum..maximum
//
// an out of range, truncated or badly bounded request returns 0, 0
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || minimum >= maximum {
		return 0, 0
	}
	value, count := FromVarint64(buffer)
	if 0 == count || value < uint64(minimum) || value > uint64(maximum) {
		return 0, 0
	}
	return int(value), count
}
