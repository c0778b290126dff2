// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Pair - digest of left and right concatenated
func Pair(left Digest, right Digest) Digest {
	var buffer [2 * DigestLength]byte
	copy(buffer[:DigestLength], left[:])
	copy(buffer[DigestLength:], right[:])
	return NewDigest(buffer[:])
}

// Root - fold the digests pairwise, level by level, down to one
//
// an odd digest at the end of a level is paired with itself and the
// zero digest is returned for an empty list
func Root(ids []Digest) Digest {
	if 0 == len(ids) {
		return Digest{}
	}

	level := append([]Digest(nil), ids...)
	for len(level) > 1 {
		next := level[:0]
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, Pair(level[i], right))
		}
		level = next
	}
	return level[0]
}
