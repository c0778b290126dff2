// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - SHA3-256 digests and the pairwise roots built from them
package merkle

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/featherd/fault"
)

// DigestLength - bytes in a digest
const DigestLength = 32

// Digest - SHA3-256 of a record, batch or root pair
type Digest [DigestLength]byte

// NewDigest - hash data
func NewDigest(data []byte) Digest {
	return sha3.Sum256(data)
}

// IsZero - the all zero digest stands for "no root yet"
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - tagged hex for %#v
func (digest Digest) GoString() string {
	return "<digest:" + digest.String() + ">"
}

// MarshalText - lower case hex
func (digest Digest) MarshalText() ([]byte, error) {
	return hex.AppendEncode(nil, digest[:]), nil
}

// UnmarshalText - exactly DigestLength bytes of hex
func (digest *Digest) UnmarshalText(s []byte) error {
	if 2*DigestLength != len(s) {
		return fault.NotDigest
	}
	var d Digest
	if _, err := hex.Decode(d[:], s); nil != err {
		return fault.NotDigest
	}
	*digest = d
	return nil
}
