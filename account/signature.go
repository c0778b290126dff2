// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/featherd/fault"
)

// Signature - ed25519 signature, hex in text form
type Signature []byte

func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// MarshalText - lower case hex
func (signature Signature) MarshalText() ([]byte, error) {
	return hex.AppendEncode(nil, signature), nil
}

// UnmarshalText - hex of exactly one ed25519 signature
func (signature *Signature) UnmarshalText(s []byte) error {
	if 2*ed25519.SignatureSize != len(s) {
		return fault.InvalidSignature
	}
	b, err := hex.AppendDecode(nil, s)
	if nil != err {
		return fault.InvalidSignature
	}
	*signature = b
	return nil
}
