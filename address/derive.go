// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/featherd/util"
)

// domain separation tags, one per record kind
var (
	AssetTag        = []byte("asset")
	AssetDataTag    = []byte("asset_data")
	AssetRoyaltyTag = []byte("asset_royalty")
	GroupTag        = []byte("group")
	AuthorityTag    = []byte("cpi_authority")
)

// Seed - the field sized hash of a program and its tagged seed parts
type Seed [Length]byte

// String - hex string for use by the fmt package (for %s)
func (seed Seed) String() string {
	return hex.EncodeToString(seed[:])
}

// MarshalText - convert seed to hex text
func (seed Seed) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(seed)))
	hex.Encode(buffer, seed[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to a seed
func (seed *Seed) UnmarshalText(s []byte) error {
	buffer, err := hex.DecodeString(string(s))
	if nil != err {
		return err
	}
	a := Address{}
	if err := FromBytes(&a, buffer); nil != err {
		return err
	}
	*seed = Seed(a)
	return nil
}

// TreeContext - the address tree that new addresses are inserted into
type TreeContext struct {
	Tree  Address `json:"tree"`
	Queue Address `json:"queue"`
}

// Uint64Seed - little endian bytes of a numeric seed
func Uint64Seed(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.LittleEndian.PutUint64(buffer, n)
	return buffer
}

// DeriveSeed - compute the address seed for a program
//
// the first part should be one of the kind tags above
func DeriveSeed(program Address, parts ...[]byte) Seed {
	inputs := make([][]byte, 0, len(parts)+1)
	inputs = append(inputs, program[:])
	for _, part := range parts {
		prefixed := util.ToVarint64(uint64(len(part)))
		inputs = append(inputs, append(prefixed, part...))
	}
	return Seed(fieldHash(inputs...))
}

// Derive - compute the address for a seed in an address tree
func Derive(seed Seed, tree TreeContext) Address {
	return fieldHash(tree.Tree[:], seed[:])
}

// keccak-256 truncated into the BN254 scalar field
func fieldHash(parts ...[]byte) Address {
	a := Address{}
	copy(a[:], crypto.Keccak256(parts...))
	a[0] = 0
	return a
}
