// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/record"
)

// sizes of the compressed proof elements
const (
	ProofALength = 32
	ProofBLength = 64
	ProofCLength = 32
)

// CompressedProof - opaque validity proof for the referenced roots
type CompressedProof struct {
	A [ProofALength]byte `json:"a"`
	B [ProofBLength]byte `json:"b"`
	C [ProofCLength]byte `json:"c"`
}

// NewAddressParams - request to insert one brand-new address
type NewAddressParams struct {
	Seed      address.Seed        `json:"seed"`
	Tree      address.TreeContext `json:"tree"`
	RootIndex uint16              `json:"rootIndex"`
}

// Address - the address the verifier will insert for this request
func (p NewAddressParams) Address() address.Address {
	return address.Derive(p.Seed, p.Tree)
}

// InputRecord - the committed pre-image of a record being consumed
type InputRecord struct {
	Owner     address.Address `json:"owner"`
	Address   address.Address `json:"address"`
	Packed    record.Packed   `json:"packed"`
	DataHash  merkle.Digest   `json:"dataHash"`
	StateTree address.Address `json:"stateTree"`
	LeafIndex uint32          `json:"leafIndex"`
	RootIndex uint16          `json:"rootIndex"`
}

// OutputRecord - a new or updated record to be committed
type OutputRecord struct {
	Owner     address.Address `json:"owner"`
	Address   address.Address `json:"address"`
	Packed    record.Packed   `json:"packed"`
	DataHash  merkle.Digest   `json:"dataHash"`
	StateTree address.Address `json:"stateTree"`
}

// Request - one atomic batch update
//
// RelayFee and CompressLamports are always nil and IsCompress is
// always false: no value transfer is attached to record creation
type Request struct {
	Proof            *CompressedProof   `json:"proof"`
	NewAddressParams []NewAddressParams `json:"newAddressParams"`
	Inputs           []InputRecord      `json:"inputs"`
	Outputs          []OutputRecord     `json:"outputs"`
	RelayFee         *uint64            `json:"relayFee"`
	CompressLamports *uint64            `json:"compressLamports"`
	IsCompress       bool               `json:"isCompress"`
}

// Digest - SHA3-256 of the packed request
func (request *Request) Digest() merkle.Digest {
	return merkle.NewDigest(request.Pack())
}
