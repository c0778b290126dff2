// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/record"
)

// Accounts - the accounts an operation acts for
type Accounts struct {
	Signer    *account.Account // pays for and submits the operation
	Authority address.Address  // owner of the seeds
}

// InputAccount - a committed record supplied by the caller
type InputAccount struct {
	Packed    record.Packed `json:"packed"`
	LeafIndex uint32        `json:"leafIndex"`
}

// RootParams - proof and tree positions the batch is checked against
type RootParams struct {
	Proof            *batch.CompressedProof `json:"proof"`
	StateTree        address.Address        `json:"stateTree"`
	StateRootIndex   uint16                 `json:"stateRootIndex"`
	AddressTree      address.TreeContext    `json:"addressTree"`
	AddressRootIndex uint16                 `json:"addressRootIndex"`
	Inputs           []InputAccount         `json:"inputs"`
}

// MetadataArgs - optional metadata for a new asset
type MetadataArgs struct {
	Name       string             `json:"name"`
	URI        string             `json:"uri"`
	Attributes []record.Attribute `json:"attributes"`
	Mutable    bool               `json:"mutable"`
}

// RoyaltyArgs - optional royalties for a new asset
type RoyaltyArgs struct {
	BasisPoints uint16           `json:"basisPoints"`
	Creators    []record.Creator `json:"creators"`
	Ruleset     address.Address  `json:"ruleset"`
}

// CreateAssetArgs - arguments common to all asset creation
type CreateAssetArgs struct {
	Rentable     bool          `json:"rentable"`
	Transferable bool          `json:"transferable"`
	Metadata     *MetadataArgs `json:"metadata"`
	Royalty      *RoyaltyArgs  `json:"royalty"`
}

// CreateGroupArgs - arguments for a new group
type CreateGroupArgs struct {
	MaxSize uint64 `json:"maxSize"` // zero is unbounded
}
