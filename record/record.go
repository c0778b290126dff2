// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/util"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	AssetTag          = TagType(iota) // asset
	AssetDataTag      = TagType(iota) // asset metadata
	AssetRoyaltiesTag = TagType(iota) // asset royalties
	GroupTag          = TagType(iota) // group of member assets

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic record interface
type Record interface {
	Pack() (Packed, error)
}

// byte sizes and counts for various fields
const (
	minNameLength    = 1
	maxNameLength    = 64
	maxURILength     = 256
	maxAttributes    = 32
	maxCreators      = 5
	maxBasisPoints   = 10000
	totalShares      = 100
	maxFieldLength   = 8192
	addressFieldSize = address.Length
)

// AuthorityVariant - who controls an asset
type AuthorityVariant uint64

// authority variants
const (
	OwnerAuthority    AuthorityVariant = 0
	MultisigAuthority AuthorityVariant = 1
)

// LockState - whether an asset can currently move
type LockState uint64

// lock states
const (
	Unlocked LockState = 0
	Locked   LockState = 1
)

// GroupMembership - back reference from a member asset to its group
type GroupMembership struct {
	GroupKey     address.Address `json:"groupKey"`     // base58
	MemberNumber uint64          `json:"memberNumber"` // group size after admission
}

// AssetV1 - the unpacked asset structure
type AssetV1 struct {
	Address         address.Address  `json:"address"`         // base58: derived, immutable
	AuthorityState  AuthorityVariant `json:"authorityState"`  // owner or multisig
	State           LockState        `json:"state"`           // unlocked or locked
	GroupMembership *GroupMembership `json:"groupMembership"` // nil unless created as a member
	Rentable        bool             `json:"rentable"`
	Transferable    bool             `json:"transferable"`
	HasMetadata     bool             `json:"hasMetadata"`
	HasRoyalties    bool             `json:"hasRoyalties"`
	HasMultisig     bool             `json:"hasMultisig"`
}

// GroupV1 - the unpacked group structure
type GroupV1 struct {
	Address   address.Address `json:"address"`   // base58: stable
	Authority address.Address `json:"authority"` // base58
	Size      uint64          `json:"size"`      // members ever admitted
	MaxSize   uint64          `json:"maxSize"`   // zero is unbounded
}

// Attribute - a single key value pair
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AssetDataV1 - the unpacked asset metadata structure
type AssetDataV1 struct {
	AssetKey            address.Address `json:"assetKey"` // base58: owning asset
	Name                string          `json:"name"`     // utf-8
	URI                 string          `json:"uri"`      // utf-8
	Attributes          []Attribute     `json:"attributes"`
	Mutable             bool            `json:"mutable"`
	PrivilegeAttributes []Attribute     `json:"privilegeAttributes"`
}

// Creator - a royalty payee
type Creator struct {
	Address address.Address `json:"address"` // base58
	Share   uint8           `json:"share"`   // percent
}

// AssetRoyaltiesV1 - the unpacked asset royalties structure
type AssetRoyaltiesV1 struct {
	AssetKey    address.Address `json:"assetKey"`    // base58: owning asset
	BasisPoints uint16          `json:"basisPoints"` // 0..10000
	Creators    []Creator       `json:"creators"`
	Ruleset     address.Address `json:"ruleset"` // base58: enforcement policy
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// DataHash - the digest a verifier uses to detect a stale pre-image
func (record Packed) DataHash() merkle.Digest {
	return merkle.NewDigest(record)
}

// RecordName - returns the name of a record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *AssetV1, AssetV1:
		return "AssetV1", true

	case *AssetDataV1, AssetDataV1:
		return "AssetDataV1", true

	case *AssetRoyaltiesV1, AssetRoyaltiesV1:
		return "AssetRoyaltiesV1", true

	case *GroupV1, GroupV1:
		return "GroupV1", true

	default:
		return "*unknown*", false
	}
}
