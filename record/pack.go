// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/util"
)

// asset flag bits
const (
	flagRentable = 1 << iota
	flagTransferable
	flagHasMetadata
	flagHasRoyalties
	flagHasMultisig
)

// Pack - pack an asset
//
// Varint64(tag) followed by fields in order as struct above, the
// boolean fields are collected into one flags value
func (asset *AssetV1) Pack() (Packed, error) {
	if err := asset.check(); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(AssetTag))
	message = appendAddress(message, asset.Address)
	message = appendUint64(message, uint64(asset.AuthorityState))
	message = appendUint64(message, uint64(asset.State))

	if nil == asset.GroupMembership {
		message = appendUint64(message, 0)
	} else {
		message = appendUint64(message, 1)
		message = appendAddress(message, asset.GroupMembership.GroupKey)
		message = appendUint64(message, asset.GroupMembership.MemberNumber)
	}

	flags := uint64(0)
	if asset.Rentable {
		flags |= flagRentable
	}
	if asset.Transferable {
		flags |= flagTransferable
	}
	if asset.HasMetadata {
		flags |= flagHasMetadata
	}
	if asset.HasRoyalties {
		flags |= flagHasRoyalties
	}
	if asset.HasMultisig {
		flags |= flagHasMultisig
	}
	return appendUint64(message, flags), nil
}

// Pack - pack a group
func (group *GroupV1) Pack() (Packed, error) {
	if err := group.check(); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(GroupTag))
	message = appendAddress(message, group.Address)
	message = appendAddress(message, group.Authority)
	message = appendUint64(message, group.Size)
	return appendUint64(message, group.MaxSize), nil
}

// Pack - pack asset metadata
//
// attributes are a count followed by key, value strings
func (data *AssetDataV1) Pack() (Packed, error) {
	if err := data.check(); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(AssetDataTag))
	message = appendAddress(message, data.AssetKey)
	message = appendString(message, data.Name)
	message = appendString(message, data.URI)
	message = appendAttributes(message, data.Attributes)
	message = appendBool(message, data.Mutable)
	return appendAttributes(message, data.PrivilegeAttributes), nil
}

// Pack - pack asset royalties
func (royalties *AssetRoyaltiesV1) Pack() (Packed, error) {
	if err := royalties.check(); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(AssetRoyaltiesTag))
	message = appendAddress(message, royalties.AssetKey)
	message = appendUint64(message, uint64(royalties.BasisPoints))
	message = appendUint64(message, uint64(len(royalties.Creators)))
	for _, c := range royalties.Creators {
		message = appendAddress(message, c.Address)
		message = appendUint64(message, uint64(c.Share))
	}
	return appendAddress(message, royalties.Ruleset), nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAddress(buffer Packed, a address.Address) Packed {
	return appendBytes(buffer, a[:])
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}

func appendBool(buffer Packed, value bool) Packed {
	if value {
		return appendUint64(buffer, 1)
	}
	return appendUint64(buffer, 0)
}

func appendAttributes(buffer Packed, attributes []Attribute) Packed {
	buffer = appendUint64(buffer, uint64(len(attributes)))
	for _, a := range attributes {
		buffer = appendString(buffer, a.Key)
		buffer = appendString(buffer, a.Value)
	}
	return buffer
}
