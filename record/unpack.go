// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   switch r := result.(type) {
//   case *record.AssetV1:
func (record Packed) Unpack() (r Record, n int, e error) {

	defer func() {
		if x := recover(); nil != x {
			r = nil
			n = 0
			e = fault.NotARecord
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotARecord
	}

	var err error

unpack_switch:
	switch TagType(recordType) {

	case AssetTag:
		asset := &AssetV1{}

		asset.Address, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}

		authority, authorityLength := util.FromVarint64(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength
		if authority > uint64(MultisigAuthority) {
			return nil, 0, fault.InvalidAuthorityVariant
		}
		asset.AuthorityState = AuthorityVariant(authority)

		state, stateLength := util.FromVarint64(record[n:])
		if 0 == stateLength {
			break unpack_switch
		}
		n += stateLength
		if state > uint64(Locked) {
			return nil, 0, fault.InvalidLockState
		}
		asset.State = LockState(state)

		member, memberLength := util.FromVarint64(record[n:])
		if 0 == memberLength {
			break unpack_switch
		}
		n += memberLength
		if 0 != member {
			membership := &GroupMembership{}
			membership.GroupKey, n, err = unpackAddress(record, n)
			if nil != err {
				return nil, 0, err
			}
			number, numberLength := util.FromVarint64(record[n:])
			if 0 == numberLength {
				break unpack_switch
			}
			n += numberLength
			membership.MemberNumber = number
			asset.GroupMembership = membership
		}

		flags, flagsLength := util.FromVarint64(record[n:])
		if 0 == flagsLength {
			break unpack_switch
		}
		n += flagsLength
		asset.Rentable = 0 != flags&flagRentable
		asset.Transferable = 0 != flags&flagTransferable
		asset.HasMetadata = 0 != flags&flagHasMetadata
		asset.HasRoyalties = 0 != flags&flagHasRoyalties
		asset.HasMultisig = 0 != flags&flagHasMultisig

		if err := asset.check(); nil != err {
			return nil, 0, err
		}
		return asset, n, nil

	case GroupTag:
		group := &GroupV1{}

		group.Address, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}
		group.Authority, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}

		size, sizeLength := util.FromVarint64(record[n:])
		if 0 == sizeLength {
			break unpack_switch
		}
		n += sizeLength
		group.Size = size

		maxSize, maxSizeLength := util.FromVarint64(record[n:])
		if 0 == maxSizeLength {
			break unpack_switch
		}
		n += maxSizeLength
		group.MaxSize = maxSize

		if err := group.check(); nil != err {
			return nil, 0, err
		}
		return group, n, nil

	case AssetDataTag:
		data := &AssetDataV1{}

		data.AssetKey, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}
		data.Name, n, err = unpackString(record, n)
		if nil != err {
			return nil, 0, err
		}
		data.URI, n, err = unpackString(record, n)
		if nil != err {
			return nil, 0, err
		}
		data.Attributes, n, err = unpackAttributes(record, n)
		if nil != err {
			return nil, 0, err
		}

		mutable, mutableLength := util.FromVarint64(record[n:])
		if 0 == mutableLength {
			break unpack_switch
		}
		n += mutableLength
		data.Mutable = 0 != mutable

		data.PrivilegeAttributes, n, err = unpackAttributes(record, n)
		if nil != err {
			return nil, 0, err
		}

		if err := data.check(); nil != err {
			return nil, 0, err
		}
		return data, n, nil

	case AssetRoyaltiesTag:
		royalties := &AssetRoyaltiesV1{}

		royalties.AssetKey, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}

		if n >= len(record) {
			break unpack_switch
		}
		basisPoints, basisPointsLength := util.ClippedVarint64(record[n:], 0, maxBasisPoints)
		if 0 == basisPointsLength {
			return nil, 0, fault.BasisPointsOutOfRange
		}
		n += basisPointsLength
		royalties.BasisPoints = uint16(basisPoints)

		if n >= len(record) {
			break unpack_switch
		}
		count, countLength := util.ClippedVarint64(record[n:], 0, maxCreators)
		if 0 == countLength {
			return nil, 0, fault.TooManyCreators
		}
		n += countLength

		royalties.Creators = make([]Creator, 0, count)
		for i := 0; i < count; i += 1 {
			c := Creator{}
			c.Address, n, err = unpackAddress(record, n)
			if nil != err {
				return nil, 0, err
			}
			if n >= len(record) {
				break unpack_switch
			}
			share, shareLength := util.ClippedVarint64(record[n:], 0, totalShares)
			if 0 == shareLength {
				return nil, 0, fault.CreatorSharesNotHundred
			}
			n += shareLength
			c.Share = uint8(share)
			royalties.Creators = append(royalties.Creators, c)
		}

		royalties.Ruleset, n, err = unpackAddress(record, n)
		if nil != err {
			return nil, 0, err
		}

		if err := royalties.check(); nil != err {
			return nil, 0, err
		}
		return royalties, n, nil

	default:
		return nil, 0, fault.UnknownRecordType
	}
	return nil, 0, fault.TruncatedRecord
}

// UnpackExact - unpack a record that must occupy the whole buffer
func (record Packed) UnpackExact() (Record, error) {
	r, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(record) {
		return nil, fault.RecordHasExcessData
	}
	return r, nil
}

func unpackAddress(record Packed, n int) (address.Address, int, error) {
	a := address.Address{}
	length, lengthOffset := util.ClippedVarint64(record[n:], 1, maxFieldLength)
	if 0 == lengthOffset {
		return a, 0, fault.TruncatedRecord
	}
	n += lengthOffset
	if addressFieldSize != length || n+length > len(record) {
		return a, 0, fault.TruncatedRecord
	}
	copy(a[:], record[n:n+length])
	return a, n + length, nil
}

func unpackString(record Packed, n int) (string, int, error) {
	length, lengthOffset := util.ClippedVarint64(record[n:], 0, maxFieldLength)
	if 0 == lengthOffset {
		return "", 0, fault.TruncatedRecord
	}
	n += lengthOffset
	if n+length > len(record) {
		return "", 0, fault.TruncatedRecord
	}
	s := string(record[n : n+length])
	return s, n + length, nil
}

func unpackAttributes(record Packed, n int) ([]Attribute, int, error) {
	if n >= len(record) {
		return nil, 0, fault.TruncatedRecord
	}
	count, countLength := util.ClippedVarint64(record[n:], 0, maxAttributes)
	if 0 == countLength {
		return nil, 0, fault.TooManyAttributes
	}
	n += countLength

	attributes := make([]Attribute, 0, count)
	for i := 0; i < count; i += 1 {
		var err error
		a := Attribute{}
		a.Key, n, err = unpackString(record, n)
		if nil != err {
			return nil, 0, err
		}
		a.Value, n, err = unpackString(record, n)
		if nil != err {
			return nil, 0, err
		}
		attributes = append(attributes, a)
	}
	return attributes, n, nil
}
