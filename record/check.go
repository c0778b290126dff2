// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"unicode/utf8"

	"github.com/bitmark-inc/featherd/fault"
)

// field limits shared by Pack and Unpack, a record that passes them
// on the way in can always be packed again

func (asset *AssetV1) check() error {
	if asset.AuthorityState > MultisigAuthority {
		return fault.InvalidAuthorityVariant
	}
	if asset.State > Locked {
		return fault.InvalidLockState
	}
	return nil
}

func (group *GroupV1) check() error {
	if 0 != group.MaxSize && group.Size > group.MaxSize {
		return fault.GroupFull
	}
	return nil
}

func (data *AssetDataV1) check() error {
	if !utf8.ValidString(data.Name) || !utf8.ValidString(data.URI) {
		return fault.InvalidUTF8
	}
	nameLength := utf8.RuneCountInString(data.Name)
	if nameLength < minNameLength {
		return fault.NameTooShort
	}
	if nameLength > maxNameLength {
		return fault.NameTooLong
	}
	if utf8.RuneCountInString(data.URI) > maxURILength {
		return fault.URITooLong
	}
	if err := checkAttributes(data.Attributes); nil != err {
		return err
	}
	return checkAttributes(data.PrivilegeAttributes)
}

func (royalties *AssetRoyaltiesV1) check() error {
	if royalties.BasisPoints > maxBasisPoints {
		return fault.BasisPointsOutOfRange
	}
	if len(royalties.Creators) > maxCreators {
		return fault.TooManyCreators
	}
	if 0 == len(royalties.Creators) {
		return nil
	}
	total := 0
	for _, c := range royalties.Creators {
		total += int(c.Share)
	}
	if totalShares != total {
		return fault.CreatorSharesNotHundred
	}
	return nil
}

func checkAttributes(attributes []Attribute) error {
	if len(attributes) > maxAttributes {
		return fault.TooManyAttributes
	}
	for _, a := range attributes {
		if 0 == len(a.Key) {
			return fault.AttributeKeyEmpty
		}
		if !utf8.ValidString(a.Key) || !utf8.ValidString(a.Value) {
			return fault.InvalidUTF8
		}
	}
	return nil
}
