// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/record"
	"github.com/bitmark-inc/featherd/util"
)

var (
	assetAddress = address.Address{0x00, 0x01, 0x02, 0x03}
	groupAddress = address.Address{0x00, 0x0a, 0x0b}
	authority    = address.Address{0xa1, 0xa2}
	creatorOne   = address.Address{0xc1}
	creatorTwo   = address.Address{0xc2}
	ruleset      = address.Address{0xe0}
)

func TestPackGroup(t *testing.T) {
	g := record.GroupV1{
		Address:   groupAddress,
		Authority: authority,
		Size:      300,
		MaxSize:   0,
	}

	expected := []byte{0x04, 0x20}
	expected = append(expected, groupAddress[:]...)
	expected = append(expected, 0x20)
	expected = append(expected, authority[:]...)
	expected = append(expected, 0xac, 0x02, 0x00)

	packed, err := g.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, record.Packed(expected), packed, "packed bytes")
	assert.Equal(t, record.GroupTag, packed.Type(), "type")

	unpacked, n, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, len(packed), n, "unpacked length")
	assert.Equal(t, &g, unpacked, "unpacked group")
}

func TestPackAssetFlags(t *testing.T) {
	a := record.AssetV1{
		Address:        assetAddress,
		AuthorityState: record.OwnerAuthority,
		State:          record.Unlocked,
		Rentable:       true,
		HasMetadata:    true,
	}

	packed, err := a.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, record.AssetTag, packed.Type(), "type")

	// tag, address, authority, state, no membership, flags
	assert.Equal(t, 1+1+32+1+1+1+1, len(packed), "packed length")
	assert.Equal(t, byte(0x05), packed[len(packed)-1], "flags")

	unpacked, err := packed.UnpackExact()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, &a, unpacked, "unpacked asset")
}

func TestPackMemberAsset(t *testing.T) {
	a := record.AssetV1{
		Address:        assetAddress,
		AuthorityState: record.OwnerAuthority,
		State:          record.Unlocked,
		GroupMembership: &record.GroupMembership{
			GroupKey:     groupAddress,
			MemberNumber: 5,
		},
		Transferable: true,
	}

	packed, err := a.Pack()
	assert.Nil(t, err, "pack")

	unpacked, err := packed.UnpackExact()
	assert.Nil(t, err, "unpack")
	asset, ok := unpacked.(*record.AssetV1)
	if !assert.True(t, ok, "not an asset: %T", unpacked) {
		return
	}
	assert.Equal(t, groupAddress, asset.GroupMembership.GroupKey, "group key")
	assert.Equal(t, uint64(5), asset.GroupMembership.MemberNumber, "member number")
	assert.True(t, asset.Transferable, "transferable")
	assert.False(t, asset.Rentable, "rentable")
}

func TestPackAssetInvalidVariants(t *testing.T) {
	a := record.AssetV1{AuthorityState: 2}
	_, err := a.Pack()
	assert.Equal(t, fault.InvalidAuthorityVariant, err, "authority")

	a = record.AssetV1{State: 7}
	_, err = a.Pack()
	assert.Equal(t, fault.InvalidLockState, err, "lock state")
}

func TestPackAssetData(t *testing.T) {
	d := record.AssetDataV1{
		AssetKey: assetAddress,
		Name:     "X",
		URI:      "u",
		Attributes: []record.Attribute{
			{Key: "colour", Value: "blue"},
			{Key: "size", Value: ""},
		},
		Mutable:             true,
		PrivilegeAttributes: []record.Attribute{},
	}

	packed, err := d.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, record.AssetDataTag, packed.Type(), "type")

	unpacked, err := packed.UnpackExact()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, &d, unpacked, "unpacked data")
}

func TestPackAssetDataLimits(t *testing.T) {
	tests := []struct {
		data record.AssetDataV1
		err  error
	}{
		{record.AssetDataV1{Name: ""}, fault.NameTooShort},
		{record.AssetDataV1{Name: strings.Repeat("n", 65)}, fault.NameTooLong},
		{record.AssetDataV1{Name: strings.Repeat("é", 64)}, nil},
		{record.AssetDataV1{Name: "n", URI: strings.Repeat("u", 257)}, fault.URITooLong},
		{record.AssetDataV1{Name: "n", Attributes: make([]record.Attribute, 33)}, fault.TooManyAttributes},
		{record.AssetDataV1{Name: "n", Attributes: []record.Attribute{{Key: "", Value: "v"}}}, fault.AttributeKeyEmpty},
		{record.AssetDataV1{Name: "n", PrivilegeAttributes: []record.Attribute{{Value: "v"}}}, fault.AttributeKeyEmpty},
	}

	for i, test := range tests {
		_, err := test.data.Pack()
		assert.Equal(t, test.err, err, "%d: error", i)
		if nil != test.err {
			assert.True(t, fault.IsErrConstruction(err), "%d: construction class", i)
		}
	}
}

func TestPackRoyalties(t *testing.T) {
	r := record.AssetRoyaltiesV1{
		AssetKey:    assetAddress,
		BasisPoints: 500,
		Creators: []record.Creator{
			{Address: creatorOne, Share: 60},
			{Address: creatorTwo, Share: 40},
		},
		Ruleset: ruleset,
	}

	packed, err := r.Pack()
	assert.Nil(t, err, "pack")

	unpacked, err := packed.UnpackExact()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, &r, unpacked, "unpacked royalties")
}

func TestPackRoyaltiesLimits(t *testing.T) {
	tests := []struct {
		royalties record.AssetRoyaltiesV1
		err       error
	}{
		{record.AssetRoyaltiesV1{BasisPoints: 10001}, fault.BasisPointsOutOfRange},
		{record.AssetRoyaltiesV1{BasisPoints: 10000}, nil},
		{record.AssetRoyaltiesV1{Creators: make([]record.Creator, 6)}, fault.TooManyCreators},
		{record.AssetRoyaltiesV1{Creators: []record.Creator{{Share: 50}, {Share: 49}}}, fault.CreatorSharesNotHundred},
		{record.AssetRoyaltiesV1{Creators: []record.Creator{{Share: 100}}}, nil},
	}

	for i, test := range tests {
		_, err := test.royalties.Pack()
		assert.Equal(t, test.err, err, "%d: error", i)
	}
}

func TestPackGroupOverMaximum(t *testing.T) {
	g := record.GroupV1{Size: 3, MaxSize: 2}
	_, err := g.Pack()
	assert.Equal(t, fault.GroupFull, err, "over maximum")
}

func TestUnpackInvalid(t *testing.T) {
	g := record.GroupV1{Address: groupAddress, Authority: authority, Size: 1}
	packed, err := g.Pack()
	if !assert.Nil(t, err, "pack") {
		return
	}

	for cut := 1; cut < len(packed); cut += 1 {
		_, _, err := packed[:cut].Unpack()
		assert.NotNil(t, err, "truncated at: %d", cut)
	}

	_, err = append(packed, 0x00).UnpackExact()
	assert.Equal(t, fault.RecordHasExcessData, err, "excess data")

	_, _, err = record.Packed{}.Unpack()
	assert.Equal(t, fault.NotARecord, err, "empty")

	_, _, err = record.Packed{0x09, 0x00}.Unpack()
	assert.Equal(t, fault.UnknownRecordType, err, "unknown tag")
}

// hand built encodings, bypassing the checks in Pack
func rawAddress(buffer []byte, a address.Address) []byte {
	buffer = util.AppendVarint64(buffer, address.Length)
	return append(buffer, a[:]...)
}

func rawString(buffer []byte, s string) []byte {
	buffer = util.AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

func rawRoyalties(basisPoints uint64, shares ...uint64) record.Packed {
	buffer := util.ToVarint64(uint64(record.AssetRoyaltiesTag))
	buffer = rawAddress(buffer, assetAddress)
	buffer = util.AppendVarint64(buffer, basisPoints)
	buffer = util.AppendVarint64(buffer, uint64(len(shares)))
	for _, share := range shares {
		buffer = rawAddress(buffer, creatorOne)
		buffer = util.AppendVarint64(buffer, share)
	}
	return rawAddress(buffer, ruleset)
}

func rawAssetData(name string, attributeCount int) record.Packed {
	buffer := util.ToVarint64(uint64(record.AssetDataTag))
	buffer = rawAddress(buffer, assetAddress)
	buffer = rawString(buffer, name)
	buffer = rawString(buffer, "")
	buffer = util.AppendVarint64(buffer, uint64(attributeCount))
	for i := 0; i < attributeCount; i += 1 {
		buffer = rawString(buffer, "k")
		buffer = rawString(buffer, "v")
	}
	buffer = util.AppendVarint64(buffer, 0)
	return util.AppendVarint64(buffer, 0)
}

func TestUnpackLimits(t *testing.T) {
	group := util.ToVarint64(uint64(record.GroupTag))
	group = rawAddress(group, groupAddress)
	group = rawAddress(group, authority)
	group = util.AppendVarint64(group, 3)
	group = util.AppendVarint64(group, 2)

	tests := []struct {
		packed record.Packed
		err    error
	}{
		{rawRoyalties(10000), nil},
		{rawRoyalties(10001), fault.BasisPointsOutOfRange},
		{rawRoyalties(0, 20, 20, 20, 20, 20), nil},
		{rawRoyalties(0, 20, 20, 20, 20, 10, 10), fault.TooManyCreators},
		{rawRoyalties(0, 101), fault.CreatorSharesNotHundred},
		{rawRoyalties(0, 50, 49), fault.CreatorSharesNotHundred},
		{rawAssetData("n", 32), nil},
		{rawAssetData("n", 33), fault.TooManyAttributes},
		{rawAssetData("", 0), fault.NameTooShort},
		{rawAssetData("bad\xff", 0), fault.InvalidUTF8},
		{record.Packed(group), fault.GroupFull},
	}

	for i, test := range tests {
		r, err := test.packed.UnpackExact()
		assert.Equal(t, test.err, err, "%d: error", i)
		if nil != err {
			continue
		}
		repacked, err := r.Pack()
		assert.Nil(t, err, "%d: repack", i)
		assert.Equal(t, test.packed, repacked, "%d: repacked bytes", i)
	}
}

func TestPackInvalidUTF8(t *testing.T) {
	tests := []record.AssetDataV1{
		{Name: "bad\xff"},
		{Name: "n", URI: "https://example.com/\xc3"},
		{Name: "n", Attributes: []record.Attribute{{Key: "k\xfe", Value: "v"}}},
		{Name: "n", PrivilegeAttributes: []record.Attribute{{Key: "k", Value: "\xff"}}},
	}

	for i, data := range tests {
		_, err := data.Pack()
		assert.Equal(t, fault.InvalidUTF8, err, "%d: error", i)
		assert.True(t, fault.IsErrRecord(err), "%d: record class", i)
	}
}

func TestDataHash(t *testing.T) {
	packed := record.Packed("hello world")
	expected := merkle.Digest{
		0x64, 0x4b, 0xcc, 0x7e, 0x56, 0x43, 0x73, 0x04,
		0x09, 0x99, 0xaa, 0xc8, 0x9e, 0x76, 0x22, 0xf3,
		0xca, 0x71, 0xfb, 0xa1, 0xd9, 0x72, 0xfd, 0x94,
		0xa3, 0x1c, 0x3b, 0xfb, 0xf2, 0x4e, 0x39, 0x38,
	}
	assert.Equal(t, expected, packed.DataHash(), "sha3-256")
}

func TestRecordName(t *testing.T) {
	name, ok := record.RecordName(&record.GroupV1{})
	assert.True(t, ok, "known")
	assert.Equal(t, "GroupV1", name, "group")

	_, ok = record.RecordName(42)
	assert.False(t, ok, "unknown")
}
