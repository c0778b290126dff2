// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/commit"
	"github.com/bitmark-inc/featherd/commit/mocks"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/fixtures"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/record"
)

var signer = &account.Account{
	Test:      true,
	PublicKey: []byte{
		0x73, 0x11, 0x14, 0x26, 0x7f, 0x15, 0x75, 0x4a,
		0x5f, 0xce, 0x4a, 0xae, 0xd8, 0x38, 0x0b, 0x28,
		0xaf, 0xf2, 0x5a, 0xf7, 0xb3, 0x78, 0xb0, 0x11,
		0xd9, 0x2e, 0xf7, 0xb3, 0xf0, 0x89, 0x10, 0xdb,
	},
}

var accounts = processor.Accounts{
	Signer:    signer,
	Authority: fixtures.Authority,
}

func rootParams(inputs ...processor.InputAccount) *processor.RootParams {
	return &processor.RootParams{
		Proof:            &batch.CompressedProof{A: [32]byte{0x0a}},
		StateTree:        fixtures.StateTree,
		StateRootIndex:   2,
		AddressTree:      fixtures.AddressTree,
		AddressRootIndex: 1,
		Inputs:           inputs,
	}
}

func derive(parts ...[]byte) address.Address {
	return address.Derive(address.DeriveSeed(fixtures.Program, parts...), fixtures.AddressTree)
}

func groupAddress(seed uint64) address.Address {
	return derive(address.GroupTag, fixtures.Authority[:], address.Uint64Seed(seed))
}

func groupInput(t *testing.T, seed uint64, size uint64, maxSize uint64) processor.InputAccount {
	g := record.GroupV1{
		Address:   groupAddress(seed),
		Authority: fixtures.Authority,
		Size:      size,
		MaxSize:   maxSize,
	}
	packed, err := g.Pack()
	if nil != err {
		t.Fatalf("pack group error: %s", err)
	}
	return processor.InputAccount{Packed: packed, LeafIndex: 11}
}

// a processor whose verifier records the single request it receives
func setup(t *testing.T, result error) (*processor.Processor, *gomock.Controller, **batch.Request) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	captured := new(*batch.Request)

	v := mocks.NewMockVerifier(ctl)
	v.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request *batch.Request, signature *commit.Signature) error {
			assert.Nil(t, signature.Check(fixtures.Program, request), "signature")
			*captured = request
			return result
		}).Times(1)

	log := logger.New(fixtures.LogCategory)
	invoker := commit.NewInvoker(log, fixtures.Program, v)
	return processor.New(log, fixtures.Program, invoker), ctl, captured
}

// a processor whose verifier must not be called
func setupNoCommit(t *testing.T) (*processor.Processor, *gomock.Controller) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	v := mocks.NewMockVerifier(ctl)
	v.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	log := logger.New(fixtures.LogCategory)
	invoker := commit.NewInvoker(log, fixtures.Program, v)
	return processor.New(log, fixtures.Program, invoker), ctl
}

func teardown(ctl *gomock.Controller) {
	ctl.Finish()
	fixtures.TeardownTestLogger()
}

func unpack(t *testing.T, out batch.OutputRecord) record.Record {
	r, err := out.Packed.UnpackExact()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	return r
}

func TestCreateAssetWithoutSubRecords(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	result, err := p.CreateAsset(context.Background(), accounts, rootParams(), 3, processor.CreateAssetArgs{Transferable: true})
	if !assert.Nil(t, err, "create asset") {
		return
	}
	request := *captured

	expected := derive(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(3))
	assert.Equal(t, expected, result, "asset address")
	assert.Equal(t, 1, len(request.NewAddressParams), "new addresses")
	assert.Equal(t, 1, len(request.Outputs), "outputs")
	assert.Equal(t, 0, len(request.Inputs), "inputs")
	assert.Equal(t, uint16(1), request.NewAddressParams[0].RootIndex, "address root index")

	asset, ok := unpack(t, request.Outputs[0]).(*record.AssetV1)
	if !assert.True(t, ok, "asset record") {
		return
	}
	assert.Equal(t, result, asset.Address, "stored address")
	assert.False(t, asset.HasMetadata, "has metadata")
	assert.False(t, asset.HasRoyalties, "has royalties")
	assert.False(t, asset.HasMultisig, "has multisig")
	assert.True(t, asset.Transferable, "transferable")
	assert.Equal(t, record.OwnerAuthority, asset.AuthorityState, "authority state")
	assert.Equal(t, record.Unlocked, asset.State, "lock state")
	assert.Nil(t, asset.GroupMembership, "membership")
}

func TestCreateAssetWithMetadataAndRoyalty(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	args := processor.CreateAssetArgs{
		Rentable: true,
		Metadata: &processor.MetadataArgs{
			Name:       "Feather",
			URI:        "https://example.com/feather.json",
			Attributes: []record.Attribute{{Key: "colour", Value: "white"}},
			Mutable:    false,
		},
		Royalty: &processor.RoyaltyArgs{
			BasisPoints: 250,
			Creators:    []record.Creator{{Address: fixtures.Authority, Share: 100}},
		},
	}

	result, err := p.CreateAsset(context.Background(), accounts, rootParams(), 42, args)
	if !assert.Nil(t, err, "create asset") {
		return
	}
	request := *captured

	dataAddress := derive(address.AssetDataTag, result[:])
	royaltyAddress := derive(address.AssetRoyaltyTag, result[:])

	if !assert.Equal(t, 3, len(request.NewAddressParams), "new addresses") {
		return
	}
	assert.Equal(t, result, request.NewAddressParams[0].Address(), "asset address first")
	assert.Equal(t, dataAddress, request.NewAddressParams[1].Address(), "metadata address second")
	assert.Equal(t, royaltyAddress, request.NewAddressParams[2].Address(), "royalty address third")

	if !assert.Equal(t, 3, len(request.Outputs), "outputs") {
		return
	}
	assert.Equal(t, dataAddress, request.Outputs[0].Address, "metadata output first")
	assert.Equal(t, royaltyAddress, request.Outputs[1].Address, "royalty output second")
	assert.Equal(t, result, request.Outputs[2].Address, "asset output last")

	data := unpack(t, request.Outputs[0]).(*record.AssetDataV1)
	assert.Equal(t, result, data.AssetKey, "metadata asset key")
	assert.Equal(t, "Feather", data.Name, "name")
	assert.Equal(t, 0, len(data.PrivilegeAttributes), "privilege attributes")

	royalties := unpack(t, request.Outputs[1]).(*record.AssetRoyaltiesV1)
	assert.Equal(t, result, royalties.AssetKey, "royalty asset key")
	assert.Equal(t, uint16(250), royalties.BasisPoints, "basis points")

	asset := unpack(t, request.Outputs[2]).(*record.AssetV1)
	assert.True(t, asset.HasMetadata, "has metadata")
	assert.True(t, asset.HasRoyalties, "has royalties")
	assert.True(t, asset.Rentable, "rentable")
}

// authority A, seed 7, metadata only
func TestCreateAssetMetadataOnlyScenario(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	args := processor.CreateAssetArgs{
		Rentable:     true,
		Transferable: false,
		Metadata: &processor.MetadataArgs{
			Name:       "X",
			URI:        "u",
			Attributes: []record.Attribute{},
			Mutable:    true,
		},
	}

	result, err := p.CreateAsset(context.Background(), accounts, rootParams(), 7, args)
	if !assert.Nil(t, err, "create asset") {
		return
	}
	request := *captured

	assert.Equal(t, derive(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(7)), result, "asset address")
	if !assert.Equal(t, 2, len(request.Outputs), "outputs") {
		return
	}

	data := unpack(t, request.Outputs[0]).(*record.AssetDataV1)
	assert.Equal(t, result, data.AssetKey, "asset key")
	assert.Equal(t, "X", data.Name, "name")
	assert.Equal(t, "u", data.URI, "uri")
	assert.True(t, data.Mutable, "mutable")

	asset := unpack(t, request.Outputs[1]).(*record.AssetV1)
	assert.True(t, asset.HasMetadata, "has metadata")
	assert.False(t, asset.HasRoyalties, "has royalties")
	assert.True(t, asset.Rentable, "rentable")
	assert.False(t, asset.Transferable, "transferable")
}

// group with size 4 admits member 5
func TestCreateMemberAssetScenario(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	input := groupInput(t, 1, 4, 0)
	result, err := p.CreateMemberAsset(context.Background(), accounts, rootParams(input), 1, processor.CreateAssetArgs{})
	if !assert.Nil(t, err, "create member asset") {
		return
	}
	request := *captured
	g := groupAddress(1)

	assert.Equal(t, derive(address.AssetTag, g[:], address.Uint64Seed(5)), result, "member address")

	if !assert.Equal(t, 1, len(request.Inputs), "inputs") {
		return
	}
	assert.Equal(t, g, request.Inputs[0].Address, "input address")
	assert.Equal(t, input.Packed, request.Inputs[0].Packed, "input pre-image")
	assert.Equal(t, input.Packed.DataHash(), request.Inputs[0].DataHash, "input hash")
	assert.Equal(t, uint32(11), request.Inputs[0].LeafIndex, "leaf index")
	assert.Equal(t, uint16(2), request.Inputs[0].RootIndex, "state root index")

	assert.Equal(t, 1, len(request.NewAddressParams), "only the asset is new")
	if !assert.Equal(t, 2, len(request.Outputs), "outputs") {
		return
	}

	group := unpack(t, request.Outputs[0]).(*record.GroupV1)
	assert.Equal(t, g, group.Address, "group address unchanged")
	assert.Equal(t, uint64(5), group.Size, "group size")

	asset := unpack(t, request.Outputs[1]).(*record.AssetV1)
	if !assert.NotNil(t, asset.GroupMembership, "membership") {
		return
	}
	assert.Equal(t, g, asset.GroupMembership.GroupKey, "group key")
	assert.Equal(t, uint64(5), asset.GroupMembership.MemberNumber, "member number")
}

func TestCreateMemberAssetWithSubRecords(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	args := processor.CreateAssetArgs{
		Metadata: &processor.MetadataArgs{Name: "member"},
		Royalty:  &processor.RoyaltyArgs{BasisPoints: 100},
	}
	result, err := p.CreateMemberAsset(context.Background(), accounts, rootParams(groupInput(t, 2, 0, 10)), 2, args)
	if !assert.Nil(t, err, "create member asset") {
		return
	}
	request := *captured

	assert.Equal(t, 3, len(request.NewAddressParams), "new addresses")
	if !assert.Equal(t, 4, len(request.Outputs), "outputs") {
		return
	}
	assert.Equal(t, groupAddress(2), request.Outputs[0].Address, "group first")
	assert.Equal(t, derive(address.AssetDataTag, result[:]), request.Outputs[1].Address, "metadata second")
	assert.Equal(t, derive(address.AssetRoyaltyTag, result[:]), request.Outputs[2].Address, "royalty third")
	assert.Equal(t, result, request.Outputs[3].Address, "asset last")
}

func TestCreateMemberAssetOverflow(t *testing.T) {
	p, ctl := setupNoCommit(t)
	defer teardown(ctl)

	input := groupInput(t, 1, math.MaxUint64, 0)
	_, err := p.CreateMemberAsset(context.Background(), accounts, rootParams(input), 1, processor.CreateAssetArgs{})
	assert.Equal(t, fault.MemberAssetOverflow, err, "overflow")
	assert.True(t, fault.IsErrOverflow(err), "overflow class")
}

func TestCreateMemberAssetGroupFull(t *testing.T) {
	p, ctl := setupNoCommit(t)
	defer teardown(ctl)

	input := groupInput(t, 1, 3, 3)
	_, err := p.CreateMemberAsset(context.Background(), accounts, rootParams(input), 1, processor.CreateAssetArgs{})
	assert.Equal(t, fault.GroupFull, err, "full")
}

func TestCreateMemberAssetPreconditions(t *testing.T) {
	p, ctl := setupNoCommit(t)
	defer teardown(ctl)

	ctx := context.Background()
	args := processor.CreateAssetArgs{}

	_, err := p.CreateMemberAsset(ctx, accounts, rootParams(), 1, args)
	assert.Equal(t, fault.GroupNotFound, err, "no group")

	_, err = p.CreateMemberAsset(ctx, accounts, rootParams(groupInput(t, 1, 0, 0)), 2, args)
	assert.Equal(t, fault.GroupAddressMismatch, err, "other group seed")

	other := processor.Accounts{Signer: signer, Authority: address.Address{0x99}}
	_, err = p.CreateMemberAsset(ctx, other, rootParams(groupInput(t, 1, 0, 0)), 1, args)
	assert.Equal(t, fault.GroupAddressMismatch, err, "other authority")

	_, err = p.CreateMemberAsset(ctx, accounts, rootParams(groupInput(t, 1, 0, 0), groupInput(t, 2, 0, 0)), 1, args)
	assert.Equal(t, fault.InputCountMismatch, err, "two inputs")

	asset := record.AssetV1{Address: groupAddress(1)}
	packed, _ := asset.Pack()
	_, err = p.CreateMemberAsset(ctx, accounts, rootParams(processor.InputAccount{Packed: packed}), 1, args)
	assert.Equal(t, fault.UnexpectedRecordType, err, "not a group")
}

func TestMissingAccounts(t *testing.T) {
	p, ctl := setupNoCommit(t)
	defer teardown(ctl)

	ctx := context.Background()
	args := processor.CreateAssetArgs{}

	_, err := p.CreateAsset(ctx, processor.Accounts{Authority: fixtures.Authority}, rootParams(), 1, args)
	assert.Equal(t, fault.MissingSigner, err, "signer")

	_, err = p.CreateAsset(ctx, processor.Accounts{Signer: signer}, rootParams(), 1, args)
	assert.Equal(t, fault.MissingAuthority, err, "authority")

	_, err = p.CreateAsset(ctx, accounts, nil, 1, args)
	assert.Equal(t, fault.MissingParameters, err, "parameters")

	params := rootParams()
	params.Proof = nil
	_, err = p.CreateAsset(ctx, accounts, params, 1, args)
	assert.Equal(t, fault.MissingProof, err, "proof")
}

func TestConstructionErrorAborts(t *testing.T) {
	p, ctl := setupNoCommit(t)
	defer teardown(ctl)

	args := processor.CreateAssetArgs{
		Metadata: &processor.MetadataArgs{Name: strings.Repeat("x", 65)},
	}
	_, err := p.CreateAsset(context.Background(), accounts, rootParams(), 1, args)
	assert.Equal(t, fault.NameTooLong, err, "metadata error")
	assert.True(t, fault.IsErrConstruction(err), "construction class")

	args = processor.CreateAssetArgs{
		Royalty: &processor.RoyaltyArgs{Creators: []record.Creator{{Share: 99}}},
	}
	_, err = p.CreateAsset(context.Background(), accounts, rootParams(), 1, args)
	assert.Equal(t, fault.CreatorSharesNotHundred, err, "royalty error")
}

func TestExternalRejection(t *testing.T) {
	p, ctl, _ := setup(t, fault.AddressExists)
	defer teardown(ctl)

	result, err := p.CreateAsset(context.Background(), accounts, rootParams(), 1, processor.CreateAssetArgs{})
	assert.Equal(t, fault.AddressExists, err, "rejection returned verbatim")
	assert.True(t, result.IsZero(), "no address on failure")
}

func TestCreateGroup(t *testing.T) {
	p, ctl, captured := setup(t, nil)
	defer teardown(ctl)

	result, err := p.CreateGroup(context.Background(), accounts, rootParams(), 1, processor.CreateGroupArgs{MaxSize: 10})
	if !assert.Nil(t, err, "create group") {
		return
	}
	request := *captured

	assert.Equal(t, groupAddress(1), result, "group address")
	assert.Equal(t, 1, len(request.NewAddressParams), "new addresses")
	if !assert.Equal(t, 1, len(request.Outputs), "outputs") {
		return
	}
	group := unpack(t, request.Outputs[0]).(*record.GroupV1)
	assert.Equal(t, uint64(0), group.Size, "size")
	assert.Equal(t, uint64(10), group.MaxSize, "max size")
	assert.Equal(t, fixtures.Authority, group.Authority, "authority")
}

func TestGroupAndAssetSeedsDoNotCollide(t *testing.T) {
	asset := derive(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(1))
	group := derive(address.GroupTag, fixtures.Authority[:], address.Uint64Seed(1))
	assert.NotEqual(t, asset, group, "same authority and seed")
}
