// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/fixtures"
	"github.com/bitmark-inc/featherd/record"
)

var proof = &batch.CompressedProof{
	A: [32]byte{0x01},
	B: [64]byte{0x02},
	C: [32]byte{0x03},
}

func newParams(parts ...[]byte) batch.NewAddressParams {
	return batch.NewAddressParams{
		Seed:      address.DeriveSeed(fixtures.Program, parts...),
		Tree:      fixtures.AddressTree,
		RootIndex: 3,
	}
}

func TestBuildStandalone(t *testing.T) {
	assetParams := newParams(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(1))
	assetAddress := assetParams.Address()
	dataParams := newParams(address.AssetDataTag, assetAddress[:])
	dataAddress := dataParams.Address()

	a := batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	a.AddNewAddress(dataParams)

	err := a.AddOutput(dataAddress, &record.AssetDataV1{AssetKey: assetAddress, Name: "X"})
	assert.Nil(t, err, "data output")
	err = a.AddOutput(assetAddress, &record.AssetV1{Address: assetAddress, HasMetadata: true})
	assert.Nil(t, err, "asset output")

	request, err := a.Build(proof)
	if !assert.Nil(t, err, "build") {
		return
	}

	assert.Equal(t, proof, request.Proof, "proof")
	assert.Equal(t, []batch.NewAddressParams{assetParams, dataParams}, request.NewAddressParams, "new addresses")
	assert.Equal(t, 0, len(request.Inputs), "inputs")
	assert.Equal(t, 2, len(request.Outputs), "outputs")
	assert.Equal(t, dataAddress, request.Outputs[0].Address, "first output")
	assert.Equal(t, assetAddress, request.Outputs[1].Address, "last output")
	assert.Nil(t, request.RelayFee, "relay fee")
	assert.Nil(t, request.CompressLamports, "lamports")
	assert.False(t, request.IsCompress, "compress")

	for i, out := range request.Outputs {
		assert.Equal(t, fixtures.Program, out.Owner, "%d: owner", i)
		assert.Equal(t, fixtures.StateTree, out.StateTree, "%d: state tree", i)
		assert.Equal(t, out.Packed.DataHash(), out.DataHash, "%d: data hash", i)
	}
}

func TestBuildWithInput(t *testing.T) {
	groupAddress := address.Address{0x00, 0x67}
	group := &record.GroupV1{Address: groupAddress, Authority: fixtures.Authority, Size: 4}
	prior, err := group.Pack()
	if !assert.Nil(t, err, "pack prior group") {
		return
	}

	assetParams := newParams(address.AssetTag, groupAddress[:], address.Uint64Seed(5))
	assetAddress := assetParams.Address()

	a := batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	a.AddInput(batch.InputRecord{
		Owner:    fixtures.Program,
		Address:  groupAddress,
		Packed:   prior,
		DataHash: prior.DataHash(),
	})

	group.Size = 5
	assert.Nil(t, a.AddOutput(groupAddress, group), "group output")
	assert.Nil(t, a.AddOutput(assetAddress, &record.AssetV1{Address: assetAddress}), "asset output")

	request, err := a.Build(proof)
	if !assert.Nil(t, err, "build") {
		return
	}
	assert.Equal(t, 1, len(request.NewAddressParams), "only the asset is new")
	assert.Equal(t, 1, len(request.Inputs), "inputs")
	assert.Equal(t, groupAddress, request.Outputs[0].Address, "group first")
}

func TestBuildInconsistent(t *testing.T) {
	assetParams := newParams(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(9))
	assetAddress := assetParams.Address()
	unused := newParams(address.AssetRoyaltyTag, assetAddress[:])
	asset := &record.AssetV1{Address: assetAddress}

	a := batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	assert.Nil(t, a.AddOutput(assetAddress, asset), "output")
	_, err := a.Build(proof)
	assert.Equal(t, fault.OutputNotInBatch, err, "output without address request")

	a = batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	a.AddNewAddress(unused)
	assert.Nil(t, a.AddOutput(assetAddress, asset), "output")
	_, err = a.Build(proof)
	assert.Equal(t, fault.NewAddressNotUsed, err, "unused address request")

	a = batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	a.AddNewAddress(assetParams)
	_, err = a.Build(proof)
	assert.Equal(t, fault.DuplicateNewAddress, err, "duplicate address request")

	a = batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	a.AddInput(batch.InputRecord{Address: address.Address{0x00, 0x99}})
	assert.Nil(t, a.AddOutput(assetAddress, asset), "output")
	_, err = a.Build(proof)
	assert.Equal(t, fault.InputCountMismatch, err, "input not re-emitted")

	a = batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	a.AddNewAddress(assetParams)
	assert.Nil(t, a.AddOutput(assetAddress, asset), "output")
	_, err = a.Build(nil)
	assert.Equal(t, fault.MissingProof, err, "no proof")
}

func TestAddOutputConstructionError(t *testing.T) {
	a := batch.NewAssembler(fixtures.Program, fixtures.StateTree)
	err := a.AddOutput(address.Address{}, &record.AssetRoyaltiesV1{BasisPoints: 20000})
	assert.Equal(t, fault.BasisPointsOutOfRange, err, "pack error")
	assert.True(t, fault.IsErrConstruction(err), "construction class")
}

func TestRequestDigest(t *testing.T) {
	assetParams := newParams(address.AssetTag, fixtures.Authority[:], address.Uint64Seed(2))
	assetAddress := assetParams.Address()

	build := func(rentable bool) *batch.Request {
		a := batch.NewAssembler(fixtures.Program, fixtures.StateTree)
		a.AddNewAddress(assetParams)
		err := a.AddOutput(assetAddress, &record.AssetV1{Address: assetAddress, Rentable: rentable})
		if nil != err {
			t.Fatalf("output error: %s", err)
		}
		request, err := a.Build(proof)
		if nil != err {
			t.Fatalf("build error: %s", err)
		}
		return request
	}

	r1 := build(true)
	r2 := build(true)
	r3 := build(false)

	assert.Equal(t, r1.Digest(), r2.Digest(), "same request")
	assert.NotEqual(t, r1.Digest(), r3.Digest(), "different output")
	assert.Equal(t, byte(0x01), r1.Pack()[0], "proof present")

	r1.Proof = nil
	assert.Equal(t, byte(0x00), r1.Pack()[0], "proof absent")
}
