// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"context"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/record"
)

// Invoker - forwards a finished batch for verification
type Invoker interface {
	Invoke(ctx context.Context, request *batch.Request) error
}

// Processor - builds and submits asset creation batches for one program
type Processor struct {
	log     *logger.L
	program address.Address
	invoker Invoker
}

// New - create a processor
func New(log *logger.L, program address.Address, invoker Invoker) *Processor {
	return &Processor{
		log:     log,
		program: program,
		invoker: invoker,
	}
}

// Program - the program that owns every record
func (p *Processor) Program() address.Address {
	return p.program
}

// CreateGroup - create an empty group at {group tag, authority, seed}
func (p *Processor) CreateGroup(ctx context.Context, accounts Accounts, params *RootParams, seed uint64, args CreateGroupArgs) (address.Address, error) {
	c, err := NewContext(p.program, accounts, params)
	if nil != err {
		return address.Address{}, err
	}

	authority := accounts.Authority
	group := &record.GroupV1{
		Address:   c.NewAddress(address.GroupTag, authority[:], address.Uint64Seed(seed)),
		Authority: authority,
		Size:      0,
		MaxSize:   args.MaxSize,
	}
	if err := c.AddOutput(group.Address, group); nil != err {
		return address.Address{}, err
	}

	p.log.Infof("create group: %s  authority: %s  seed: %d", group.Address, authority, seed)
	return p.commit(ctx, c, group.Address)
}

// CreateAsset - create a standalone asset at {asset tag, authority, seed}
//
// new addresses: asset, metadata, royalty
// outputs: metadata, royalty, asset
func (p *Processor) CreateAsset(ctx context.Context, accounts Accounts, params *RootParams, seed uint64, args CreateAssetArgs) (address.Address, error) {
	c, err := NewContext(p.program, accounts, params)
	if nil != err {
		return address.Address{}, err
	}

	authority := accounts.Authority
	asset := newAsset(c.NewAddress(address.AssetTag, authority[:], address.Uint64Seed(seed)), args)

	if err := p.buildAsset(c, asset, args); nil != err {
		return address.Address{}, err
	}

	p.log.Infof("create asset: %s  authority: %s  seed: %d", asset.Address, authority, seed)
	return p.commit(ctx, c, asset.Address)
}

// CreateMemberAsset - admit a new asset to an existing group
//
// the asset is at {asset tag, group address, new group size}
// outputs: group, metadata, royalty, asset
func (p *Processor) CreateMemberAsset(ctx context.Context, accounts Accounts, params *RootParams, groupSeed uint64, args CreateAssetArgs) (address.Address, error) {
	c, err := NewContext(p.program, accounts, params)
	if nil != err {
		return address.Address{}, err
	}

	group, err := c.LoadGroup(groupSeed)
	if nil != err {
		return address.Address{}, err
	}

	if math.MaxUint64 == group.Size {
		p.log.Warnf("group: %s  size: %d  overflow", group.Address, group.Size)
		return address.Address{}, fault.MemberAssetOverflow
	}
	newSize := group.Size + 1
	if 0 != group.MaxSize && newSize > group.MaxSize {
		return address.Address{}, fault.GroupFull
	}

	group.Size = newSize
	if err := c.AddOutput(group.Address, group); nil != err {
		return address.Address{}, err
	}

	asset := newAsset(c.NewAddress(address.AssetTag, group.Address[:], address.Uint64Seed(newSize)), args)
	asset.GroupMembership = &record.GroupMembership{
		GroupKey:     group.Address,
		MemberNumber: newSize,
	}

	if err := p.buildAsset(c, asset, args); nil != err {
		return address.Address{}, err
	}

	p.log.Infof("create member asset: %s  group: %s  member: %d", asset.Address, group.Address, newSize)
	return p.commit(ctx, c, asset.Address)
}

func newAsset(assetAddress address.Address, args CreateAssetArgs) *record.AssetV1 {
	return &record.AssetV1{
		Address:         assetAddress,
		AuthorityState:  record.OwnerAuthority,
		State:           record.Unlocked,
		GroupMembership: nil,
		Rentable:        args.Rentable,
		Transferable:    args.Transferable,
		HasMultisig:     false,
	}
}

// optional metadata and royalty records followed by the asset itself
func (p *Processor) buildAsset(c *Context, asset *record.AssetV1, args CreateAssetArgs) error {
	if nil != args.Metadata {
		asset.HasMetadata = true
		data := &record.AssetDataV1{
			AssetKey:            asset.Address,
			Name:                args.Metadata.Name,
			URI:                 args.Metadata.URI,
			Attributes:          args.Metadata.Attributes,
			Mutable:             args.Metadata.Mutable,
			PrivilegeAttributes: []record.Attribute{},
		}
		if nil == data.Attributes {
			data.Attributes = []record.Attribute{}
		}
		dataAddress := c.NewAddress(address.AssetDataTag, asset.Address[:])
		if err := c.AddOutput(dataAddress, data); nil != err {
			p.log.Debugf("asset: %s  metadata error: %s", asset.Address, err)
			return err
		}
	} else {
		asset.HasMetadata = false
	}

	if nil != args.Royalty {
		asset.HasRoyalties = true
		royalties := &record.AssetRoyaltiesV1{
			AssetKey:    asset.Address,
			BasisPoints: args.Royalty.BasisPoints,
			Creators:    args.Royalty.Creators,
			Ruleset:     args.Royalty.Ruleset,
		}
		if nil == royalties.Creators {
			royalties.Creators = []record.Creator{}
		}
		royaltyAddress := c.NewAddress(address.AssetRoyaltyTag, asset.Address[:])
		if err := c.AddOutput(royaltyAddress, royalties); nil != err {
			p.log.Debugf("asset: %s  royalty error: %s", asset.Address, err)
			return err
		}
	} else {
		asset.HasRoyalties = false
	}

	return c.AddOutput(asset.Address, asset)
}

func (p *Processor) commit(ctx context.Context, c *Context, result address.Address) (address.Address, error) {
	request, err := c.Build()
	if nil != err {
		p.log.Errorf("assemble: %s  error: %s", result, err)
		return address.Address{}, err
	}

	err = p.invoker.Invoke(ctx, request)
	if nil != err {
		return address.Address{}, err
	}
	return result, nil
}
