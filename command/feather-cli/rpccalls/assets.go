// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/rpc/assets"
)

// CreateGroup - create an empty group
func (c *Client) CreateGroup(key *account.PrivateKey, authority address.Address, seed uint64, maxSize uint64) (address.Address, error) {
	signed, err := assets.Sign(key, assets.CreateGroupMethod, authority, seed, processor.CreateGroupArgs{MaxSize: maxSize}, c.now())
	if nil != err {
		return address.Address{}, err
	}
	arguments := assets.CreateGroupArguments{
		Authority: authority,
		Seed:      seed,
		MaxSize:   maxSize,
		Signed:    signed,
	}
	var reply assets.CreateReply
	if err := c.call(assets.CreateGroupMethod, &arguments, &reply); nil != err {
		return address.Address{}, err
	}
	return reply.Address, nil
}

// CreateAsset - create a standalone asset
func (c *Client) CreateAsset(key *account.PrivateKey, authority address.Address, seed uint64, args processor.CreateAssetArgs) (address.Address, error) {
	return c.create(assets.CreateMethod, key, authority, seed, args)
}

// CreateMemberAsset - create an asset in the group derived from groupSeed
func (c *Client) CreateMemberAsset(key *account.PrivateKey, authority address.Address, groupSeed uint64, args processor.CreateAssetArgs) (address.Address, error) {
	return c.create(assets.CreateMemberMethod, key, authority, groupSeed, args)
}

func (c *Client) create(method string, key *account.PrivateKey, authority address.Address, seed uint64, args processor.CreateAssetArgs) (address.Address, error) {
	signed, err := assets.Sign(key, method, authority, seed, args, c.now())
	if nil != err {
		return address.Address{}, err
	}
	arguments := assets.CreateArguments{
		Authority: authority,
		Seed:      seed,
		Asset:     args,
		Signed:    signed,
	}
	var reply assets.CreateReply
	if err := c.call(method, &arguments, &reply); nil != err {
		return address.Address{}, err
	}
	return reply.Address, nil
}

// Get - fetch committed records
func (c *Client) Get(addresses []address.Address) (*assets.GetReply, error) {
	var reply assets.GetReply
	if err := c.call(assets.GetMethod, &assets.GetArguments{Addresses: addresses}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
