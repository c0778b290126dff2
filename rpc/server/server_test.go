// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"bytes"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/commit"
	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/fixtures"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/rpc/assets"
	"github.com/bitmark-inc/featherd/rpc/node"
	"github.com/bitmark-inc/featherd/rpc/server"
)

// serve the services on one end of a pipe, return a client on the other
func setup(t *testing.T) (*rpc.Client, *ledger.Ledger) {
	fixtures.SetupTestLogger()

	log := logger.New(fixtures.LogCategory)
	l, err := ledger.Open(log, filepath.Join(fixtures.Directory(), "server.leveldb"), ledger.ReadWrite, ledger.Options{
		Program:     fixtures.Program,
		StateTree:   fixtures.StateTree,
		AddressTree: fixtures.AddressTree,
		RootHistory: 16,
	})
	if nil != err {
		t.Fatalf("open ledger error: %s", err)
	}

	p := processor.New(log, fixtures.Program, commit.NewInvoker(log, fixtures.Program, l))
	s := server.Create(log, "v0.1", chain.Testing, true, &counter.Counter{}, p, l)

	serverConn, clientConn := net.Pipe()
	go s.Server.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	return jsonrpc.NewClient(clientConn), l
}

func teardown(client *rpc.Client, l *ledger.Ledger) {
	_ = client.Close()
	l.Close()
	fixtures.TeardownTestLogger()
}

func newKey(t *testing.T) *account.PrivateKey {
	key, err := account.NewPrivateKey(true, bytes.NewReader(bytes.Repeat([]byte{0x42}, 32)))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func TestNodeInfo(t *testing.T) {
	client, l := setup(t)
	defer teardown(client, l)

	var reply node.InfoReply
	err := client.Call(node.InfoMethod, &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, fixtures.Program, reply.Program, "wrong program")
	assert.Equal(t, uint64(0), reply.Root.Sequence, "wrong genesis sequence")
}

func sign(t *testing.T, key *account.PrivateKey, method string, seed uint64, args interface{}, at time.Time) assets.Signed {
	signed, err := assets.Sign(key, method, fixtures.Authority, seed, args, at)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return signed
}

func TestCreateGroupThenMember(t *testing.T) {
	client, l := setup(t)
	defer teardown(client, l)

	key := newKey(t)
	now := time.Now()

	groupArguments := assets.CreateGroupArguments{
		Authority: fixtures.Authority,
		Seed:      1,
		MaxSize:   1,
		Signed:    sign(t, key, assets.CreateGroupMethod, 1, processor.CreateGroupArgs{MaxSize: 1}, now),
	}
	var group assets.CreateReply
	err := client.Call(assets.CreateGroupMethod, &groupArguments, &group)
	if !assert.Nil(t, err, "wrong Assets.CreateGroup") {
		return
	}

	memberArguments := assets.CreateArguments{
		Authority: fixtures.Authority,
		Seed:      1,
		Asset:     processor.CreateAssetArgs{Transferable: true},
		Signed:    sign(t, key, assets.CreateMemberMethod, 1, processor.CreateAssetArgs{Transferable: true}, now),
	}
	var member assets.CreateReply
	err = client.Call(assets.CreateMemberMethod, &memberArguments, &member)
	if !assert.Nil(t, err, "wrong Assets.CreateMember") {
		return
	}

	// the same request again is refused before reaching the group
	err = client.Call(assets.CreateMemberMethod, &memberArguments, &member)
	if assert.NotNil(t, err, "wrong replayed member") {
		assert.Equal(t, fault.SignatureReplayed.Error(), err.Error(), "wrong replayed member error")
	}

	// group is full
	memberArguments.Signed = sign(t, key, assets.CreateMemberMethod, 1, processor.CreateAssetArgs{Transferable: true}, now.Add(time.Millisecond))
	err = client.Call(assets.CreateMemberMethod, &memberArguments, &member)
	if assert.NotNil(t, err, "wrong second member") {
		assert.Equal(t, fault.GroupFull.Error(), err.Error(), "wrong second member error")
	}

	var get assets.GetReply
	err = client.Call(assets.GetMethod, &assets.GetArguments{Addresses: []address.Address{group.Address, member.Address}}, &get)
	assert.Nil(t, err, "wrong Assets.Get")
	if assert.Equal(t, 2, len(get.Records), "wrong record count") {
		assert.Equal(t, "GroupV1", get.Records[0].Record, "wrong group record")
		assert.Equal(t, "AssetV1", get.Records[1].Record, "wrong member record")
	}

	var roots node.RootsReply
	err = client.Call(node.RootsMethod, &node.RootsArguments{Count: 10}, &roots)
	assert.Nil(t, err, "wrong Node.Roots")
	assert.Equal(t, 3, len(roots.Roots), "wrong root count")
	assert.Equal(t, uint64(2), roots.Roots[0].Sequence, "wrong newest root")
}

func TestCreateWithBadSignature(t *testing.T) {
	client, l := setup(t)
	defer teardown(client, l)

	key := newKey(t)
	arguments := assets.CreateArguments{
		Authority: fixtures.Authority,
		Seed:      5,
		Asset:     processor.CreateAssetArgs{Rentable: true},
		Signed:    sign(t, key, assets.CreateMethod, 6, processor.CreateAssetArgs{Rentable: true}, time.Now()),
	}
	var reply assets.CreateReply
	err := client.Call(assets.CreateMethod, &arguments, &reply)
	assert.NotNil(t, err, "wrong Assets.Create")
	assert.Equal(t, fault.InvalidSignature.Error(), err.Error(), "wrong error")
}
