// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net"
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
	"github.com/bitmark-inc/featherd/rpc/server"
)

func setup(t *testing.T, verbose bool) (*Client, *ledger.Ledger, *bytes.Buffer) {
	fixtures.SetupTestLogger()

	log := logger.New(fixtures.LogCategory)
	l, err := ledger.Open(log, filepath.Join(fixtures.Directory(), "cli.leveldb"), ledger.ReadWrite, ledger.Options{
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

	out := &bytes.Buffer{}
	c := newClient(clientConn, verbose, out)
	c.now = ticker(time.Now())
	return c, l, out
}

// each call sees a later millisecond so repeated requests sign differently
func ticker(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n += 1
		return start.Add(time.Duration(n) * time.Millisecond)
	}
}

func teardown(c *Client, l *ledger.Ledger) {
	c.Close()
	l.Close()
	fixtures.TeardownTestLogger()
}

func newKey(t *testing.T) *account.PrivateKey {
	key, err := account.NewPrivateKey(true, bytes.NewReader(bytes.Repeat([]byte{0x5a}, 32)))
	if nil != err {
		t.Fatalf("new key error: %s", err)
	}
	return key
}

func TestInfo(t *testing.T) {
	c, l, out := setup(t, true)
	defer teardown(c, l)

	info, err := c.Info()
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, fixtures.Program, info.Program, "wrong program")
	assert.Contains(t, out.String(), "Node.Info reply", "verbose output missing")
}

func TestRepeatedSignatureRefused(t *testing.T) {
	c, l, _ := setup(t, false)
	defer teardown(c, l)

	now := time.Now()
	c.now = func() time.Time { return now }

	key := newKey(t)
	authority := key.Account().Address()

	_, err := c.CreateGroup(key, authority, 21, 0)
	if !assert.Nil(t, err, "wrong CreateGroup") {
		return
	}

	_, err = c.CreateGroup(key, authority, 21, 0)
	if assert.NotNil(t, err, "wrong repeated CreateGroup") {
		assert.Equal(t, fault.SignatureReplayed.Error(), err.Error(), "wrong repeated error")
	}
}

func TestCreateAndGet(t *testing.T) {
	c, l, _ := setup(t, false)
	defer teardown(c, l)

	key := newKey(t)
	authority := key.Account().Address()

	group, err := c.CreateGroup(key, authority, 9, 0)
	if !assert.Nil(t, err, "wrong CreateGroup") {
		return
	}

	member, err := c.CreateMemberAsset(key, authority, 9, processor.CreateAssetArgs{
		Transferable: true,
		Metadata:     &processor.MetadataArgs{Name: "first", URI: "https://example.com/first"},
	})
	if !assert.Nil(t, err, "wrong CreateMemberAsset") {
		return
	}

	standalone, err := c.CreateAsset(key, authority, 10, processor.CreateAssetArgs{Rentable: true})
	if !assert.Nil(t, err, "wrong CreateAsset") {
		return
	}

	_, err = c.CreateAsset(key, authority, 10, processor.CreateAssetArgs{Rentable: true})
	if assert.NotNil(t, err, "wrong duplicate CreateAsset") {
		assert.Equal(t, fault.AddressExists.Error(), err.Error(), "wrong duplicate error")
	}

	reply, err := c.Get([]address.Address{group, member, standalone})
	if !assert.Nil(t, err, "wrong Get") {
		return
	}
	if assert.Equal(t, 3, len(reply.Records), "wrong record count") {
		assert.Equal(t, "GroupV1", reply.Records[0].Record, "wrong group")
		assert.Equal(t, "AssetV1", reply.Records[1].Record, "wrong member")
		assert.Equal(t, "AssetV1", reply.Records[2].Record, "wrong standalone")
	}

	roots, err := c.Roots(2)
	assert.Nil(t, err, "wrong Roots")
	assert.Equal(t, 2, len(roots.Roots), "wrong root count")
	assert.Equal(t, uint64(3), roots.Roots[0].Sequence, "wrong newest root")
}
