// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/fixtures"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/rpc/mocks"
	"github.com/bitmark-inc/featherd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	root := ledger.Root{Index: 3, Sequence: 11, Root: merkle.Digest{0x01}}
	s := mocks.NewMockState(ctl)
	s.EXPECT().Program().Return(fixtures.Program).Times(1)
	s.EXPECT().Trees().Return(fixtures.StateTree, fixtures.AddressTree).Times(1)
	s.EXPECT().CurrentRoot().Return(root).Times(1)

	ctr := &counter.Counter{}
	ctr.Increment()
	ctr.Increment()
	n := node.New(logger.New(fixtures.LogCategory), s, time.Now().Add(-time.Hour), "1.0", chain.Testing, ctr)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	if !assert.Nil(t, err, "info") {
		return
	}
	assert.Equal(t, chain.Testing, reply.Chain, "chain")
	assert.Equal(t, fixtures.Program, reply.Program, "program")
	assert.Equal(t, fixtures.StateTree, reply.StateTree, "state tree")
	assert.Equal(t, fixtures.AddressTree, reply.AddressTree, "address tree")
	assert.Equal(t, root, reply.Root, "root")
	assert.Equal(t, uint64(2), reply.RPCs, "connections")
	assert.Equal(t, "1.0", reply.Version, "version")
	assert.NotEqual(t, "", reply.Uptime, "uptime")
}

func TestNodeRoots(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	history := []ledger.Root{
		{Index: 2, Sequence: 2},
		{Index: 1, Sequence: 1},
		{Index: 0, Sequence: 0},
	}
	s := mocks.NewMockState(ctl)
	s.EXPECT().History().Return(history, nil).Times(2)

	n := node.New(logger.New(fixtures.LogCategory), s, time.Now(), "1.0", chain.Testing, &counter.Counter{})

	var reply node.RootsReply
	err := n.Roots(&node.RootsArguments{Count: 2}, &reply)
	assert.Nil(t, err, "roots")
	assert.Equal(t, history[:2], reply.Roots, "truncated")

	err = n.Roots(&node.RootsArguments{Count: 10}, &reply)
	assert.Nil(t, err, "roots")
	assert.Equal(t, history, reply.Roots, "all")

	err = n.Roots(&node.RootsArguments{Count: 0}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}
