// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/rpc/assets"
	"github.com/bitmark-inc/featherd/rpc/node"
)

// Store - everything the services read from committed state
type Store interface {
	assets.Store
	node.State
}

// Services - the registered services, shared with the HTTPS gateway
type Services struct {
	Server *rpc.Server
	Assets *assets.Assets
	Node   *node.Node
}

// Create - register every client service on a new server
func Create(
	log *logger.L,
	version string,
	chain string,
	testing bool,
	rpcCount *counter.Counter,
	p assets.Processor,
	store Store,
) *Services {
	start := time.Now().UTC()

	s := &Services{
		Server: rpc.NewServer(),
		Assets: assets.New(log, p, store, testing),
		Node:   node.New(log, store, start, version, chain, rpcCount),
	}

	_ = s.Server.Register(s.Assets)
	_ = s.Server.Register(s.Node)

	return s
}
