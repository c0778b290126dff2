// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/metrics"
	"github.com/bitmark-inc/featherd/rpc/ratelimit"
)

//go:generate mockgen -source=node.go -destination=../mocks/node.go -package=mocks

// State - root state of the ledger
type State interface {
	CurrentRoot() ledger.Root
	History() ([]ledger.Root, error)
	Program() address.Address
	Trees() (address.Address, address.TreeContext)
}

const (
	rateLimitNode = 200
	rateBurstNode = 100

	// limit for count
	maximumRoots = 100
)

// method names as seen by clients
const (
	InfoMethod  = "Node.Info"
	RootsMethod = "Node.Roots"
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	State   State
	counter *counter.Counter
}

// New - create the service
func New(log *logger.L, state State, start time.Time, version string, chain string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		State:   state,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain       string              `json:"chain"`
	Program     address.Address     `json:"program"`
	StateTree   address.Address     `json:"stateTree"`
	AddressTree address.TreeContext `json:"addressTree"`
	Root        ledger.Root         `json:"root"`
	RPCs        uint64              `json:"rpcs"`
	Version     string              `json:"version"`
	Uptime      string              `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) (err error) {
	defer func() { metrics.Observe(InfoMethod, err) }()

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.Program = node.State.Program()
	reply.StateTree, reply.AddressTree = node.State.Trees()
	reply.Root = node.State.CurrentRoot()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// RootsArguments - arguments for the root history request
type RootsArguments struct {
	Count int `json:"count"`
}

// RootsReply - newest roots first
type RootsReply struct {
	Roots []ledger.Root `json:"roots"`
}

// Roots - list the roots a proof may still refer to
func (node *Node) Roots(arguments *RootsArguments, reply *RootsReply) (err error) {
	defer func() { metrics.Observe(RootsMethod, err) }()

	if err := ratelimit.LimitN(node.Limiter, arguments.Count, maximumRoots); nil != err {
		return err
	}

	roots, err := node.State.History()
	if nil != err {
		return err
	}
	if len(roots) > arguments.Count {
		roots = roots[:arguments.Count]
	}
	reply.Roots = roots
	return nil
}
