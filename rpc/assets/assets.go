// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/metrics"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/record"
	"github.com/bitmark-inc/featherd/rpc/ratelimit"
)

//go:generate mockgen -source=assets.go -destination=../mocks/assets.go -package=mocks

// Processor - the asset operations
type Processor interface {
	CreateGroup(ctx context.Context, accounts processor.Accounts, params *processor.RootParams, seed uint64, args processor.CreateGroupArgs) (address.Address, error)
	CreateAsset(ctx context.Context, accounts processor.Accounts, params *processor.RootParams, seed uint64, args processor.CreateAssetArgs) (address.Address, error)
	CreateMemberAsset(ctx context.Context, accounts processor.Accounts, params *processor.RootParams, groupSeed uint64, args processor.CreateAssetArgs) (address.Address, error)
}

// Store - committed state read by the service
type Store interface {
	Get(address.Address) (*ledger.StoredRecord, error)
	RootParams(inputs ...address.Address) (*processor.RootParams, error)
	Program() address.Address
	Trees() (address.Address, address.TreeContext)
}

// Assets - type for the RPC
type Assets struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Processor Processor
	Store     Store
	Testing   bool
	Now       func() time.Time
	Window    time.Duration
	Timeout   time.Duration

	seen *cache.Cache // signatures already accepted
}

const (
	maximumAssets   = 100
	rateLimitAssets = 200
	rateBurstAssets = 100

	defaultTimeout = 30 * time.Second
)

// method names as seen by clients and used in signatures
const (
	CreateGroupMethod  = "Assets.CreateGroup"
	CreateMethod       = "Assets.Create"
	CreateMemberMethod = "Assets.CreateMember"
	GetMethod          = "Assets.Get"
)

// New - create the service
func New(log *logger.L, p Processor, store Store, testing bool) *Assets {
	return &Assets{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		Processor: p,
		Store:     store,
		Testing:   testing,
		Now:       time.Now,
		Window:    DefaultTimestampWindow,
		Timeout:   defaultTimeout,
		seen:      newReplayCache(DefaultTimestampWindow),
	}
}

// ---

// CreateGroupArguments - arguments for RPC request
type CreateGroupArguments struct {
	Authority address.Address `json:"authority"`
	Seed      uint64          `json:"seed,string"`
	MaxSize   uint64          `json:"maxSize,string"`
	Signed
}

// CreateReply - results from a create request
type CreateReply struct {
	Address address.Address `json:"address"`
}

// CreateGroup - RPC to create an empty group
func (assets *Assets) CreateGroup(arguments *CreateGroupArguments, reply *CreateReply) (err error) {
	defer func() { metrics.Observe(CreateGroupMethod, err) }()

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	groupArgs := processor.CreateGroupArgs{
		MaxSize: arguments.MaxSize,
	}
	if err := assets.checkSigned(CreateGroupMethod, arguments.Authority, arguments.Seed, groupArgs, &arguments.Signed); nil != err {
		return err
	}

	assets.Log.Infof("%s: authority: %s  seed: %d  max size: %d", CreateGroupMethod, arguments.Authority, arguments.Seed, arguments.MaxSize)

	params, err := assets.Store.RootParams()
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), assets.Timeout)
	defer cancel()

	a, err := assets.Processor.CreateGroup(ctx, assets.accounts(arguments.Authority, &arguments.Signed), params, arguments.Seed, groupArgs)
	if nil != err {
		return err
	}
	reply.Address = a
	return nil
}

// ---

// CreateArguments - arguments for a standalone or member asset
//
// for a member asset Seed is the group seed
type CreateArguments struct {
	Authority address.Address           `json:"authority"`
	Seed      uint64                    `json:"seed,string"`
	Asset     processor.CreateAssetArgs `json:"asset"`
	Signed
}

// Create - RPC to create a standalone asset
func (assets *Assets) Create(arguments *CreateArguments, reply *CreateReply) (err error) {
	defer func() { metrics.Observe(CreateMethod, err) }()

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if err := assets.checkSigned(CreateMethod, arguments.Authority, arguments.Seed, arguments.Asset, &arguments.Signed); nil != err {
		return err
	}

	assets.Log.Infof("%s: authority: %s  seed: %d", CreateMethod, arguments.Authority, arguments.Seed)

	params, err := assets.Store.RootParams()
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), assets.Timeout)
	defer cancel()

	a, err := assets.Processor.CreateAsset(ctx, assets.accounts(arguments.Authority, &arguments.Signed), params, arguments.Seed, arguments.Asset)
	if nil != err {
		return err
	}
	reply.Address = a
	return nil
}

// CreateMember - RPC to admit a new asset to a group
func (assets *Assets) CreateMember(arguments *CreateArguments, reply *CreateReply) (err error) {
	defer func() { metrics.Observe(CreateMemberMethod, err) }()

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if err := assets.checkSigned(CreateMemberMethod, arguments.Authority, arguments.Seed, arguments.Asset, &arguments.Signed); nil != err {
		return err
	}

	assets.Log.Infof("%s: authority: %s  group seed: %d", CreateMemberMethod, arguments.Authority, arguments.Seed)

	_, addressTree := assets.Store.Trees()
	groupAddress := address.Derive(
		address.DeriveSeed(assets.Store.Program(), address.GroupTag, arguments.Authority[:], address.Uint64Seed(arguments.Seed)),
		addressTree,
	)

	params, err := assets.Store.RootParams(groupAddress)
	if fault.RecordNotFound == err {
		return fault.GroupNotFound
	} else if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), assets.Timeout)
	defer cancel()

	a, err := assets.Processor.CreateMemberAsset(ctx, assets.accounts(arguments.Authority, &arguments.Signed), params, arguments.Seed, arguments.Asset)
	if nil != err {
		return err
	}
	reply.Address = a
	return nil
}

func (assets *Assets) accounts(authority address.Address, signed *Signed) processor.Accounts {
	return processor.Accounts{
		Signer:    signed.Signer,
		Authority: authority,
	}
}

// ---

// GetArguments - arguments for RPC request
type GetArguments struct {
	Addresses []address.Address `json:"addresses"`
}

// GetReply - results from get RPC request
type GetReply struct {
	Records []Record `json:"records"`
}

// Record - structure of records in the response
//
// missing addresses give an entry with an empty Record name
type Record struct {
	Address   address.Address `json:"address"`
	Record    string          `json:"record,omitempty"`
	LeafIndex uint32          `json:"leafIndex"`
	DataHash  string          `json:"dataHash,omitempty"`
	Data      interface{}     `json:"data,omitempty"`
}

// Get - RPC to fetch committed records
func (assets *Assets) Get(arguments *GetArguments, reply *GetReply) (err error) {
	defer func() { metrics.Observe(GetMethod, err) }()

	count := len(arguments.Addresses)
	if err := ratelimit.LimitN(assets.Limiter, count, maximumAssets); nil != err {
		return err
	}

	assets.Log.Debugf("%s: %d addresses", GetMethod, count)

	records := make([]Record, count)
loop:
	for i, a := range arguments.Addresses {
		records[i].Address = a

		stored, err := assets.Store.Get(a)
		if fault.RecordNotFound == err {
			continue loop
		} else if nil != err {
			return err
		}

		r, err := stored.Packed.UnpackExact()
		if nil != err {
			assets.Log.Errorf("%s: address: %s  unpack error: %s", GetMethod, a, err)
			continue loop
		}

		name, _ := record.RecordName(r)
		records[i].Record = name
		records[i].LeafIndex = stored.LeafIndex
		records[i].DataHash = stored.DataHash.String()
		records[i].Data = r
	}

	reply.Records = records
	return nil
}
