// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/record"
)

// Context - validated accounts and inputs of one operation
//
// built before any record so that a missing account or a wrong group
// fails without any partial batch
type Context struct {
	program   address.Address
	accounts  Accounts
	params    *RootParams
	assembler *batch.Assembler
}

// NewContext - check the required accounts and parameters
func NewContext(program address.Address, accounts Accounts, params *RootParams) (*Context, error) {
	if nil == accounts.Signer {
		return nil, fault.MissingSigner
	}
	if accounts.Authority.IsZero() {
		return nil, fault.MissingAuthority
	}
	if nil == params {
		return nil, fault.MissingParameters
	}
	if nil == params.Proof {
		return nil, fault.MissingProof
	}

	return &Context{
		program:   program,
		accounts:  accounts,
		params:    params,
		assembler: batch.NewAssembler(program, params.StateTree),
	}, nil
}

// NewAddress - derive an address and reserve it in the batch
func (c *Context) NewAddress(parts ...[]byte) address.Address {
	p := batch.NewAddressParams{
		Seed:      address.DeriveSeed(c.program, parts...),
		Tree:      c.params.AddressTree,
		RootIndex: c.params.AddressRootIndex,
	}
	c.assembler.AddNewAddress(p)
	return p.Address()
}

// LoadGroup - the single input must be the group for these seeds
//
// the prior group is recorded as the batch input
func (c *Context) LoadGroup(groupSeed uint64) (*record.GroupV1, error) {
	switch len(c.params.Inputs) {
	case 0:
		return nil, fault.GroupNotFound
	case 1:
	default:
		return nil, fault.InputCountMismatch
	}
	input := c.params.Inputs[0]

	r, err := input.Packed.UnpackExact()
	if nil != err {
		return nil, err
	}
	group, ok := r.(*record.GroupV1)
	if !ok {
		return nil, fault.UnexpectedRecordType
	}

	authority := c.accounts.Authority
	expected := address.Derive(
		address.DeriveSeed(c.program, address.GroupTag, authority[:], address.Uint64Seed(groupSeed)),
		c.params.AddressTree,
	)
	if expected != group.Address {
		return nil, fault.GroupAddressMismatch
	}
	if authority != group.Authority {
		return nil, fault.GroupAuthorityMismatch
	}

	c.assembler.AddInput(batch.InputRecord{
		Owner:     c.program,
		Address:   group.Address,
		Packed:    input.Packed,
		DataHash:  input.Packed.DataHash(),
		StateTree: c.params.StateTree,
		LeafIndex: input.LeafIndex,
		RootIndex: c.params.StateRootIndex,
	})
	return group, nil
}

// AddOutput - pack a record into the batch
func (c *Context) AddOutput(recordAddress address.Address, r record.Record) error {
	return c.assembler.AddOutput(recordAddress, r)
}

// Build - the finished request
func (c *Context) Build() (*batch.Request, error) {
	return c.assembler.Build(c.params.Proof)
}
