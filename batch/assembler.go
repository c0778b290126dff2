// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/record"
)

// Assembler - collects the pieces of one operation
//
// new address requests and outputs are kept in the order they are
// added, the assembler never reorders them
type Assembler struct {
	owner        address.Address
	stateTree    address.Address
	newAddresses []NewAddressParams
	inputs       []InputRecord
	outputs      []OutputRecord
}

// NewAssembler - start a batch for records owned by a program
func NewAssembler(owner address.Address, stateTree address.Address) *Assembler {
	return &Assembler{
		owner:     owner,
		stateTree: stateTree,
	}
}

// AddNewAddress - reserve a brand-new address
func (a *Assembler) AddNewAddress(params NewAddressParams) {
	a.newAddresses = append(a.newAddresses, params)
}

// AddInput - a committed record consumed by this batch
func (a *Assembler) AddInput(input InputRecord) {
	a.inputs = append(a.inputs, input)
}

// AddOutput - pack a record and append it as an output
func (a *Assembler) AddOutput(recordAddress address.Address, r record.Record) error {
	packed, err := r.Pack()
	if nil != err {
		return err
	}
	a.outputs = append(a.outputs, OutputRecord{
		Owner:     a.owner,
		Address:   recordAddress,
		Packed:    packed,
		DataHash:  packed.DataHash(),
		StateTree: a.stateTree,
	})
	return nil
}

// Build - check the batch is consistent and produce the request
func (a *Assembler) Build(proof *CompressedProof) (*Request, error) {
	if nil == proof {
		return nil, fault.MissingProof
	}

	p := *proof
	request := &Request{
		Proof:            &p,
		NewAddressParams: append([]NewAddressParams{}, a.newAddresses...),
		Inputs:           append([]InputRecord{}, a.inputs...),
		Outputs:          append([]OutputRecord{}, a.outputs...),
		RelayFee:         nil,
		CompressLamports: nil,
		IsCompress:       false,
	}
	if err := request.Check(); nil != err {
		return nil, err
	}
	return request, nil
}
