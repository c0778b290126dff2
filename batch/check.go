// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
)

// Check - the new address requests and the outputs must agree
//
// every brand-new output (one whose address is not an input) must be
// covered by exactly one new address request and every request must be
// used; every input must be re-emitted by exactly one output
func (request *Request) Check() error {
	if nil == request.Proof {
		return fault.MissingProof
	}

	inputs := make(map[address.Address]int, len(request.Inputs))
	for _, in := range request.Inputs {
		if _, ok := inputs[in.Address]; ok {
			return fault.InputCountMismatch
		}
		inputs[in.Address] = 0
	}

	requested := make(map[address.Address]int, len(request.NewAddressParams))
	for _, p := range request.NewAddressParams {
		reserved := p.Address()
		if _, ok := requested[reserved]; ok {
			return fault.DuplicateNewAddress
		}
		if _, ok := inputs[reserved]; ok {
			return fault.AddressExists
		}
		requested[reserved] = 0
	}

	for _, out := range request.Outputs {
		if count, ok := inputs[out.Address]; ok {
			inputs[out.Address] = count + 1
			continue
		}
		count, ok := requested[out.Address]
		if !ok {
			return fault.OutputNotInBatch
		}
		if 0 != count {
			return fault.DuplicateNewAddress
		}
		requested[out.Address] = 1
	}

	for _, count := range requested {
		if 1 != count {
			return fault.NewAddressNotUsed
		}
	}
	for _, count := range inputs {
		if 1 != count {
			return fault.InputCountMismatch
		}
	}
	return nil
}
