// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/processor"
)

// RootParams - processor parameters for the current root
//
// inputs are the committed records at the given addresses
func (l *Ledger) RootParams(inputs ...address.Address) (*processor.RootParams, error) {
	snapshot, err := l.Snapshot(inputs...)
	if nil != err {
		return nil, err
	}

	accounts := make([]processor.InputAccount, 0, len(snapshot.Records))
	for _, s := range snapshot.Records {
		accounts = append(accounts, processor.InputAccount{
			Packed:    s.Packed,
			LeafIndex: s.LeafIndex,
		})
	}

	proof := snapshot.Proof
	return &processor.RootParams{
		Proof:            &proof,
		StateTree:        l.options.StateTree,
		StateRootIndex:   snapshot.Root.Index,
		AddressTree:      l.options.AddressTree,
		AddressRootIndex: snapshot.Root.Index,
		Inputs:           accounts,
	}, nil
}
