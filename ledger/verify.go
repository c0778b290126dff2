// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/commit"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/metrics"
)

// Verify - check a signed batch against the stored state and commit it
//
// either every output is stored and the root advances, or nothing
// changes
func (l *Ledger) Verify(ctx context.Context, request *batch.Request, signature *commit.Signature) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	program := l.options.Program
	err := signature.Check(program, request)
	if nil != err {
		return err
	}
	if 0 == len(request.Outputs) {
		return fault.MissingParameters
	}
	err = request.Check()
	if nil != err {
		return err
	}

	rootIndex, err := l.checkShape(request)
	if nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	entry, ok := l.getRoot(rootIndex)
	if !ok {
		return fault.RootIndexOutOfRange
	}

	leaves := make([]proofLeaf, 0, len(request.Inputs))
	for _, in := range request.Inputs {
		leaves = append(leaves, proofLeaf{
			address:   in.Address,
			dataHash:  in.DataHash,
			leafIndex: in.LeafIndex,
		})
	}
	if prove(entry.root, leaves) != *request.Proof {
		return fault.InvalidProof
	}

	for _, in := range request.Inputs {
		stored, err := l.get(in.Address)
		if fault.RecordNotFound == err {
			return fault.InputNotFound
		} else if nil != err {
			return err
		}
		if stored.DataHash != in.DataHash || stored.LeafIndex != in.LeafIndex || stored.Owner != in.Owner {
			return fault.StaleInput
		}
	}

	for _, p := range request.NewAddressParams {
		a := p.Address()
		if l.pool.Addresses.Has(a[:]) {
			return fault.AddressExists
		}
	}

	// nothing is staged until every check has passed
	return l.store(ctx, request)
}

// checks that need no stored state
//
// returns the single root index the request refers to
func (l *Ledger) checkShape(request *batch.Request) (uint16, error) {
	program := l.options.Program

	rootIndex := uint16(0)
	first := true
	sameRoot := func(index uint16) bool {
		if first {
			rootIndex = index
			first = false
		}
		return index == rootIndex
	}

	for _, p := range request.NewAddressParams {
		if p.Tree != l.options.AddressTree {
			return 0, fault.UnknownTree
		}
		if !sameRoot(p.RootIndex) {
			return 0, fault.RootIndexMismatch
		}
	}
	for _, in := range request.Inputs {
		if in.StateTree != l.options.StateTree {
			return 0, fault.UnknownTree
		}
		if in.Owner != program {
			return 0, fault.InvalidRecordOwner
		}
		if in.Packed.DataHash() != in.DataHash {
			return 0, fault.DataHashMismatch
		}
		if !sameRoot(in.RootIndex) {
			return 0, fault.RootIndexMismatch
		}
	}
	for _, out := range request.Outputs {
		if out.StateTree != l.options.StateTree {
			return 0, fault.UnknownTree
		}
		if out.Owner != program {
			return 0, fault.InvalidRecordOwner
		}
		if out.Packed.DataHash() != out.DataHash {
			return 0, fault.DataHashMismatch
		}
		if _, err := out.Packed.UnpackExact(); nil != err {
			return 0, err
		}
	}

	if first {
		return 0, fault.RootIndexOutOfRange
	}
	return rootIndex, nil
}

// stage and write the outputs, addresses and new root
func (l *Ledger) store(ctx context.Context, request *batch.Request) error {
	sequence, _ := l.pool.State.GetN(sequenceKey)
	leaf, _ := l.pool.State.GetN(leafKey)
	if leaf+uint64(len(request.Outputs)) > math.MaxUint32 {
		return fault.StateTreeFull
	}

	previous, ok := l.getRoot(l.slot(sequence))
	if !ok {
		return fault.RootNotFound
	}

	err := l.access.Begin()
	if nil != err {
		return err
	}

	sequence += 1
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, sequence)

	for _, p := range request.NewAddressParams {
		a := p.Address()
		l.pool.Addresses.Put(a[:], seq)
	}
	for _, out := range request.Outputs {
		l.pool.Records.Put(out.Address[:], encodeRecord(uint32(leaf), out.Owner, out.Packed))
		leaf += 1
	}

	digest := request.Digest()
	next := rootEntry{
		sequence: sequence,
		root:     merkle.Pair(previous.root, digest),
	}
	l.putRoot(l.slot(sequence), next)
	l.pool.State.PutN(sequenceKey, sequence)
	l.pool.State.PutN(leafKey, leaf)

	// a caller that gave up before the write sees no change
	if err := ctx.Err(); nil != err {
		l.access.Abort()
		return err
	}

	err = l.access.Commit()
	if nil != err {
		l.log.Errorf("commit: digest: %s  error: %s", digest, err)
		return err
	}

	metrics.Commits.Inc()
	metrics.Records.Add(float64(len(request.Outputs)))

	l.log.Infof("commit: sequence: %d  root: %s  outputs: %d", sequence, next.root, len(request.Outputs))
	return nil
}
