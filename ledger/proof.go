// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/merkle"
)

// Snapshot - the current root, some committed records and a proof
// binding them together
type Snapshot struct {
	Root    Root                  `json:"root"`
	Records []*StoredRecord       `json:"records"`
	Proof   batch.CompressedProof `json:"proof"`
}

// one leaf covered by a proof
type proofLeaf struct {
	address   address.Address
	dataHash  merkle.Digest
	leafIndex uint32
}

// Snapshot - read records at the current root and prove them
//
// the records are returned in the order requested
func (l *Ledger) Snapshot(addresses ...address.Address) (*Snapshot, error) {
	l.RLock()
	defer l.RUnlock()

	root := l.currentRoot()
	records := make([]*StoredRecord, 0, len(addresses))
	leaves := make([]proofLeaf, 0, len(addresses))
	for _, a := range addresses {
		s, err := l.get(a)
		if nil != err {
			return nil, err
		}
		records = append(records, s)
		leaves = append(leaves, proofLeaf{
			address:   s.Address,
			dataHash:  s.DataHash,
			leafIndex: s.LeafIndex,
		})
	}

	return &Snapshot{
		Root:    root,
		Records: records,
		Proof:   prove(root.Root, leaves),
	}, nil
}

// the compressed proof layout:
//   A - root the proof was made against
//   B - SHA3-512(A ‖ for each leaf: address ‖ data hash ‖ leaf index)
//   C - SHA3-256(A ‖ B)
func prove(root merkle.Digest, leaves []proofLeaf) batch.CompressedProof {
	p := batch.CompressedProof{}
	copy(p.A[:], root[:])

	h := sha3.New512()
	h.Write(root[:])
	leafIndex := make([]byte, 4)
	for _, leaf := range leaves {
		h.Write(leaf.address[:])
		h.Write(leaf.dataHash[:])
		binary.BigEndian.PutUint32(leafIndex, leaf.leafIndex)
		h.Write(leafIndex)
	}
	copy(p.B[:], h.Sum(nil))

	buffer := make([]byte, 0, batch.ProofALength+batch.ProofBLength)
	buffer = append(buffer, p.A[:]...)
	buffer = append(buffer, p.B[:]...)
	p.C = sha3.Sum256(buffer)
	return p
}
