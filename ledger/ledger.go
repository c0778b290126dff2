// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"sort"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
	"github.com/bitmark-inc/featherd/record"
)

// StoredRecord - a committed record
type StoredRecord struct {
	Address   address.Address `json:"address"`
	Owner     address.Address `json:"owner"`
	LeafIndex uint32          `json:"leafIndex"`
	Packed    record.Packed   `json:"packed"`
	DataHash  merkle.Digest   `json:"dataHash"`
}

// Root - one entry of the root history
type Root struct {
	Index    uint16        `json:"index"`
	Sequence uint64        `json:"sequence"`
	Root     merkle.Digest `json:"root"`
}

type rootEntry struct {
	sequence uint64
	root     merkle.Digest
}

// value layout of the record pool
const (
	leafIndexLength   = 4
	recordValueHeader = leafIndexLength + address.Length
)

// Program - the program whose records are stored
func (l *Ledger) Program() address.Address {
	return l.options.Program
}

// Trees - the state tree and address tree served
func (l *Ledger) Trees() (address.Address, address.TreeContext) {
	return l.options.StateTree, l.options.AddressTree
}

// Get - fetch a committed record
func (l *Ledger) Get(recordAddress address.Address) (*StoredRecord, error) {
	l.RLock()
	defer l.RUnlock()
	return l.get(recordAddress)
}

func (l *Ledger) get(recordAddress address.Address) (*StoredRecord, error) {
	value := l.pool.Records.Get(recordAddress[:])
	if nil == value {
		return nil, fault.RecordNotFound
	}
	return decodeRecord(recordAddress, value)
}

func decodeRecord(recordAddress address.Address, value []byte) (*StoredRecord, error) {
	if len(value) <= recordValueHeader {
		return nil, fault.TruncatedRecord
	}
	s := &StoredRecord{
		Address:   recordAddress,
		LeafIndex: binary.BigEndian.Uint32(value[:leafIndexLength]),
		Packed:    append(record.Packed{}, value[recordValueHeader:]...),
	}
	copy(s.Owner[:], value[leafIndexLength:recordValueHeader])
	s.DataHash = s.Packed.DataHash()
	return s, nil
}

func encodeRecord(leafIndex uint32, owner address.Address, packed record.Packed) []byte {
	value := make([]byte, recordValueHeader, recordValueHeader+len(packed))
	binary.BigEndian.PutUint32(value, leafIndex)
	copy(value[leafIndexLength:], owner[:])
	return append(value, packed...)
}

// Exists - true if an address has been inserted
func (l *Ledger) Exists(a address.Address) bool {
	l.RLock()
	defer l.RUnlock()
	return l.pool.Addresses.Has(a[:])
}

// Records - list committed records in address order
//
// start is inclusive; count must be positive
func (l *Ledger) Records(start address.Address, count int) ([]*StoredRecord, error) {
	l.RLock()
	defer l.RUnlock()

	elements, err := l.pool.Records.NewFetchCursor().Seek(start[:]).Fetch(count)
	if nil != err {
		return nil, err
	}

	results := make([]*StoredRecord, 0, len(elements))
	for _, e := range elements {
		var a address.Address
		err := address.FromBytes(&a, e.Key)
		if nil != err {
			return nil, err
		}
		s, err := decodeRecord(a, e.Value)
		if nil != err {
			return nil, err
		}
		results = append(results, s)
	}
	return results, nil
}

// CurrentRoot - the most recent root
func (l *Ledger) CurrentRoot() Root {
	l.RLock()
	defer l.RUnlock()
	return l.currentRoot()
}

func (l *Ledger) currentRoot() Root {
	sequence, ok := l.pool.State.GetN(sequenceKey)
	if !ok {
		logger.Panic("ledger: missing sequence")
	}
	index := l.slot(sequence)
	entry, ok := l.getRoot(index)
	if !ok {
		logger.Panicf("ledger: missing root: %d", index)
	}
	return Root{
		Index:    index,
		Sequence: entry.sequence,
		Root:     entry.root,
	}
}

// History - the roots still usable by a proof, newest first
func (l *Ledger) History() ([]Root, error) {
	l.RLock()
	defer l.RUnlock()

	roots := make([]Root, 0, l.options.RootHistory)
	err := l.pool.Roots.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 2 != len(key) || 8+merkle.DigestLength != len(value) {
			return fault.TruncatedRecord
		}
		r := Root{
			Index:    binary.BigEndian.Uint16(key),
			Sequence: binary.BigEndian.Uint64(value[:8]),
		}
		copy(r.Root[:], value[8:])
		roots = append(roots, r)
		return nil
	})
	if nil != err {
		return nil, err
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Sequence > roots[j].Sequence
	})
	return roots, nil
}

// ring slot of a sequence number
func (l *Ledger) slot(sequence uint64) uint16 {
	return uint16(sequence % uint64(l.options.RootHistory))
}

func (l *Ledger) getRoot(index uint16) (rootEntry, bool) {
	if int(index) >= l.options.RootHistory {
		return rootEntry{}, false
	}
	key := []byte{0, 0}
	binary.BigEndian.PutUint16(key, index)
	value := l.pool.Roots.Get(key)
	if 8+merkle.DigestLength != len(value) {
		return rootEntry{}, false
	}
	entry := rootEntry{
		sequence: binary.BigEndian.Uint64(value[:8]),
	}
	copy(entry.root[:], value[8:])
	return entry, true
}

func (l *Ledger) putRoot(index uint16, entry rootEntry) {
	key := []byte{0, 0}
	binary.BigEndian.PutUint16(key, index)
	value := make([]byte, 8, 8+merkle.DigestLength)
	binary.BigEndian.PutUint64(value, entry.sequence)
	l.pool.Roots.Put(key, append(value, entry.root[:]...))
}
