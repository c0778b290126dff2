// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identities - named signing keys kept in a bolt database
//
// each chain has its own bucket so a test key can never be picked up
// on the live chain
package identities

import (
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/fault"
)

const openTimeout = 2 * time.Second

// Store - an open identity database
type Store struct {
	db *bolt.DB
}

// Identity - a name and its public account
type Identity struct {
	Name    string           `json:"name"`
	Account *account.Account `json:"account"`
}

// Open - open or create the identity database
func Open(fileName string) (*Store, error) {
	db, err := bolt.Open(fileName, 0600, &bolt.Options{Timeout: openTimeout})
	if nil != err {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close - release the database
func (s *Store) Close() error {
	return s.db.Close()
}

func bucketName(chain string) []byte {
	return []byte("identities-" + chain)
}

// Add - store a key under a new name
func (s *Store) Add(chain string, name string, key *account.PrivateKey) error {
	if "" == name {
		return fault.MissingParameters
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName(chain))
		if nil != err {
			return err
		}
		if nil != b.Get([]byte(name)) {
			return fault.AddressExists
		}
		return b.Put([]byte(name), []byte(key.String()))
	})
}

// Get - the key stored under a name
func (s *Store) Get(chain string, name string) (*account.PrivateKey, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName(chain))
		if nil == b {
			return nil
		}
		if v := b.Get([]byte(name)); nil != v {
			val = append([]byte{}, v...)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	if nil == val {
		return nil, fault.NoIdentity
	}

	key, err := account.PrivateKeyFromBase58(string(val))
	if nil != err {
		return nil, fault.InvalidStoredIdentity
	}
	return key, nil
}

// Remove - delete a name
func (s *Store) Remove(chain string, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName(chain))
		if nil == b || nil == b.Get([]byte(name)) {
			return fault.NoIdentity
		}
		return b.Delete([]byte(name))
	})
}

// List - every identity of a chain sorted by name
func (s *Store) List(chain string) ([]Identity, error) {
	list := []Identity{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName(chain))
		if nil == b {
			return nil
		}
		return b.ForEach(func(k []byte, v []byte) error {
			key, err := account.PrivateKeyFromBase58(string(v))
			if nil != err {
				return fault.InvalidStoredIdentity
			}
			list = append(list, Identity{Name: string(k), Account: key.Account()})
			return nil
		})
	})
	if nil != err {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
