// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
)

// the storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Records   *PoolHandle `prefix:"R"`
	Addresses *PoolHandle `prefix:"A"`
	Roots     *PoolHandle `prefix:"H"`
	State     *PoolHandle `prefix:"S"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// keys in the state pool
var (
	sequenceKey = []byte("sequence")
	leafKey     = []byte("leaf")
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// DefaultRootHistory - number of roots a proof may lag behind
const DefaultRootHistory = 2400

// Options - the program and trees served by one ledger
type Options struct {
	Program     address.Address
	StateTree   address.Address
	AddressTree address.TreeContext
	RootHistory int
}

// Ledger - a verifier that stores accepted records
type Ledger struct {
	sync.RWMutex

	log     *logger.L
	options Options
	db      *leveldb.DB
	access  *AccessData
	pool    pools
}

// Open - open or create the database
func Open(log *logger.L, database string, readOnly bool, options Options) (*Ledger, error) {
	if "" == database {
		return nil, fault.DatabaseIsNotSet
	}
	if 0 == options.RootHistory {
		options.RootHistory = DefaultRootHistory
	}
	if options.RootHistory < 1 || options.RootHistory > 65536 {
		return nil, fmt.Errorf("root history: %d is out of range", options.RootHistory)
	}

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}
	if readOnly && version != currentDBVersion {
		log.Criticalf("database version: %d  current: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d  current: %d", version, currentDBVersion)
	}

	l := &Ledger{
		log:     log,
		options: options,
		db:      db,
		access:  newAccess(db),
	}

	err = l.setupPools()
	if nil != err {
		return nil, err
	}

	if 0 == version {
		err = l.genesis()
		if nil != err {
			return nil, err
		}
	}

	ok = true // prevent db close
	log.Infof("open: %s  version: %d  history: %d", database, currentDBVersion, options.RootHistory)
	return l, nil
}

// scan each field of the pools struct and assign a handle
func (l *Ledger) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(l.pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&l.pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: l.access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// the empty ledger has the zero root in slot zero
func (l *Ledger) genesis() error {
	err := l.access.Begin()
	if nil != err {
		return err
	}
	l.pool.State.PutN(sequenceKey, 0)
	l.pool.State.PutN(leafKey, 0)
	l.putRoot(0, rootEntry{})
	l.access.Put(versionKey, versionBytes(currentDBVersion))
	return l.access.Commit()
}

// Close - close the database
func (l *Ledger) Close() {
	l.Lock()
	defer l.Unlock()
	if nil != l.db {
		l.db.Close()
		l.db = nil
	}
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func versionBytes(version int) []byte {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, uint32(version))
	return buffer
}
