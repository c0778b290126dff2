// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/util"
)

// Length - number of bytes in an address
const Length = 32

// Address - a record address or a public key
// represented as Base58 text for JSON encoding
// to get bytes value just use a[:]
type Address [Length]byte

// FromBytes - convert and validate a binary byte slice to an address
func FromBytes(a *Address, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotAddress
	}
	copy(a[:], buffer)
	return nil
}

// FromBase58 - decode a Base58 address
func FromBase58(s string) (Address, error) {
	a := Address{}
	err := FromBytes(&a, util.FromBase58(s))
	return a, err
}

// IsZero - true if no bytes are set
func (a Address) IsZero() bool {
	return Address{} == a
}

// Bytes - copy of the address bytes
func (a Address) Bytes() []byte {
	return append([]byte{}, a[:]...)
}

// String - Base58 string for use by the fmt package (for %s)
func (a Address) String() string {
	return util.ToBase58(a[:])
}

// GoString - for use by the fmt package (for %#v)
func (a Address) GoString() string {
	return "<address:" + util.ToBase58(a[:]) + ">"
}

// MarshalText - convert an address to Base58 text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert Base58 text to an address
func (a *Address) UnmarshalText(s []byte) error {
	return FromBytes(a, util.FromBase58(string(s)))
}
