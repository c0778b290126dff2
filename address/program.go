// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/bitmark-inc/featherd/fault"
)

const programAddressMarker = "ProgramDerivedAddress"

// CreateProgramAddress - the program address for a set of seeds
//
// the last seed is normally the single bump byte
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write([]byte(programAddressMarker))

	a := Address{}
	copy(a[:], h.Sum(nil))

	if isOnCurve(a) {
		return Address{}, fault.AddressOnCurve
	}
	return a, nil
}

// FindProgramAddress - search bumps from 255 down for an off curve address
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump -= 1 {
		withBump[len(seeds)] = []byte{byte(bump)}
		a, err := CreateProgramAddress(withBump, program)
		if nil == err {
			return a, uint8(bump), nil
		}
	}
	return Address{}, 0, fault.NoValidBump
}

// a point that decodes is on the curve and may have a private key
func isOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return nil == err
}
