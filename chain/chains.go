// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the ledgers a node or client can serve
package chain

// canonical chain names
const (
	Feather = "feather"
	Testing = "testing"
	Local   = "local"
)

// accepted alternative spellings
var aliases = map[string]string{
	Feather: Feather,
	"live":  Feather,
	Testing: Testing,
	"test":  Testing,
	Local:   Local,
}

// Valid - only canonical names are valid in a node configuration
func Valid(name string) bool {
	canonical, ok := aliases[name]
	return ok && canonical == name
}

// Canonical - map a name or alias to its canonical chain name
func Canonical(name string) (string, bool) {
	canonical, ok := aliases[name]
	return canonical, ok
}

// IsTesting - true for chains whose accounts carry the test flag
func IsTesting(name string) bool {
	return Feather != name
}
