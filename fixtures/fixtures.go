// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// addresses shared by the tests
var (
	Program     = address.Address{0x0f, 0xea, 0x71, 0xe4}
	Authority   = address.Address{0xa0, 0x7b, 0x01}
	StateTree   = address.Address{0x57, 0xa7, 0xe0}
	AddressTree = address.TreeContext{
		Tree:  address.Address{0xad, 0xd7, 0xee},
		Queue: address.Address{0xad, 0xd9, 0x0e},
	}
)

// SetupTestLogger - log to a throwaway directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// Directory - the throwaway directory for other test files
func Directory() string {
	return dir
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
