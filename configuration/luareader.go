// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/featherd/fault"
)

// Lua keys map to fields through their gluamapper tags, unchanged
var luaMapper = gluamapper.Mapper{
	Option: gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  "gluamapper",
	},
}

// ParseConfigurationFile - run a Lua configuration file and map the
// table it returns onto config
//
// the script sees arg[0] as its own path and arg[1] as its directory
func ParseConfigurationFile(fileName string, config interface{}) error {
	if err := checkStructPointer(config); nil != err {
		return err
	}
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		return fault.ConfigurationFileNotFound
	}

	L := lua.NewState()
	defer L.Close()
	L.OpenLibs()

	arg := L.NewTable()
	arg.RawSetInt(0, lua.LString(fileName))
	arg.RawSetInt(1, lua.LString(filepath.Dir(fileName)))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return err
	}

	table, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return fault.ConfigurationNotTable
	}
	return luaMapper.Map(table, config)
}
