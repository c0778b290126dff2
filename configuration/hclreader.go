// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"reflect"

	"github.com/hashicorp/hcl"

	"github.com/bitmark-inc/featherd/fault"
)

// ParseHCLFile - decode an HCL file into a configuration structure
func ParseHCLFile(fileName string, config interface{}) error {
	if err := checkStructPointer(config); nil != err {
		return err
	}

	b, err := os.ReadFile(fileName)
	if os.IsNotExist(err) {
		return fault.ConfigurationFileNotFound
	} else if nil != err {
		return err
	}

	return hcl.Unmarshal(b, config)
}

// since interface{} is untyped, have to verify type compatibility at run-time
func checkStructPointer(config interface{}) error {
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fault.InvalidStructPointer
	}

	// now sure item is a pointer, make sure it points to some kind of struct
	if rv.Elem().Kind() != reflect.Struct {
		return fault.InvalidStructPointer
	}
	return nil
}
