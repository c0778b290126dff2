// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/featherd/configuration"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/util"
)

// Configuration - the client configuration file
type Configuration struct {
	Connect         string `hcl:"connect" json:"connect"`
	Database        string `hcl:"database" json:"database"`
	DefaultIdentity string `hcl:"default_identity" json:"default_identity"`
}

const (
	// DefaultDatabase - identity store beside the configuration file
	DefaultDatabase = "identities.db"

	fileTemplate = `# feather-cli configuration

connect = %q
database = %q
default_identity = %q
`
)

// Load - read the configuration, relative database paths are
// resolved against the configuration directory
func Load(fileName string) (*Configuration, error) {
	c := &Configuration{
		Database: DefaultDatabase,
	}
	if err := configuration.ParseHCLFile(fileName, c); nil != err {
		return nil, err
	}

	if "" == strings.TrimSpace(c.Connect) {
		return nil, fault.MissingParameters
	}
	c.Database = util.AbsolutePath(filepath.Dir(fileName), c.Database)
	return c, nil
}

// Save - write a configuration, creating its directory
func Save(fileName string, c *Configuration) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0700); nil != err {
		return err
	}
	text := fmt.Sprintf(fileTemplate, c.Connect, c.Database, c.DefaultIdentity)
	return os.WriteFile(fileName, []byte(text), 0600)
}
