// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/configuration"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/rpc/listeners"
	"github.com/bitmark-inc/featherd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultFeatherDatabase  = chain.Feather + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "featherd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultRateLimit  = 200
	defaultBurst      = 100
)

var defaultLogLevels = map[string]string{
	logger.DefaultTag: "critical",
}

// DatabaseType - location of the ledger
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	ProgramID     string       `gluamapper:"program_id" json:"program_id"`
	StateTree     string       `gluamapper:"state_tree" json:"state_tree"`
	AddressTree   string       `gluamapper:"address_tree" json:"address_tree"`
	AddressQueue  string       `gluamapper:"address_queue" json:"address_queue"`
	RootHistory   int          `gluamapper:"root_history" json:"root_history"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC    listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HTTPSGateway listeners.HTTPSConfiguration `gluamapper:"https_gateway" json:"https_gateway"`
	Logging      logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// LedgerOptions - decode the program and tree addresses
func (c *Configuration) LedgerOptions() (ledger.Options, error) {
	options := ledger.Options{
		RootHistory: c.RootHistory,
	}

	items := []struct {
		name  string
		value string
		a     *address.Address
	}{
		{"program_id", c.ProgramID, &options.Program},
		{"state_tree", c.StateTree, &options.StateTree},
		{"address_tree", c.AddressTree, &options.AddressTree.Tree},
		{"address_queue", c.AddressQueue, &options.AddressTree.Queue},
	}
	for _, item := range items {
		a, err := address.FromBase58(item.value)
		if nil != err {
			return options, fmt.Errorf("%s: %q  error: %s", item.name, item.value, err)
		}
		*item.a = a
	}
	return options, nil
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Feather,
		RootHistory:   ledger.DefaultRootHistory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultFeatherDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
			RateLimit:          defaultRateLimit,
			Burst:              defaultBurst,
		},

		// default: share certificate with normal RPC
		HTTPSGateway: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q  error: %w", options.Chain, fault.InvalidChain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultFeatherDatabase {
		switch options.Chain {
		case chain.Feather:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	if _, err := options.LedgerOptions(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	default:
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HTTPSGateway.Certificate,
		&options.HTTPSGateway.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.AbsolutePath(options.DataDirectory, *f)
	}

	if "" != options.PidFile {
		options.PidFile = util.AbsolutePath(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names
	switch filepath.Dir(options.Database.Name) {
	case "", ".":
		options.Database.Name = util.AbsolutePath(options.Database.Directory, options.Database.Name)
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Database.Name)
	}
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist
	for _, d := range []string{options.Database.Directory, options.Logging.Directory} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}
