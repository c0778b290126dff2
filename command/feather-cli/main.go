// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/command/feather-cli/configuration"
)

type metadata struct {
	file    string
	chain   string
	testnet bool
	verbose bool
	config  *configuration.Configuration
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	// defaults for the flags below may come from a .env file
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "feather-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "verbose, v",
			Usage:  " verbose result",
			EnvVar: "FEATHER_VERBOSE",
		},
		cli.StringFlag{
			Name:   "network, n",
			Value:  chain.Feather,
			Usage:  " connect to featherd `NETWORK` [feather|testing|local]",
			EnvVar: "FEATHER_NETWORK",
		},
		cli.StringFlag{
			Name:   "config, c",
			Value:  "",
			Usage:  " configuration `FILE` [~/.config/feather-cli/feather-cli.hcl]",
			EnvVar: "FEATHER_CLI_CONFIG",
		},
		cli.StringFlag{
			Name:   "identity, i",
			Value:  "",
			Usage:  " identity `NAME` [default identity]",
			EnvVar: "FEATHER_IDENTITY",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise feather-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*featherd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "database, d",
					Value: configuration.DefaultDatabase,
					Usage: " identity database `FILE`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "generate",
			Usage:     "generate a key, will not store it",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "add",
			Usage:     "add a new identity, set it as default if there is none",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*identity `NAME`",
				},
				cli.StringFlag{
					Name:  "private-key, k",
					Value: "",
					Usage: " using existing base58 private `KEY`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "list",
			Usage:  "list identities of the selected network",
			Action: runList,
		},
		{
			Name:      "remove",
			Usage:     "remove an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*identity `NAME`",
				},
			},
			Action: runRemove,
		},
		{
			Name:      "create-group",
			Usage:     "create an empty group",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				authorityFlag,
				cli.Uint64Flag{
					Name:  "seed, s",
					Value: 0,
					Usage: "*group seed `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "max-size, m",
					Value: 0,
					Usage: " maximum members `COUNT`, zero is unbounded",
				},
			},
			Action: runCreateGroup,
		},
		{
			Name:      "create",
			Usage:     "create a standalone asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{authorityFlag, seedFlag("asset")}, assetFlags...),
			Action:    runCreate,
		},
		{
			Name:      "create-member",
			Usage:     "create an asset in a group",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{authorityFlag, seedFlag("group")}, assetFlags...),
			Action:    runCreateMember,
		},
		{
			Name:      "get",
			Usage:     "display committed records",
			ArgsUsage: "ADDRESS...",
			Action:    runGet,
		},
		{
			Name:   "info",
			Usage:  "display featherd status",
			Action: runInfo,
		},
		{
			Name:      "roots",
			Usage:     "display the root history",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 10,
					Usage: " maximum roots to output `COUNT`",
				},
			},
			Action: runRoots,
		},
		{
			Name:  "version",
			Usage: "display feather-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "generate" == command || "" == command {
			return nil
		}

		network, err := networkName(c.GlobalString("network"))
		if nil != err {
			return err
		}

		file := c.GlobalString("config")
		if "" == file {
			dir, err := os.UserConfigDir()
			if nil != err {
				return err
			}
			file = filepath.Join(dir, app.Name, app.Name+".hcl")
		}

		m := &metadata{
			file:    file,
			chain:   network,
			testnet: chain.IsTesting(network),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		if m.verbose {
			fmt.Fprintf(m.e, "file: %q\n", file)
		}
		c.App.Metadata["config"] = m

		if "setup" == command {
			return nil
		}

		config, err := configuration.Load(file)
		if nil != err {
			return fmt.Errorf("configuration: %q  error: %s", file, err)
		}
		m.config = config
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
