// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/command/feather-cli/configuration"
	"github.com/bitmark-inc/featherd/command/feather-cli/identities"
	"github.com/bitmark-inc/featherd/command/feather-cli/rpccalls"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/record"
)

var authorityFlag = cli.StringFlag{
	Name:  "authority, a",
	Value: "",
	Usage: " authority `ADDRESS` [address of the identity]",
}

func seedFlag(kind string) cli.Flag {
	return cli.Uint64Flag{
		Name:  "seed, s",
		Value: 0,
		Usage: "*" + kind + " seed `NUMBER`",
	}
}

var assetFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "rentable",
		Usage: " asset may be rented",
	},
	cli.BoolFlag{
		Name:  "transferable",
		Usage: " asset may be transferred",
	},
	cli.StringFlag{
		Name:  "name",
		Value: "",
		Usage: " metadata `NAME`",
	},
	cli.StringFlag{
		Name:  "uri",
		Value: "",
		Usage: " metadata `URI`",
	},
	cli.BoolFlag{
		Name:  "mutable",
		Usage: " metadata may be changed later",
	},
	cli.UintFlag{
		Name:  "royalty",
		Value: 0,
		Usage: " royalty in basis points `BPS`, the signer is the sole creator",
	},
}

func runSetup(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	connect := strings.TrimSpace(c.String("connect"))
	if "" == connect {
		return fault.MissingParameters
	}

	config := &configuration.Configuration{
		Connect:  connect,
		Database: c.String("database"),
	}
	if err := configuration.Save(m.file, config); nil != err {
		return err
	}
	fmt.Fprintf(m.w, "wrote: %q\n", m.file)
	return nil
}

func runGenerate(c *cli.Context) error {
	network, err := networkName(c.GlobalString("network"))
	if nil != err {
		return err
	}
	key, err := account.NewPrivateKey(chain.IsTesting(network), rand.Reader)
	if nil != err {
		return err
	}
	printJSON(c.App.Writer, struct {
		Account    *account.Account    `json:"account"`
		PrivateKey *account.PrivateKey `json:"private_key"`
	}{
		Account:    key.Account(),
		PrivateKey: key,
	})
	return nil
}

func runAdd(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name := strings.TrimSpace(c.String("name"))
	if "" == name {
		return fault.MissingParameters
	}

	var key *account.PrivateKey
	var err error
	if k := c.String("private-key"); "" != k {
		key, err = account.PrivateKeyFromBase58(k)
	} else {
		key, err = account.NewPrivateKey(m.testnet, rand.Reader)
	}
	if nil != err {
		return err
	}
	if key.Test != m.testnet {
		return fault.WrongNetworkForPublicKey
	}

	store, err := identities.Open(m.config.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	if err := store.Add(m.chain, name, key); nil != err {
		return err
	}

	if "" == m.config.DefaultIdentity {
		m.config.DefaultIdentity = name
		if err := configuration.Save(m.file, m.config); nil != err {
			return err
		}
	}

	printJSON(m.w, identities.Identity{Name: name, Account: key.Account()})
	return nil
}

func runList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	store, err := identities.Open(m.config.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	list, err := store.List(m.chain)
	if nil != err {
		return err
	}
	printJSON(m.w, list)
	return nil
}

func runRemove(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name := strings.TrimSpace(c.String("name"))
	if "" == name {
		return fault.MissingParameters
	}

	store, err := identities.Open(m.config.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	if err := store.Remove(m.chain, name); nil != err {
		return err
	}

	if name == m.config.DefaultIdentity {
		m.config.DefaultIdentity = ""
		if err := configuration.Save(m.file, m.config); nil != err {
			return err
		}
	}
	fmt.Fprintf(m.w, "removed: %q\n", name)
	return nil
}

func runCreateGroup(c *cli.Context) error {
	return withSigner(c, func(client *rpccalls.Client, key *account.PrivateKey, authority address.Address) (interface{}, error) {
		return client.CreateGroup(key, authority, c.Uint64("seed"), c.Uint64("max-size"))
	})
}

func runCreate(c *cli.Context) error {
	return withSigner(c, func(client *rpccalls.Client, key *account.PrivateKey, authority address.Address) (interface{}, error) {
		return client.CreateAsset(key, authority, c.Uint64("seed"), assetArgs(c, key))
	})
}

func runCreateMember(c *cli.Context) error {
	return withSigner(c, func(client *rpccalls.Client, key *account.PrivateKey, authority address.Address) (interface{}, error) {
		return client.CreateMemberAsset(key, authority, c.Uint64("seed"), assetArgs(c, key))
	})
}

func runGet(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if 0 == c.NArg() {
		return fault.MissingParameters
	}
	addresses := make([]address.Address, c.NArg())
	for i, s := range c.Args() {
		a, err := address.FromBase58(s)
		if nil != err {
			return fmt.Errorf("address: %q  error: %s", s, err)
		}
		addresses[i] = a
	}

	return withClient(m, func(client *rpccalls.Client) (interface{}, error) {
		return client.Get(addresses)
	})
}

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	return withClient(m, func(client *rpccalls.Client) (interface{}, error) {
		return client.Info()
	})
}

func runRoots(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	return withClient(m, func(client *rpccalls.Client) (interface{}, error) {
		return client.Roots(c.Int("count"))
	})
}

// asset arguments from the command flags
func assetArgs(c *cli.Context, key *account.PrivateKey) processor.CreateAssetArgs {
	args := processor.CreateAssetArgs{
		Rentable:     c.Bool("rentable"),
		Transferable: c.Bool("transferable"),
	}
	if name, uri := c.String("name"), c.String("uri"); "" != name || "" != uri {
		args.Metadata = &processor.MetadataArgs{
			Name:    name,
			URI:     uri,
			Mutable: c.Bool("mutable"),
		}
	}
	if bps := c.Uint("royalty"); 0 != bps {
		args.Royalty = &processor.RoyaltyArgs{
			BasisPoints: uint16(bps),
			Creators: []record.Creator{
				{Address: key.Account().Address(), Share: 100},
			},
		}
	}
	return args
}

func withClient(m *metadata, f func(*rpccalls.Client) (interface{}, error)) error {
	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := f(client)
	if nil != err {
		return err
	}
	printJSON(m.w, result)
	return nil
}

// load the selected identity and resolve the authority before calling f
func withSigner(c *cli.Context, f func(*rpccalls.Client, *account.PrivateKey, address.Address) (interface{}, error)) error {
	m := c.App.Metadata["config"].(*metadata)

	name := c.GlobalString("identity")
	if "" == name {
		name = m.config.DefaultIdentity
	}
	if "" == name {
		return fault.NoIdentity
	}

	store, err := identities.Open(m.config.Database)
	if nil != err {
		return err
	}
	key, err := store.Get(m.chain, name)
	_ = store.Close()
	if nil != err {
		return fmt.Errorf("identity: %q  error: %s", name, err)
	}

	authority := key.Account().Address()
	if s := c.String("authority"); "" != s {
		authority, err = address.FromBase58(s)
		if nil != err {
			return fmt.Errorf("authority: %q  error: %s", s, err)
		}
	}

	return withClient(m, func(client *rpccalls.Client) (interface{}, error) {
		a, err := f(client, key, authority)
		if nil != err {
			return nil, err
		}
		return struct {
			Address address.Address `json:"address"`
		}{Address: a.(address.Address)}, nil
	})
}

// canonical chain name for a network flag value
func networkName(network string) (string, error) {
	name, ok := chain.Canonical(network)
	if !ok {
		return "", fmt.Errorf("network: %q can only be feather/testing/local", network)
	}
	return name, nil
}

func printJSON(w io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(w, "error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", b)
}
