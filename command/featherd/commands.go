// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/record"
	"github.com/bitmark-inc/featherd/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	defaultListCount = 20
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "root", "roots", "record", "r", "records", "list":
		return false // defer processing until the ledger is open

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  roots                      (root)   - list the root history newest first\n")
		fmt.Printf("\n")

		fmt.Printf("  record ADDRESS             (r)      - dump one committed record as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  records [COUNT]            (list)   - dump committed records in key order\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger is open read-only so these commands only inspect it
func processDataCommand(arguments []string, l *ledger.Ledger) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "root", "roots":
		roots, err := l.History()
		if nil != err {
			exitwithstatus.Message("root history error: %s", err)
		}
		printJSON(roots)

	case "record", "r":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing address argument")
		}
		a, err := address.FromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in address: %s", err)
		}
		stored, err := l.Get(a)
		if nil != err {
			exitwithstatus.Message("get record: %s  error: %s", a, err)
		}
		printJSON(describe(stored))

	case "records", "list":
		count := defaultListCount
		if len(arguments) > 0 {
			n, err := strconv.Atoi(arguments[0])
			if nil != err {
				exitwithstatus.Message("error in count: %s", err)
			}
			count = n
		}
		records, err := l.Records(address.Address{}, count)
		if nil != err {
			exitwithstatus.Message("list records error: %s", err)
		}
		described := make([]interface{}, len(records))
		for i, r := range records {
			described[i] = describe(r)
		}
		printJSON(described)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// a stored record with its unpacked form
func describe(stored *ledger.StoredRecord) interface{} {
	type described struct {
		*ledger.StoredRecord
		Record string        `json:"record"`
		Data   record.Record `json:"data"`
	}
	d := described{StoredRecord: stored}
	if r, err := stored.Packed.UnpackExact(); nil == err {
		d.Record, _ = record.RecordName(r)
		d.Data = r
	}
	return d
}

func printJSON(v interface{}) {
	b, err := json.Marshal(v)
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "  ")
	_, _ = out.WriteTo(os.Stdout)
	_, _ = os.Stdout.WriteString("\n")
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}
	return filepath.Join(dir, name)
}
