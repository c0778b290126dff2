// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/chain"
	"github.com/bitmark-inc/featherd/commit"
	"github.com/bitmark-inc/featherd/ledger"
	"github.com/bitmark-inc/featherd/processor"
	"github.com/bitmark-inc/featherd/rpc"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	ledgerOptions, err := theConfiguration.LedgerOptions()
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	// these commands inspect the ledger and must not race a running node
	if len(arguments) > 0 && "start" != arguments[0] && "run" != arguments[0] {
		l, err := ledger.Open(logger.New("ledger"), theConfiguration.Database.Name, ledger.ReadOnly, ledgerOptions)
		if nil != err {
			exitwithstatus.Message("ledger open error: %s", err)
		}
		processDataCommand(arguments, l)
		l.Close()
		return
	}

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	testing := chain.IsTesting(theConfiguration.Chain)
	log.Infof("chain: %s  test mode: %v", theConfiguration.Chain, testing)
	log.Infof("program: %s", ledgerOptions.Program)
	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HTTPSGateway", theConfiguration.HTTPSGateway)

	// start the ledger
	log.Info("initialise ledger")
	l, err := ledger.Open(logger.New("ledger"), theConfiguration.Database.Name, ledger.ReadWrite, ledgerOptions)
	if nil != err {
		log.Criticalf("ledger open error: %s", err)
		exitwithstatus.Message("ledger open error: %s", err)
	}
	defer l.Close()

	invoker := commit.NewInvoker(logger.New("commit"), ledgerOptions.Program, l)
	p := processor.New(logger.New("processor"), ledgerOptions.Program, invoker)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HTTPSGateway, &rpc.Parameters{
		Version:   version,
		Chain:     theConfiguration.Chain,
		Testing:   testing,
		Processor: p,
		Store:     l,
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// configuration reload
	done := make(chan struct{})
	defer close(done)
	watcher, err := newConfigWatcher(configurationFile, logger.New(watcherLoggerPrefix))
	if nil == err {
		err = watcher.Start()
	}
	if nil != err {
		log.Warnf("configuration reload disabled: %s", err)
	} else {
		defer watcher.Stop()
		go reloadOnChange(log, watcher, configurationFile, func(c *Configuration) error {
			return rpc.SetRateLimit(c.ClientRPC.RateLimit, c.ClientRPC.Burst)
		}, done)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
