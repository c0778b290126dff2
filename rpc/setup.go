// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/gateway"
	"github.com/bitmark-inc/featherd/rpc/assets"
	"github.com/bitmark-inc/featherd/rpc/certificate"
	"github.com/bitmark-inc/featherd/rpc/listeners"
	"github.com/bitmark-inc/featherd/rpc/ratelimit"
	"github.com/bitmark-inc/featherd/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "https_gateway"
)

// Parameters - what the services need from the rest of the node
type Parameters struct {
	Version   string
	Chain     string
	Testing   bool
	Processor assets.Processor
	Store     server.Store
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	services  *server.Services
	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open client connections over both transports
var connectionCount counter.Counter

// Initialise - start the RPC listener and the optional HTTPS gateway
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	parameters *Parameters,
) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	services := server.Create(
		log,
		parameters.Version,
		parameters.Chain,
		parameters.Testing,
		&connectionCount,
		parameters.Processor,
		parameters.Store,
	)
	globalData.services = services
	setRateLimit(rpcConfiguration.RateLimit, rpcConfiguration.Burst)

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(rpcConfiguration, log, &connectionCount, services.Server, tlsConfig, fingerprint)
	if nil != err {
		return err
	}
	if err := rpcListener.Serve(); nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	if err := initialiseHTTPS(httpsConfiguration, services); nil != err {
		closeAll()
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, services *server.Services) error {
	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil
	}

	tlsConfig, fingerprint, err := certificate.Load(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	allow, err := gateway.ParseAllow(configuration.Allow)
	if nil != err {
		return err
	}

	router := gateway.New(log, services.Server, services.Assets, services.Node, &connectionCount, allow)
	l, err := listeners.NewHTTPS(configuration, log, tlsConfig, router)
	if nil != err {
		return err
	}
	if err := l.Serve(); nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, l)
	return nil
}

// SetRateLimit - change the request rate of running services
func SetRateLimit(limit float64, burst int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	globalData.log.Infof("rate limit: %f  burst: %d", limit, burst)
	setRateLimit(limit, burst)
	return nil
}

func setRateLimit(limit float64, burst int) {
	ratelimit.Update(globalData.services.Assets.Limiter, limit, burst)
	ratelimit.Update(globalData.services.Node.Limiter, limit, burst)
}

func closeAll() {
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Warnf("close listener error: %s", err)
		}
	}
	globalData.listeners = nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeAll()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
