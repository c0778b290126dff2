// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/fault"
)

// Listener - a started network service
type Listener interface {
	Serve() error
	Close() error
}

const minConnectionCount = 1

// convert each listen address to its network type
//
// "*:PORT" is changed to "[::]:PORT" on the assumption that this will
// listen on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	listen := make([]string, len(addrs))
	for i, a := range addrs {
		host, port, err := net.SplitHostPort(a)
		if nil != err {
			log.Errorf("listen: %q  error: %s", a, err)
			return nil, nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			host = "::"
			networks[i] = "tcp"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen: %q  error: %s", a, fault.InvalidIpAddress)
			return nil, nil, fault.InvalidIpAddress
		}
		listen[i] = net.JoinHostPort(host, port)
	}
	return networks, listen, nil
}
