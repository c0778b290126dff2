// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus collectors shared by the daemon
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bitmark-inc/featherd/fault"
)

const namespace = "featherd"

// the collectors
var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC requests by method and result class.",
	}, []string{"method", "result"})

	Connections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "connections",
		Help:      "Open client RPC connections.",
	})

	Commits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "commits_total",
		Help:      "Batches written to the ledger.",
	})

	Records = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "records_written_total",
		Help:      "Records written to the ledger, new and updated.",
	})
)

// Result - label for the outcome of a request
func Result(err error) string {
	switch {
	case nil == err:
		return "ok"
	case fault.IsErrExists(err):
		return "exists"
	case fault.IsErrNotFound(err):
		return "not_found"
	case fault.IsErrOverflow(err):
		return "overflow"
	case fault.IsErrConstruction(err):
		return "construction"
	case fault.IsErrInvalid(err):
		return "invalid"
	default:
		return "error"
	}
}

// Observe - count one request
func Observe(method string, err error) {
	Requests.WithLabelValues(method, Result(err)).Inc()
}
