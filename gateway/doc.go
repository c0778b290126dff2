// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway is the HTTPS face of the node
//
// it exposes the JSON-RPC services over a POST, read-only REST views
// of records and roots, and the prometheus collectors.  Paths named
// in the allow map are restricted to the listed CIDRs.
package gateway
