// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the verification and storage service for record batches
//
// the ledger is a LevelDB database split into pools by a one byte key
// prefix:
//
//   R - record address → leaf index ‖ owner ‖ packed record
//   A - inserted address → sequence number of the insert
//   H - root history slot → sequence number ‖ root digest
//   S - state counters
//
// every accepted batch is written with a single leveldb.Batch so a
// rejected or failed batch leaves the database untouched
//
// the root history is a ring of a fixed number of slots; a proof names
// a slot and is only valid while that slot still holds the root the
// proof was made against
package ledger
