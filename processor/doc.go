// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - asset creation state transitions
//
// Each operation is one pass through:
//
//   validate accounts and inputs (Context)
//   derive addresses and build records
//   assemble one batch
//   invoke the verifier once
//
// Nothing is committed unless the verifier accepts the whole batch.
// The group record is read from the caller supplied inputs and written
// back as an output of the same batch; the verifier rejects the batch if
// the group changed in between.
package processor
