// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - shared error values
//
// Each error is a single typed string value so callers compare with ==
// and classify by kind with the IsErrXxx helpers. The gateway uses the
// kind to pick an HTTP status.
package fault
