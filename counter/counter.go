// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - slot accounting for concurrent connections and
// in-flight requests
package counter

import (
	"sync/atomic"
)

// Counter - number of slots in use, the zero value is ready to use
type Counter struct {
	n atomic.Uint64
}

// Increment - take a slot unconditionally, returns the new count
func (c *Counter) Increment() uint64 {
	return c.n.Add(1)
}

// Decrement - give back a slot, returns the new count
//
// never goes below zero
func (c *Counter) Decrement() uint64 {
	for {
		current := c.n.Load()
		if 0 == current {
			return 0
		}
		if c.n.CompareAndSwap(current, current-1) {
			return current - 1
		}
	}
}

// Acquire - take a slot only while fewer than limit are in use
func (c *Counter) Acquire(limit uint64) bool {
	for {
		current := c.n.Load()
		if current >= limit {
			return false
		}
		if c.n.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

// Uint64 - slots in use
func (c *Counter) Uint64() uint64 {
	return c.n.Load()
}

// IsZero - no slots in use
func (c *Counter) IsZero() bool {
	return 0 == c.n.Load()
}
