// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - token bucket admission for RPC and gateway calls
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/featherd/fault"
)

// longest a caller is held before the request is refused outright
const maximumDelay = 2 * time.Second

// Limit - admit a single request
func Limit(limiter *rate.Limiter) error {
	return admit(limiter, 1)
}

// LimitN - admit a request costing count tokens
//
// a count outside 1..maximumCount is charged as one token and rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := admit(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return admit(limiter, count)
}

// Update - change the rate and burst of a running limiter
//
// zero values leave the current setting
func Update(limiter *rate.Limiter, limit float64, burst int) {
	now := time.Now()
	if limit > 0 {
		limiter.SetLimitAt(now, rate.Limit(limit))
	}
	if burst > 0 {
		limiter.SetBurstAt(now, burst)
	}
}

func admit(limiter *rate.Limiter, n int) error {
	now := time.Now()
	r := limiter.ReserveN(now, n)
	if !r.OK() {
		return fault.RateLimiting
	}
	delay := r.DelayFrom(now)
	if delay > maximumDelay {
		r.CancelAt(now)
		return fault.RateLimiting
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	return nil
}
