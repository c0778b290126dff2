// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/featherd/account"
	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
)

// DefaultTimestampWindow - how far a request timestamp may be from now
const DefaultTimestampWindow = 5 * time.Minute

// largest timestamp that still fits a time.Duration count of nanoseconds
const maximumTimestamp = math.MaxInt64 / int64(time.Millisecond)

// Signed - the signer's endorsement carried by every mutating request
type Signed struct {
	Signer    *account.Account  `json:"signer"`
	Timestamp uint64            `json:"timestamp,string"` // milliseconds since the epoch
	Signature account.Signature `json:"signature"`
}

// Payload - SHA3-256 of the JSON form of the operation arguments
//
// both ends encode the same Go type so the bytes agree
func Payload(args interface{}) (merkle.Digest, error) {
	b, err := json.Marshal(args)
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.NewDigest(b), nil
}

// SigningMessage - the bytes a signer signs for one request
func SigningMessage(method string, authority address.Address, seed uint64, payload merkle.Digest, signer *account.Account, timestamp uint64) []byte {
	return []byte(fmt.Sprintf("%s|%s|%d|%s|%s|%d", method, authority, seed, payload, signer, timestamp))
}

// Sign - endorse a request and its arguments
func Sign(key *account.PrivateKey, method string, authority address.Address, seed uint64, args interface{}, now time.Time) (Signed, error) {
	payload, err := Payload(args)
	if nil != err {
		return Signed{}, err
	}
	signer := key.Account()
	timestamp := uint64(now.UnixMilli())
	return Signed{
		Signer:    signer,
		Timestamp: timestamp,
		Signature: key.Sign(SigningMessage(method, authority, seed, payload, signer, timestamp)),
	}, nil
}

// check the signer is on this chain, the timestamp is fresh, the
// signature covers method, seed and arguments, and it was not seen
// before within the window
func (assets *Assets) checkSigned(method string, authority address.Address, seed uint64, args interface{}, signed *Signed) error {
	if nil == signed.Signer {
		return fault.MissingSigner
	}
	if signed.Signer.IsTesting() != assets.Testing {
		return fault.WrongNetworkForPublicKey
	}

	if signed.Timestamp > uint64(maximumTimestamp) {
		return fault.StaleTimestamp
	}
	timestamp := time.UnixMilli(int64(signed.Timestamp))
	now := assets.Now()
	if timestamp.Before(now.Add(-assets.Window)) || timestamp.After(now.Add(assets.Window)) {
		return fault.StaleTimestamp
	}

	payload, err := Payload(args)
	if nil != err {
		return err
	}
	message := SigningMessage(method, authority, seed, payload, signed.Signer, signed.Timestamp)
	if err := signed.Signer.CheckSignature(message, signed.Signature); nil != err {
		return err
	}

	// a timestamp outside the window is already refused, so remembering
	// a signature for two windows covers every instant it could be valid
	if err := assets.seen.Add(signed.Signature.String(), struct{}{}, 2*assets.Window); nil != err {
		return fault.SignatureReplayed
	}
	return nil
}

func newReplayCache(window time.Duration) *cache.Cache {
	return cache.New(2*window, window)
}
