// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package commit

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/batch"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
)

// Signature - the derived authority's endorsement of one request
type Signature struct {
	Program   address.Address `json:"program"`
	Authority address.Address `json:"authority"`
	Bump      uint8           `json:"bump"`
	Digest    merkle.Digest   `json:"digest"`
}

//go:generate mockgen -source=commit.go -destination=mocks/commit.go -package=mocks

// Verifier - the external verification and storage service
//
// Verify must either commit every output of the request or none
type Verifier interface {
	Verify(ctx context.Context, request *batch.Request, signature *Signature) error
}

// Invoker - hands assembled batches to a verifier
type Invoker struct {
	log      *logger.L
	program  address.Address
	verifier Verifier
}

// NewInvoker - create an invoker for a program
func NewInvoker(log *logger.L, program address.Address, verifier Verifier) *Invoker {
	return &Invoker{
		log:      log,
		program:  program,
		verifier: verifier,
	}
}

// Invoke - sign the request with the program's derived authority and
// forward it
//
// the verifier is called exactly once and its error is returned as is
func (invoker *Invoker) Invoke(ctx context.Context, request *batch.Request) error {
	signature, err := Sign(invoker.program, request)
	if nil != err {
		return err
	}

	invoker.log.Debugf("invoke: authority: %s  bump: %d  digest: %s", signature.Authority, signature.Bump, signature.Digest)

	err = invoker.verifier.Verify(ctx, request, signature)
	if nil != err {
		invoker.log.Warnf("verify: digest: %s  error: %s", signature.Digest, err)
		return err
	}

	invoker.log.Infof("committed: %d new  %d inputs  %d outputs", len(request.NewAddressParams), len(request.Inputs), len(request.Outputs))
	return nil
}

// Sign - derive the authority for a program and endorse a request
func Sign(program address.Address, request *batch.Request) (*Signature, error) {
	authority, bump, err := address.FindProgramAddress([][]byte{address.AuthorityTag}, program)
	if nil != err {
		return nil, err
	}
	return &Signature{
		Program:   program,
		Authority: authority,
		Bump:      bump,
		Digest:    request.Digest(),
	}, nil
}

// Check - verify a signature was made by the program's authority over
// this exact request
func (signature *Signature) Check(program address.Address, request *batch.Request) error {
	if nil == signature || program != signature.Program {
		return fault.InvalidAuthority
	}

	authority, err := address.CreateProgramAddress([][]byte{address.AuthorityTag, {signature.Bump}}, program)
	if nil != err || authority != signature.Authority {
		return fault.InvalidAuthority
	}

	if request.Digest() != signature.Digest {
		return fault.InvalidAuthority
	}
	return nil
}
