// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/bitmark-inc/featherd/util"
)

// Pack - the binary form of a request
//
// each list is a Varint64 count followed by its items, optional
// values are a Varint64 presence flag followed by the value
func (request *Request) Pack() []byte {
	buffer := make([]byte, 0, 512)

	if nil == request.Proof {
		buffer = appendUint64(buffer, 0)
	} else {
		buffer = appendUint64(buffer, 1)
		buffer = append(buffer, request.Proof.A[:]...)
		buffer = append(buffer, request.Proof.B[:]...)
		buffer = append(buffer, request.Proof.C[:]...)
	}

	buffer = appendUint64(buffer, uint64(len(request.NewAddressParams)))
	for _, p := range request.NewAddressParams {
		buffer = append(buffer, p.Seed[:]...)
		buffer = append(buffer, p.Tree.Tree[:]...)
		buffer = append(buffer, p.Tree.Queue[:]...)
		buffer = appendUint64(buffer, uint64(p.RootIndex))
	}

	buffer = appendUint64(buffer, uint64(len(request.Inputs)))
	for _, in := range request.Inputs {
		buffer = append(buffer, in.Owner[:]...)
		buffer = append(buffer, in.Address[:]...)
		buffer = appendBytes(buffer, in.Packed)
		buffer = append(buffer, in.DataHash[:]...)
		buffer = append(buffer, in.StateTree[:]...)
		buffer = appendUint64(buffer, uint64(in.LeafIndex))
		buffer = appendUint64(buffer, uint64(in.RootIndex))
	}

	buffer = appendUint64(buffer, uint64(len(request.Outputs)))
	for _, out := range request.Outputs {
		buffer = append(buffer, out.Owner[:]...)
		buffer = append(buffer, out.Address[:]...)
		buffer = appendBytes(buffer, out.Packed)
		buffer = append(buffer, out.DataHash[:]...)
		buffer = append(buffer, out.StateTree[:]...)
	}

	buffer = appendOptional(buffer, request.RelayFee)
	buffer = appendOptional(buffer, request.CompressLamports)
	if request.IsCompress {
		buffer = appendUint64(buffer, 1)
	} else {
		buffer = appendUint64(buffer, 0)
	}
	return buffer
}

func appendUint64(buffer []byte, value uint64) []byte {
	return util.AppendVarint64(buffer, value)
}

func appendBytes(buffer []byte, data []byte) []byte {
	buffer = appendUint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

func appendOptional(buffer []byte, value *uint64) []byte {
	if nil == value {
		return appendUint64(buffer, 0)
	}
	buffer = appendUint64(buffer, 1)
	return appendUint64(buffer, *value)
}
