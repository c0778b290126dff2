// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic record addresses
//
// A record address is computed in two steps:
//
//   seed    = H(program ++ tagged seed parts)
//   address = H(address tree ++ seed)
//
// where H is Keccak-256 with the first byte cleared so the result is
// always inside the BN254 scalar field used by the address tree.
// Every seed part is prefixed by its Varint64 length and the first part
// of every record seed is a kind tag, so equal raw seed bytes used for
// different record kinds never derive the same address.
//
// Program addresses (used for the commit authority) follow the usual
// SHA-256 "off curve" search over a bump byte.
package address
