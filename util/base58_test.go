// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/featherd/util"
)

func TestBase58(t *testing.T) {
	buffer := []byte{0x00, 0x01, 0x02, 0xfe, 0xff}
	s := util.ToBase58(buffer)
	assert.Equal(t, "12Vzei", s, "wrong encoding")
	assert.Equal(t, buffer, util.FromBase58(s), "wrong decoding")
}

func TestBase58Invalid(t *testing.T) {
	assert.Equal(t, 0, len(util.FromBase58("0OIl")), "invalid characters decoded")
}
