// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/featherd/chain"
)

func TestValid(t *testing.T) {
	assert.True(t, chain.Valid(chain.Feather), "feather")
	assert.True(t, chain.Valid(chain.Testing), "testing")
	assert.True(t, chain.Valid(chain.Local), "local")
	assert.False(t, chain.Valid("live"), "alias is not a configured name")
	assert.False(t, chain.Valid(""), "empty")
}

func TestCanonical(t *testing.T) {
	n, ok := chain.Canonical("live")
	assert.True(t, ok, "live")
	assert.Equal(t, chain.Feather, n, "live")

	n, ok = chain.Canonical("test")
	assert.True(t, ok, "test")
	assert.Equal(t, chain.Testing, n, "test")

	_, ok = chain.Canonical("bitcoin")
	assert.False(t, ok, "unknown")
}

func TestIsTesting(t *testing.T) {
	assert.False(t, chain.IsTesting(chain.Feather), "feather")
	assert.True(t, chain.IsTesting(chain.Testing), "testing")
	assert.True(t, chain.IsTesting(chain.Local), "local")
}
