// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/featherd/rpc/node"
)

// Info - request status from featherd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call(node.InfoMethod, &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Roots - the newest roots a proof may refer to
func (c *Client) Roots(count int) (*node.RootsReply, error) {
	var reply node.RootsReply
	if err := c.call(node.RootsMethod, &node.RootsArguments{Count: count}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
