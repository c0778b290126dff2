// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/merkle"
)

func TestDigest(t *testing.T) {
	d := merkle.NewDigest([]byte("hello world"))

	// printf '%s' 'hello world' | sha3sum -a 256
	stringDigest := "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"

	if s := fmt.Sprintf("%s", d); s != stringDigest {
		t.Errorf("string: digest = %s expected %s", s, stringDigest)
	}
	if s := fmt.Sprintf("%#v", d); s != "<digest:"+stringDigest+">" {
		t.Errorf("hash-v: digest = %s expected %s", s, stringDigest)
	}
	if d.IsZero() {
		t.Error("digest should not be zero")
	}
}

func TestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("hello world"))

	buffer, err := json.Marshal(d)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var r merkle.Digest
	err = json.Unmarshal(buffer, &r)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if d != r {
		t.Errorf("json round trip: %#v  expected: %#v", r, d)
	}

	err = json.Unmarshal([]byte(`"0102"`), &r)
	if fault.NotDigest != err {
		t.Errorf("short digest error: %v  expected: %v", err, fault.NotDigest)
	}
}

func TestUnmarshalBadHex(t *testing.T) {
	d := merkle.NewDigest([]byte("keep"))
	saved := d

	bad := make([]byte, 2*merkle.DigestLength)
	for i := range bad {
		bad[i] = 'z'
	}
	if err := d.UnmarshalText(bad); fault.NotDigest != err {
		t.Errorf("bad hex error: %v  expected: %v", err, fault.NotDigest)
	}
	if d != saved {
		t.Errorf("digest changed on error: %#v", d)
	}
}
