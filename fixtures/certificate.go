// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"time"

	"github.com/bitmark-inc/certgen"
)

// CertificatePair - a fresh self-signed PEM certificate and key for localhost
func CertificatePair() (string, string) {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("featherd test certificate", validUntil, false, []string{"127.0.0.1", "localhost"})
	if nil != err {
		panic(err)
	}
	return string(cert), string(key)
}
