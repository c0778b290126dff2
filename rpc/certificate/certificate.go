// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/util"
)

const validity = 10 * 365 * 24 * time.Hour

// Get - load a PEM key pair and return a TLS configuration
// with the SHA3-256 fingerprint of the leaf certificate
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - read both PEM files then Get
func Load(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	if !util.IsRegularFile(certificateFileName) {
		log.Errorf("certificate: %q does not exist", certificateFileName)
		return nil, fin, fault.CertificateFileNotFound
	}
	if !util.IsRegularFile(keyFileName) {
		log.Errorf("private key: %q does not exist", keyFileName)
		return nil, fin, fault.KeyFileNotFound
	}

	certificate, err := os.ReadFile(certificateFileName)
	if nil != err {
		return nil, fin, err
	}
	key, err := os.ReadFile(keyFileName)
	if nil != err {
		return nil, fin, err
	}
	return Get(log, name, string(certificate), string(key))
}

// MakeSelfSigned - write a new self-signed certificate and key
//
// existing files are never overwritten
func MakeSelfSigned(name, certificateFileName, keyFileName string, override bool, extraHosts []string) error {
	if util.IsRegularFile(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if util.IsRegularFile(keyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "featherd self signed cert for: " + name
	cert, key, err := certgen.NewTLSCertPair(org, time.Now().Add(validity), override, extraHosts)
	if nil != err {
		return err
	}

	if err = os.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}
	if err = os.WriteFile(keyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in featherd-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
