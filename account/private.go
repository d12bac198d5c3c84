// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/util"
)

// PrivateKey - base type for private keys
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - methods supported by all key algorithms
type PrivateKeyInterface interface {
	Account() *Account
	KeyType() int
	PrivateKeyBytes() []byte
	Bytes() []byte
	String() string
	Sign(message []byte) Signature
	IsTesting() bool
	MarshalText() ([]byte, error)
}

// ED25519PrivateKey - for ed25519 keys
type ED25519PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// NewKeypair - generate a new signing keypair
//
// a nil reader selects crypto/rand
func NewKeypair(test bool, reader io.Reader) (*PrivateKey, error) {
	if nil == reader {
		reader = rand.Reader
	}
	_, privateKey, err := ed25519.GenerateKey(reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       test,
			PrivateKey: privateKey,
		},
	}, nil
}

// PrivateKeyFromBase58 - convert a Base58 encoded string to a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded := util.FromBase58(privateKeyBase58Encoded)
	if 0 == len(privateKeyDecoded) {
		return nil, fault.CannotDecodeAccount
	}

	checksumStart := len(privateKeyDecoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.CannotDecodeAccount
	}
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return PrivateKeyFromBytes(privateKeyDecoded[:checksumStart])
}

// PrivateKeyFromBytes - convert a byte encoded buffer to a private key
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {

	keyVariant, keyVariantLength := util.FromVarint64(privateKeyBytes)
	if 0 == keyVariantLength || 0 != keyVariant&publicKeyCode {
		return nil, fault.InvalidPrivateKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(privateKeyBytes) - keyVariantLength
	if ed25519.PrivateKeySize != keyLength {
		return nil, fault.InvalidKeyLength
	}

	privateKey := make([]byte, keyLength)
	copy(privateKey, privateKeyBytes[keyVariantLength:])
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       isTest,
			PrivateKey: privateKey,
		},
	}, nil
}

// ED25519
// -------

// Account - the public account corresponding to this key
func (privateKey *ED25519PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey[ed25519.PublicKeySize:])
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      privateKey.Test,
			PublicKey: publicKey,
		},
	}
}

// KeyType - key type code
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// PrivateKeyBytes - fetch the private key as byte slice
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey
}

// Bytes - byte slice for encoded key: keyVariant ‖ privateKey
func (privateKey *ED25519PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.PrivateKey...)
}

// String - base58 encoding of encoded key with checksum
func (privateKey *ED25519PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// Sign - sign a message with this key
func (privateKey *ED25519PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.PrivateKey, message))
}

// IsTesting - true for testing network keys
func (privateKey *ED25519PrivateKey) IsTesting() bool {
	return privateKey.Test
}

// MarshalText - convert a private key to its text form
func (privateKey *ED25519PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}
