// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/util"
)

// enumeration of supported key algorithms
const (
	// zero is reserved and never decodes
	reservedKeyType = iota
	// ED25519 - the only live algorithm
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// SignatureSize - byte length of a valid signature
const SignatureSize = ed25519.SignatureSize

// Account - base type for accounts
type Account struct {
	AccountInterface
}

// AccountInterface - methods supported by all key algorithms
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
//
// the specific account type is returned behind the base
// "AccountInterface" to allow individual methods to be called
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded := util.FromBase58(accountBase58Encoded)
	if 0 == len(accountDecoded) {
		return nil, fault.CannotDecodeAccount
	}

	// verify checksum before accepting any field
	checksumStart := len(accountDecoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.CannotDecodeAccount
	}
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - convert a byte encoded buffer to an account
//
// the buffer is: keyVariant ‖ publicKey   (no checksum)
func AccountFromBytes(accountBytes []byte) (*Account, error) {

	keyVariant, keyVariantLength := util.FromVarint64(accountBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(accountBytes) - keyVariantLength
	if keyLength <= 0 {
		return nil, fault.InvalidKeyLength
	}

	switch keyAlgorithm {
	case ED25519:
		if ed25519.PublicKeySize != keyLength {
			return nil, fault.InvalidKeyLength
		}
		publicKey := make([]byte, keyLength)
		copy(publicKey, accountBytes[keyVariantLength:])
		return &Account{
			AccountInterface: &ED25519Account{
				Test:      isTest,
				PublicKey: publicKey,
			},
		}, nil
	default:
		return nil, fault.InvalidKeyType
	}
}

// UnmarshalText - convert string to account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// IsSame - check if two accounts hold the same public key
func (account *Account) IsSame(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return account.KeyType() == other.KeyType() &&
		bytes.Equal(account.PublicKeyBytes(), other.PublicKeyBytes())
}

// ED25519
// -------

// KeyType - key type code
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey
}

// CheckSignature - verify the signature over a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.MalformedSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.InvalidVerifier
	}
	return nil
}

// Bytes - byte slice for encoded key: keyVariant ‖ publicKey
func (account *ED25519Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - base58 encoding of encoded key with checksum
func (account *ED25519Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - convert an account to its text form
func (account *ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - true for testing network keys
func (account *ED25519Account) IsTesting() bool {
	return account.Test
}
