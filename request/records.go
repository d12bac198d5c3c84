// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"encoding/hex"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/identifier"
)

// TypeTag - type code for request records
type TypeTag uint64

// enumerate the possible request record types
// the tag is part of the signed payload for mint, batch mint and
// purchase records
const (
	// null marks beginning of list - not used as a record type
	NullTag = TypeTag(iota)

	// valid record types
	MintTag             = TypeTag(iota) // mint one identifier
	BatchMintTag        = TypeTag(iota) // mint several identifiers in one call
	CreationTag         = TypeTag(iota) // create a collection
	AddSubCollectionTag = TypeTag(iota) // open the next subcollection
	PurchaseTag         = TypeTag(iota) // authorise a sale

	// this item must be last
	InvalidTag = TypeTag(iota)
)

// Packed - a packed record is just a byte slice
type Packed []byte

// Record - generic signable record interface
type Record interface {
	Pack() (Packed, error)
}

// byte sizes for various fields
const (
	maxUriLength     = 1024
	maxAddressLength = 128
	maxBatchSize     = 100
)

// MintRequest - authority to mint one identifier
type MintRequest struct {
	To      *account.Account      `json:"to"`      // base58: the new owner
	TokenId identifier.Identifier `json:"tokenId"` // packed identifier
	Uri     string                `json:"uri"`     // utf-8 metadata pointer
}

// BatchMintRequest - authority to mint several identifiers at once
//
// token ids and uris are parallel arrays and order is significant
type BatchMintRequest struct {
	To       *account.Account        `json:"to"`       // base58: the new owner
	TokenIds []identifier.Identifier `json:"tokenIds"` // packed identifiers
	Uris     []string                `json:"uris"`     // utf-8 metadata pointers
}

// CreationRequest - authority to create a collection
type CreationRequest struct {
	CollectionId uint64           `json:"collectionId"` // immutable once created
	MaxEdition   uint64           `json:"maxEdition"`   // cap for subcollection 1
	RequestId    uint64           `json:"requestId"`    // issued by the verifier service
	Admin        *account.Account `json:"admin"`        // base58: collection administrator
	Registry     string           `json:"registry"`     // address of the authorisation registry
}

// AddSubCollectionRequest - authority to open the next subcollection
type AddSubCollectionRequest struct {
	CollectionId    uint64 `json:"collectionId"`
	SubcollectionId uint64 `json:"subcollectionId"` // must be highest + 1
	MaxEdition      uint64 `json:"maxEdition"`
	RequestId       uint64 `json:"requestId"`
}

// PurchaseRequest - authority to settle one sale
type PurchaseRequest struct {
	Seller          *account.Account      `json:"seller"`          // base58
	PaymentReceiver *account.Account      `json:"paymentReceiver"` // base58
	AssetContract   string                `json:"assetContract"`   // address holding the identifier
	TokenId         identifier.Identifier `json:"tokenId"`         // packed identifier
	PaymentToken    string                `json:"paymentToken"`    // empty for native currency
	FeeRate         uint64                `json:"feeRate"`         // basis points
	Price           uint64                `json:"price"`           // per unit, smallest currency unit
	Amount          uint64                `json:"amount"`          // units sold
	SellId          uint64                `json:"sellId"`          // sale identifier from the verifier service
}

// RecordName - returns the name of a request record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *MintRequest, MintRequest:
		return "MintRequest", true

	case *BatchMintRequest, BatchMintRequest:
		return "BatchMintRequest", true

	case *CreationRequest, CreationRequest:
		return "CreationRequest", true

	case *AddSubCollectionRequest, AddSubCollectionRequest:
		return "AddSubCollectionRequest", true

	case *PurchaseRequest, PurchaseRequest:
		return "PurchaseRequest", true

	default:
		return "*unknown*", false
	}
}

// MarshalText - convert a packed payload to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert hex text back to a packed payload
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
