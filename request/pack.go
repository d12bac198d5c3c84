// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"unicode/utf8"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/util"
)

// pack MintRequest
//
// fields in order: to, tokenId, uri, type tag
func (mint *MintRequest) Pack() (Packed, error) {
	if nil == mint.To {
		return nil, fault.MissingParameters
	}
	if utf8.RuneCountInString(mint.Uri) > maxUriLength {
		return nil, fault.UriTooLong
	}

	// concatenate bytes
	message := appendAccount(Packed{}, mint.To)
	message = appendUint64(message, mint.TokenId.Uint64())
	message = appendString(message, mint.Uri)
	message = appendUint64(message, uint64(MintTag))
	return message, nil
}

// pack BatchMintRequest
//
// fields in order: to, each tokenId individually, all uris
// concatenated in array order, type tag
//
// each uri carries its own length prefix; the concatenation itself
// has no delimiter, so the boundaries come only from those prefixes
func (batch *BatchMintRequest) Pack() (Packed, error) {
	if nil == batch.To {
		return nil, fault.MissingParameters
	}
	if 0 == len(batch.TokenIds) || len(batch.TokenIds) > maxBatchSize {
		return nil, fault.InvalidCount
	}
	if len(batch.TokenIds) != len(batch.Uris) {
		return nil, fault.ArityMismatch
	}

	message := appendAccount(Packed{}, batch.To)
	for _, tokenId := range batch.TokenIds {
		message = appendUint64(message, tokenId.Uint64())
	}
	for _, uri := range batch.Uris {
		if utf8.RuneCountInString(uri) > maxUriLength {
			return nil, fault.UriTooLong
		}
		message = appendString(message, uri)
	}
	message = appendUint64(message, uint64(BatchMintTag))
	return message, nil
}

// pack CreationRequest
//
// fields in order: collectionId, maxEdition, requestId, admin, registry
func (creation *CreationRequest) Pack() (Packed, error) {
	if nil == creation.Admin {
		return nil, fault.MissingParameters
	}
	if 0 == len(creation.Registry) || len(creation.Registry) > maxAddressLength {
		return nil, fault.InvalidItem
	}

	message := appendUint64(Packed{}, creation.CollectionId)
	message = appendUint64(message, creation.MaxEdition)
	message = appendUint64(message, creation.RequestId)
	message = appendAccount(message, creation.Admin)
	message = appendString(message, creation.Registry)
	return message, nil
}

// pack AddSubCollectionRequest
//
// fields in order: collectionId, subcollectionId, maxEdition, requestId
func (add *AddSubCollectionRequest) Pack() (Packed, error) {
	message := appendUint64(Packed{}, add.CollectionId)
	message = appendUint64(message, add.SubcollectionId)
	message = appendUint64(message, add.MaxEdition)
	message = appendUint64(message, add.RequestId)
	return message, nil
}

// pack PurchaseRequest
//
// fields in order: seller, paymentReceiver, assetContract, tokenId,
// paymentToken, feeRate, price, amount, sellId, type tag
func (purchase *PurchaseRequest) Pack() (Packed, error) {
	if nil == purchase.Seller || nil == purchase.PaymentReceiver {
		return nil, fault.MissingParameters
	}
	if 0 == len(purchase.AssetContract) || len(purchase.AssetContract) > maxAddressLength {
		return nil, fault.InvalidItem
	}
	if len(purchase.PaymentToken) > maxAddressLength {
		return nil, fault.InvalidItem
	}

	message := appendAccount(Packed{}, purchase.Seller)
	message = appendAccount(message, purchase.PaymentReceiver)
	message = appendString(message, purchase.AssetContract)
	message = appendUint64(message, purchase.TokenId.Uint64())
	message = appendString(message, purchase.PaymentToken)
	message = appendUint64(message, purchase.FeeRate)
	message = appendUint64(message, purchase.Price)
	message = appendUint64(message, purchase.Amount)
	message = appendUint64(message, purchase.SellId)
	message = appendUint64(message, uint64(PurchaseTag))
	return message, nil
}

// append a single string field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an account to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
