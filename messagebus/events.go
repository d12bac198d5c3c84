// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/trade"
)

// CollectionCreated - emitted once per collection creation
type CollectionCreated struct {
	CollectionId    uint64           `json:"collectionId"`
	SubcollectionId uint64           `json:"subcollectionId"` // always 1
	MaxEdition      uint64           `json:"maxEdition"`
	Name            string           `json:"name"`
	Admin           *account.Account `json:"admin"`
}

// SubcollectionAdded - emitted when a collection opens a new subcollection
type SubcollectionAdded struct {
	CollectionId    uint64 `json:"collectionId"`
	SubcollectionId uint64 `json:"subcollectionId"`
	MaxEdition      uint64 `json:"maxEdition"`
}

// AssetMinted - emitted per successful mint, one per identifier
type AssetMinted struct {
	CollectionId uint64                `json:"collectionId"`
	TokenId      identifier.Identifier `json:"tokenId"`
	Owner        *account.Account      `json:"owner"`
	Uri          string                `json:"uri"`
}

// Topic - the publishing topic of an event
func Topic(item interface{}) (string, bool) {
	switch item.(type) {
	case CollectionCreated:
		return "collection.created", true
	case SubcollectionAdded:
		return "subcollection.added", true
	case AssetMinted:
		return "asset.minted", true
	case TradeSettled:
		return "trade.settled", true
	default:
		return "", false
	}
}

// TradeSettled - emitted once per settled purchase
type TradeSettled struct {
	Buyer           *account.Account      `json:"buyer"`
	Seller          *account.Account      `json:"seller"`
	PaymentReceiver *account.Account      `json:"paymentReceiver"`
	AssetContract   string                `json:"assetContract"`
	TokenId         identifier.Identifier `json:"tokenId"`
	Price           uint64                `json:"price"`
	Amount          uint64                `json:"amount"`
	Fee             uint64                `json:"fee"`
	SellId          uint64                `json:"sellId"`
	TradeType       trade.Type            `json:"tradeType"`
}
