// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/market"
	"github.com/countersign/registryd/request"
)

// Market - sale settlement, restricted to the live market role holder
type Market struct {
	log     *logger.L
	limiter *rate.Limiter
	market  *market.Market
}

// Market.BuyNative
// ----------------

// MarketBuyNativeArguments - a signed purchase settled in native currency
type MarketBuyNativeArguments struct {
	Caller    *account.Account        `json:"caller"`
	Buyer     *account.Account        `json:"buyer"`
	Request   request.PurchaseRequest `json:"request"`
	Signature account.Signature       `json:"signature"`
	Attached  uint64                  `json:"attached"`
}

// MarketBuyReply - the settled sale
type MarketBuyReply struct {
	TokenId identifier.Identifier `json:"tokenId"`
	Buyer   *account.Account      `json:"buyer"`
	SellId  uint64                `json:"sellId"`
}

// BuyNative - settle a sale paid in native currency
func (m *Market) BuyNative(arguments *MarketBuyNativeArguments, reply *MarketBuyReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}
	m.log.Infof("Market.BuyNative: sale %d", arguments.Request.SellId)

	err := m.market.BuyNative(arguments.Caller, arguments.Buyer, &arguments.Request, arguments.Signature, arguments.Attached)
	if nil != err {
		return err
	}
	reply.TokenId = arguments.Request.TokenId
	reply.Buyer = arguments.Buyer
	reply.SellId = arguments.Request.SellId
	return nil
}

// Market.BuyWithToken
// -------------------

// MarketBuyTokenArguments - a signed purchase settled in a fungible token
type MarketBuyTokenArguments struct {
	Caller    *account.Account        `json:"caller"`
	Buyer     *account.Account        `json:"buyer"`
	Request   request.PurchaseRequest `json:"request"`
	Signature account.Signature       `json:"signature"`
}

// BuyWithToken - settle a sale paid in a registered token
func (m *Market) BuyWithToken(arguments *MarketBuyTokenArguments, reply *MarketBuyReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}
	m.log.Infof("Market.BuyWithToken: sale %d", arguments.Request.SellId)

	err := m.market.BuyWithToken(arguments.Caller, arguments.Buyer, &arguments.Request, arguments.Signature)
	if nil != err {
		return err
	}
	reply.TokenId = arguments.Request.TokenId
	reply.Buyer = arguments.Buyer
	reply.SellId = arguments.Request.SellId
	return nil
}

// Market.RegisterContract
// -----------------------

// MarketRegisterContractArguments - admin admits or updates a contract
type MarketRegisterContractArguments struct {
	Caller  *account.Account `json:"caller"`
	Address string           `json:"address"`
	Type    string           `json:"type"` // "nft" or "ft"
	Enabled bool             `json:"enabled"`
}

// MarketRegisterContractReply - confirmation
type MarketRegisterContractReply struct {
	Address string `json:"address"`
	Enabled bool   `json:"enabled"`
}

// RegisterContract - admin only contract admission
func (m *Market) RegisterContract(arguments *MarketRegisterContractArguments, reply *MarketRegisterContractReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}

	err := m.market.RegisterAssetContract(arguments.Caller, arguments.Address, arguments.Type, arguments.Enabled)
	if nil != err {
		return err
	}
	reply.Address = arguments.Address
	reply.Enabled = arguments.Enabled
	return nil
}

// Market.UnregisterContract
// -------------------------

// MarketUnregisterContractArguments - admin removes a contract
type MarketUnregisterContractArguments struct {
	Caller  *account.Account `json:"caller"`
	Address string           `json:"address"`
}

// UnregisterContract - admin only contract removal
func (m *Market) UnregisterContract(arguments *MarketUnregisterContractArguments, reply *MarketRegisterContractReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}

	err := m.market.UnregisterAssetContract(arguments.Caller, arguments.Address)
	if nil != err {
		return err
	}
	reply.Address = arguments.Address
	reply.Enabled = false
	return nil
}
