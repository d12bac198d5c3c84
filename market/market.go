// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/messagebus"
	"github.com/countersign/registryd/request"
	"github.com/countersign/registryd/rolegate"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/trade"
)

// fee rates are basis points
const feeBase = 10000

// contract type tags
const (
	TagAsset    = "nft" // holds identifiers
	TagFungible = "ft"  // payment token
)

// Market - the marketplace entrypoints and contract registry
type Market struct {
	sync.RWMutex
	log        *logger.L
	engine     *authorize.Engine
	gate       *rolegate.Gate
	admin      *account.Account
	feeAccount *account.Account
	contracts  storage.Handle
	ownership  OwnershipLedger
	funds      FungibleLedger
}

// New - build the market
func New(engine *authorize.Engine, gate *rolegate.Gate, admin *account.Account, feeAccount *account.Account, contracts storage.Handle, ownership OwnershipLedger, funds FungibleLedger) *Market {
	return &Market{
		log:        logger.New("market"),
		engine:     engine,
		gate:       gate,
		admin:      admin,
		feeAccount: feeAccount,
		contracts:  contracts,
		ownership:  ownership,
		funds:      funds,
	}
}

// contract registry record: enabled byte then type tag
func packContract(typeTag string, enabled bool) []byte {
	flag := byte(0x00)
	if enabled {
		flag = 0x01
	}
	return append([]byte{flag}, typeTag...)
}

func unpackContract(data []byte) (typeTag string, enabled bool) {
	if 0 == len(data) {
		return "", false
	}
	return string(data[1:]), 0x01 == data[0]
}

// RegisterAssetContract - admin only: admit a contract address
func (m *Market) RegisterAssetContract(caller *account.Account, address string, typeTag string, enabled bool) error {
	if !m.admin.IsSame(caller) {
		return fault.Unauthorized
	}
	if 0 == len(address) || (TagAsset != typeTag && TagFungible != typeTag) {
		return fault.InvalidItem
	}
	m.Lock()
	defer m.Unlock()
	m.contracts.Put([]byte(address), packContract(typeTag, enabled))
	m.log.Infof("registered contract %q type %q enabled %v", address, typeTag, enabled)
	return nil
}

// UnregisterAssetContract - admin only: remove a contract address
func (m *Market) UnregisterAssetContract(caller *account.Account, address string) error {
	if !m.admin.IsSame(caller) {
		return fault.Unauthorized
	}
	m.Lock()
	defer m.Unlock()
	m.contracts.Delete([]byte(address))
	m.log.Infof("unregistered contract %q", address)
	return nil
}

// isRegistered - check a contract address against a required tag
func (m *Market) isRegistered(address string, requiredTag string) bool {
	m.RLock()
	defer m.RUnlock()
	data := m.contracts.Get([]byte(address))
	if nil == data {
		return false
	}
	typeTag, enabled := unpackContract(data)
	return enabled && requiredTag == typeTag
}

// BuyNative - settle a sale in native currency
//
// attached is the value the buyer sent along with the call; anything
// above the total stays with the buyer
func (m *Market) BuyNative(caller *account.Account, buyer *account.Account, req *request.PurchaseRequest, signature account.Signature, attached uint64) error {
	if err := m.gate.Authorize(caller, rolegate.Market); nil != err {
		return err
	}
	if nil == req || nil == buyer {
		return fault.MissingParameters
	}

	_, err := m.engine.Authorize(req, signature, func(signer *account.Account) error {
		if nativeToken != req.PaymentToken {
			return fault.UnsupportedPaymentToken
		}
		total, err := m.validate(caller, req)
		if nil != err {
			return err
		}
		if attached < total {
			return fault.InsufficientPayment
		}

		fee := feeOf(total, req.FeeRate)

		// attached value is already paid in; split it
		m.funds.Deposit(nativeToken, req.PaymentReceiver, total-fee)
		m.funds.Deposit(nativeToken, m.feeAccount, fee)

		err = m.ownership.Transfer(req.TokenId, req.Seller, buyer, caller)
		if nil != err {
			// transferability was validated, only a data level
			// inconsistency can reach here
			logger.PanicIfError("market: transfer after validate", err)
		}

		m.settled(buyer, req, fee, trade.Native)
		return nil
	})
	return err
}

// BuyWithToken - settle a sale in a registered fungible token
//
// the buyer must have approved the payment receiver's funds movement
// beforehand; missing approval or balance rejects the whole purchase
func (m *Market) BuyWithToken(caller *account.Account, buyer *account.Account, req *request.PurchaseRequest, signature account.Signature) error {
	if err := m.gate.Authorize(caller, rolegate.Market); nil != err {
		return err
	}
	if nil == req || nil == buyer {
		return fault.MissingParameters
	}

	_, err := m.engine.Authorize(req, signature, func(signer *account.Account) error {
		if nativeToken == req.PaymentToken || !m.isRegistered(req.PaymentToken, TagFungible) {
			return fault.UnsupportedPaymentToken
		}
		total, err := m.validate(caller, req)
		if nil != err {
			return err
		}

		fee := feeOf(total, req.FeeRate)

		// one debit for the whole total so the buyer's balance and
		// allowance either cover the purchase or nothing moves
		err = m.funds.TransferFrom(req.PaymentToken, buyer, req.PaymentReceiver, total, caller)
		if nil != err {
			return err
		}

		// fee leg spends the receiver's just-credited funds; the fee
		// never exceeds the total, so this cannot fail
		err = m.funds.TransferFrom(req.PaymentToken, req.PaymentReceiver, m.feeAccount, fee, req.PaymentReceiver)
		if nil != err {
			logger.PanicIfError("market: fee split after debit", err)
		}

		err = m.ownership.Transfer(req.TokenId, req.Seller, buyer, caller)
		if nil != err {
			logger.PanicIfError("market: transfer after validate", err)
		}

		m.settled(buyer, req, fee, trade.Token)
		return nil
	})
	return err
}

// feeOf - basis point fee on a total
//
// total is split at feeBase so neither multiplication can overflow
// uint64; the result is exactly total*rate/feeBase rounded down
func feeOf(total uint64, rate uint64) uint64 {
	return total/feeBase*rate + total%feeBase*rate/feeBase
}

// validate - checks shared by both settlement paths
//
// returns the total sale value
func (m *Market) validate(caller *account.Account, req *request.PurchaseRequest) (uint64, error) {
	if !m.isRegistered(req.AssetContract, TagAsset) {
		return 0, fault.UnsupportedAssetContract
	}
	if 0 == req.Amount || 0 == req.Price {
		return 0, fault.InvalidCount
	}
	if req.FeeRate > feeBase {
		return 0, fault.InvalidItem
	}
	total := req.Price * req.Amount
	if total/req.Amount != req.Price {
		return 0, fault.InvalidCount // multiplication overflow
	}

	owner, err := m.ownership.OwnerOf(req.TokenId)
	if nil != err || !owner.IsSame(req.Seller) {
		return 0, fault.SellerNotOwner
	}
	if !req.Seller.IsSame(caller) && !m.ownership.IsApproved(req.TokenId, caller) {
		return 0, fault.TransferNotApproved
	}
	return total, nil
}

// settled - log and publish one settlement
func (m *Market) settled(buyer *account.Account, req *request.PurchaseRequest, fee uint64, tradeType trade.Type) {
	m.log.Infof("settled sale %d: %s to %s for %d*%d fee %d (%s)",
		req.SellId, req.Seller, buyer, req.Amount, req.Price, fee, tradeType)
	messagebus.Send("market", messagebus.TradeSettled{
		Buyer:           buyer,
		Seller:          req.Seller,
		PaymentReceiver: req.PaymentReceiver,
		AssetContract:   req.AssetContract,
		TokenId:         req.TokenId,
		Price:           req.Price,
		Amount:          req.Amount,
		Fee:             fee,
		SellId:          req.SellId,
		TradeType:       tradeType,
	})
}

// FeeAccount - where fees accumulate
func (m *Market) FeeAccount() *account.Account {
	return m.feeAccount
}

// Admin - the administrator account
func (m *Market) Admin() *account.Account {
	return m.admin
}
