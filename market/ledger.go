// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"sync"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/util"
)

// OwnershipLedger - the asset ledger the market settles against
type OwnershipLedger interface {
	OwnerOf(tokenId identifier.Identifier) (*account.Account, error)
	IsApproved(tokenId identifier.Identifier, operator *account.Account) bool
	Transfer(tokenId identifier.Identifier, from *account.Account, to *account.Account, operator *account.Account) error
}

// FungibleLedger - the token ledger the market settles against
type FungibleLedger interface {
	Balance(token string, holder *account.Account) uint64
	Deposit(token string, to *account.Account, amount uint64)
	Approve(token string, owner *account.Account, spender *account.Account, amount uint64)
	TransferFrom(token string, from *account.Account, to *account.Account, amount uint64, spender *account.Account) error
}

// native currency is the unnamed token
const nativeToken = ""

// Funds - in-process fungible ledger over the balances pool
type Funds struct {
	sync.Mutex
	pool storage.Handle
}

// NewFunds - build the ledger over its pool
func NewFunds(pool storage.Handle) *Funds {
	return &Funds{pool: pool}
}

// balance key: len(token) token 0x00 holder
func balanceKey(token string, holder *account.Account) []byte {
	key := util.ToVarint64(uint64(len(token)))
	key = append(key, token...)
	key = append(key, 0x00)
	return append(key, holder.Bytes()...)
}

// allowance key: len(token) token 0x01 owner 0x00 spender
func allowanceKey(token string, owner *account.Account, spender *account.Account) []byte {
	key := util.ToVarint64(uint64(len(token)))
	key = append(key, token...)
	key = append(key, 0x01)
	key = append(key, owner.Bytes()...)
	key = append(key, 0x00)
	return append(key, spender.Bytes()...)
}

func (f *Funds) read(key []byte) uint64 {
	data := f.pool.Get(key)
	if nil == data {
		return 0
	}
	value, _ := util.FromVarint64(data)
	return value
}

func (f *Funds) write(key []byte, value uint64) {
	f.pool.Put(key, util.ToVarint64(value))
}

// Balance - current holding
func (f *Funds) Balance(token string, holder *account.Account) uint64 {
	f.Lock()
	defer f.Unlock()
	return f.read(balanceKey(token, holder))
}

// Deposit - credit a holder
func (f *Funds) Deposit(token string, to *account.Account, amount uint64) {
	f.Lock()
	defer f.Unlock()
	key := balanceKey(token, to)
	f.write(key, f.read(key)+amount)
}

// Approve - set a spender's allowance
func (f *Funds) Approve(token string, owner *account.Account, spender *account.Account, amount uint64) {
	f.Lock()
	defer f.Unlock()
	f.write(allowanceKey(token, owner, spender), amount)
}

// TransferFrom - move tokens, conditioned on prior approval
//
// a spender other than the owner needs sufficient allowance; the
// allowance is reduced by the amount moved
func (f *Funds) TransferFrom(token string, from *account.Account, to *account.Account, amount uint64, spender *account.Account) error {
	f.Lock()
	defer f.Unlock()

	spenderIsOwner := from.IsSame(spender)
	aKey := allowanceKey(token, from, spender)
	allowance := uint64(0)
	if !spenderIsOwner {
		allowance = f.read(aKey)
		if allowance < amount {
			return fault.TransferNotApproved
		}
	}

	fromKey := balanceKey(token, from)
	balance := f.read(fromKey)
	if balance < amount {
		return fault.InsufficientPayment
	}
	f.write(fromKey, balance-amount)
	if !spenderIsOwner {
		f.write(aKey, allowance-amount)
	}

	toKey := balanceKey(token, to)
	f.write(toKey, f.read(toKey)+amount)
	return nil
}
