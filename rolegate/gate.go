// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rolegate - single live holders of privileged roles
//
// Exactly one minter and one market contract are trusted at any
// moment.  Installing a new holder is a pure overwrite: from that
// instant the previous holder is rejected on every privileged call,
// even with signatures it could have validly served the call before.
// The gate is consulted before any signature work, so an unauthorised
// caller never reaches the authorisation engine.
package rolegate

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/storage"
)

// Role - a privileged role
type Role int

// the defined roles
const (
	Minter Role = iota
	Market Role = iota
)

// persisted role keys
var (
	minterKey = []byte("minter")
	marketKey = []byte("market")
)

// String - role name for logging
func (role Role) String() string {
	switch role {
	case Minter:
		return "minter"
	case Market:
		return "market"
	default:
		return "*unknown*"
	}
}

// Gate - the live role holders
type Gate struct {
	sync.RWMutex
	log    *logger.L
	pool   storage.Handle
	minter *account.Account
	market *account.Account
}

// New - build a gate over its storage pool, reloading persisted holders
func New(pool storage.Handle) (*Gate, error) {
	g := &Gate{
		log:  logger.New("rolegate"),
		pool: pool,
	}

	if data := pool.Get(minterKey); nil != data {
		holder, err := account.AccountFromBytes(data)
		if nil != err {
			return nil, err
		}
		g.minter = holder
	}
	if data := pool.Get(marketKey); nil != data {
		holder, err := account.AccountFromBytes(data)
		if nil != err {
			return nil, err
		}
		g.market = holder
	}
	return g, nil
}

// SetMinter - install a new minter, excluding the previous one
func (g *Gate) SetMinter(holder *account.Account) {
	g.Lock()
	defer g.Unlock()
	g.minter = holder
	g.pool.Put(minterKey, holder.Bytes())
	g.log.Infof("minter role set to: %s", holder)
}

// SetMarket - install a new market, excluding the previous one
func (g *Gate) SetMarket(holder *account.Account) {
	g.Lock()
	defer g.Unlock()
	g.market = holder
	g.pool.Put(marketKey, holder.Bytes())
	g.log.Infof("market role set to: %s", holder)
}

// Holder - the current holder of a role, nil if unset
func (g *Gate) Holder(role Role) *account.Account {
	g.RLock()
	defer g.RUnlock()
	switch role {
	case Minter:
		return g.minter
	case Market:
		return g.market
	default:
		return nil
	}
}

// Authorize - compare a caller to the single live holder of a role
//
// no grace period: a superseded holder is Unauthorized immediately
func (g *Gate) Authorize(caller *account.Account, role Role) error {
	holder := g.Holder(role)
	if nil == holder || !holder.IsSame(caller) {
		return fault.Unauthorized
	}
	return nil
}
