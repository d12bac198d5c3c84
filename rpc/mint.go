// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/collection"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/request"
)

// Mint - minting operations, restricted to the live minter
type Mint struct {
	log     *logger.L
	limiter *rate.Limiter
	store   *collection.Store
}

// batches above this size are rejected before any work
const maximumBatchSize = 100

// Mint.Single
// -----------

// MintSingleArguments - a signed mint request
type MintSingleArguments struct {
	Caller       *account.Account    `json:"caller"`
	CollectionId uint64              `json:"collectionId"`
	Request      request.MintRequest `json:"request"`
	Signature    account.Signature   `json:"signature"`
}

// MintSingleReply - the minted identifier
type MintSingleReply struct {
	TokenId identifier.Identifier `json:"tokenId"`
	Owner   *account.Account      `json:"owner"`
}

// Single - mint one identifier
func (m *Mint) Single(arguments *MintSingleArguments, reply *MintSingleReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}
	m.log.Infof("Mint.Single: %s", arguments.Request.TokenId)

	err := m.store.Mint(arguments.Caller, arguments.CollectionId, &arguments.Request, arguments.Signature)
	if nil != err {
		return err
	}
	reply.TokenId = arguments.Request.TokenId
	reply.Owner = arguments.Request.To
	return nil
}

// Mint.Batch
// ----------

// MintBatchArguments - a signed batch mint request
type MintBatchArguments struct {
	Caller       *account.Account         `json:"caller"`
	CollectionId uint64                   `json:"collectionId"`
	Request      request.BatchMintRequest `json:"request"`
	Signature    account.Signature        `json:"signature"`
}

// MintBatchReply - all minted identifiers
type MintBatchReply struct {
	TokenIds []identifier.Identifier `json:"tokenIds"`
	Owner    *account.Account        `json:"owner"`
}

// Batch - mint several identifiers, all or nothing
func (m *Mint) Batch(arguments *MintBatchArguments, reply *MintBatchReply) error {
	if err := rateLimitN(m.limiter, len(arguments.Request.TokenIds), maximumBatchSize); nil != err {
		return err
	}
	m.log.Infof("Mint.Batch: %d identifiers", len(arguments.Request.TokenIds))

	err := m.store.MintBatch(arguments.Caller, arguments.CollectionId, &arguments.Request, arguments.Signature)
	if nil != err {
		return err
	}
	reply.TokenIds = arguments.Request.TokenIds
	reply.Owner = arguments.Request.To
	return nil
}

// Mint.Owner
// ----------

// MintOwnerArguments - select one identifier
type MintOwnerArguments struct {
	TokenId identifier.Identifier `json:"tokenId"`
}

// MintOwnerReply - the identifier's current owner
type MintOwnerReply struct {
	TokenId identifier.Identifier `json:"tokenId"`
	Owner   *account.Account      `json:"owner"`
}

// Owner - current owner of a minted identifier
func (m *Mint) Owner(arguments *MintOwnerArguments, reply *MintOwnerReply) error {
	if err := rateLimit(m.limiter); nil != err {
		return err
	}

	owner, err := m.store.OwnerOf(arguments.TokenId)
	if nil != err {
		return err
	}
	reply.TokenId = arguments.TokenId
	reply.Owner = owner
	return nil
}
