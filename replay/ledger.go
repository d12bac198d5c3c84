// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package replay - the consumed signature ledger
//
// The ledger is keyed by the raw signature bytes: the signature is
// the nonce.  Once a signature is marked consumed it stays consumed
// for the life of the data store; there is no reset path.
package replay

import (
	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/storage"
)

// Ledger - consumption ledger backed by a storage pool
//
// callers serialise access; the authorisation engine holds its lock
// across the whole verify → consume sequence
type Ledger struct {
	log  *logger.L
	pool storage.Handle
}

// consumed flag value
var consumedMarker = []byte{0x01}

// New - create a ledger on the given pool
func New(pool storage.Handle) *Ledger {
	return &Ledger{
		log:  logger.New("replay"),
		pool: pool,
	}
}

// Seen - check whether a signature was already consumed
func (ledger *Ledger) Seen(signature account.Signature) bool {
	if 0 == len(signature) {
		return false
	}
	return ledger.pool.Has(signature)
}

// Consume - mark a signature as used
//
// marking an already consumed signature is an error so that a missed
// Seen check cannot pass silently
func (ledger *Ledger) Consume(signature account.Signature) error {
	if 0 == len(signature) {
		return fault.MalformedSignature
	}
	if ledger.pool.Has(signature) {
		return fault.SignatureReused
	}
	ledger.pool.Put(signature, consumedMarker)
	ledger.log.Debugf("consumed signature: %s", signature)
	return nil
}

// CheckAndConsume - atomic check-then-mark for simple callers
func (ledger *Ledger) CheckAndConsume(signature account.Signature) error {
	if ledger.Seen(signature) {
		return fault.SignatureReused
	}
	return ledger.Consume(signature)
}

// Count - number of consumed signatures
func (ledger *Ledger) Count() uint64 {
	return ledger.pool.Count()
}
