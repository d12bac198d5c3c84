// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorize - the signature authorisation engine
//
// Every privileged request is admitted only when a currently
// registered verifier signed exactly that request's canonical
// payload and the signature was never consumed before.  The payload
// is always rebuilt from the submitted record's own fields, never
// taken from caller metadata.
//
// The engine serialises verify → apply → consume under one lock, so
// from any other call's point of view a request either happened
// completely or not at all.  A request is never reported authorised
// with its signature left unconsumed.
package authorize

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/replay"
	"github.com/countersign/registryd/request"
	"github.com/countersign/registryd/verifier"
)

// Engine - composes the verifier registry and the replay ledger
type Engine struct {
	sync.Mutex
	log       *logger.L
	verifiers *verifier.Registry
	ledger    *replay.Ledger
}

// New - build an engine
func New(verifiers *verifier.Registry, ledger *replay.Ledger) *Engine {
	return &Engine{
		log:       logger.New("authorize"),
		verifiers: verifiers,
		ledger:    ledger,
	}
}

// Verifiers - the registry in use
func (e *Engine) Verifiers() *verifier.Registry {
	return e.verifiers
}

// Ledger - the replay ledger in use
func (e *Engine) Ledger() *replay.Ledger {
	return e.ledger
}

// Authorize - admit or reject one signed request
//
// sequence:
//  1. rebuild the canonical payload from the record's fields
//  2. reject structurally malformed signatures
//  3. find the registered verifier whose key verifies the payload;
//     any field tampering lands here as InvalidVerifier
//  4. reject consumed signatures
//  5. run apply: the caller's business checks and state mutations
//  6. mark the signature consumed
//
// apply runs inside the engine lock; if it returns an error nothing
// is consumed and the whole request is a no-op.  a nil apply just
// authorises.
func (e *Engine) Authorize(record request.Record, signature account.Signature, apply func(signer *account.Account) error) (*account.Account, error) {

	payload, err := record.Pack()
	if nil != err {
		return nil, err
	}

	if account.SignatureSize != len(signature) {
		return nil, fault.MalformedSignature
	}

	// critical code - the whole sequence is one atomic state transition
	e.Lock()
	defer e.Unlock()

	var signer *account.Account
	for _, candidate := range e.verifiers.Candidates() {
		if nil == candidate.CheckSignature(payload, signature) {
			signer = candidate
			break
		}
	}
	if nil == signer {
		name, _ := request.RecordName(record)
		e.log.Warnf("%s: no registered verifier signed this payload", name)
		return nil, fault.InvalidVerifier
	}

	if e.ledger.Seen(signature) {
		return nil, fault.SignatureReused
	}

	if nil != apply {
		err := apply(signer)
		if nil != err {
			return nil, err
		}
	}

	err = e.ledger.Consume(signature)
	if nil != err {
		// Seen was checked under this lock; only a storage level
		// inconsistency can reach here
		logger.PanicIfError("authorize: consume after check", err)
	}

	return signer, nil
}
