// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verifier - the set of authorised signing identities
//
// Membership changes take effect immediately: a signature produced by
// a removed verifier is rejected from the next call on, whether or
// not it was ever submitted.  For backward compatibility one legacy
// single-verifier slot exists; once migrated it reads as absent, not
// as a zero verifier, so lookups against it fail closed.
package verifier

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/storage"
)

// marker key recording that the legacy slot was cleared
// lives in the verifier pool under an invalid account prefix
var legacyClearedKey = []byte{0x00, 'L', 'E', 'G', 'A', 'C', 'Y'}

// Registry - the verifier set plus the legacy slot
type Registry struct {
	sync.RWMutex
	log     *logger.L
	pool    storage.Handle
	members map[string]*account.Account
	legacy  *account.Account
}

// New - build a registry over its storage pool
//
// members persisted by earlier runs are reloaded; the legacy verifier
// comes from configuration and is honoured only until migration
func New(pool storage.Handle, legacy *account.Account) (*Registry, error) {
	r := &Registry{
		log:     logger.New("verifier"),
		pool:    pool,
		members: make(map[string]*account.Account),
		legacy:  legacy,
	}

	for _, e := range pool.Fetch() {
		if 0 == len(e.Key) || 0x00 == e.Key[0] {
			continue // marker keys are not accounts
		}
		member, err := account.AccountFromBytes(e.Key)
		if nil != err {
			return nil, err
		}
		r.members[member.String()] = member
	}

	if pool.Has(legacyClearedKey) {
		r.legacy = nil
	}

	r.log.Infof("loaded %d verifiers", len(r.members))
	return r, nil
}

// Add - register a verifier, immediate effect
func (r *Registry) Add(member *account.Account) {
	r.Lock()
	defer r.Unlock()
	r.members[member.String()] = member
	r.pool.Put(member.Bytes(), []byte{})
	r.log.Infof("added verifier: %s", member)
}

// Remove - deregister a verifier, immediate effect
//
// signatures made by the removed verifier are permanently rejected
// even if never consumed
func (r *Registry) Remove(member *account.Account) {
	r.Lock()
	defer r.Unlock()
	delete(r.members, member.String())
	r.pool.Delete(member.Bytes())
	r.log.Infof("removed verifier: %s", member)
}

// MigrateLegacy - clear the single legacy verifier slot
//
// after migration the slot reads as "no verifier"; the cleared state
// is persisted so a restart cannot resurrect the legacy signer
func (r *Registry) MigrateLegacy() {
	r.Lock()
	defer r.Unlock()
	r.legacy = nil
	r.pool.Put(legacyClearedKey, []byte{})
	r.log.Info("legacy verifier cleared")
}

// IsAuthorized - membership test
func (r *Registry) IsAuthorized(signer *account.Account) bool {
	if nil == signer {
		return false
	}
	r.RLock()
	defer r.RUnlock()
	if _, ok := r.members[signer.String()]; ok {
		return true
	}
	return nil != r.legacy && r.legacy.IsSame(signer)
}

// Candidates - all identities a signature may verify against
//
// the engine tries each in turn since ed25519 has no key recovery
func (r *Registry) Candidates() []*account.Account {
	r.RLock()
	defer r.RUnlock()
	candidates := make([]*account.Account, 0, len(r.members)+1)
	for _, member := range r.members {
		candidates = append(candidates, member)
	}
	if nil != r.legacy {
		candidates = append(candidates, r.legacy)
	}
	return candidates
}
