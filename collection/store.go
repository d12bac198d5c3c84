// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"encoding/binary"
	"sync"
	"unicode/utf8"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/messagebus"
	"github.com/countersign/registryd/request"
	"github.com/countersign/registryd/rolegate"
	"github.com/countersign/registryd/storage"
)

// suffix distinguishing approval entries in the identifiers pool
const approvalSuffix = byte('a')

// longest acceptable collection name
const maxNameLength = 64

// Store - collection state and the operations that mutate it
type Store struct {
	sync.RWMutex
	log            *logger.L
	engine         *authorize.Engine
	gate           *rolegate.Gate
	collections    storage.Handle
	subcollections storage.Handle
	identifiers    storage.Handle
}

// NewStore - build the store over its pools
func NewStore(engine *authorize.Engine, gate *rolegate.Gate, collections storage.Handle, subcollections storage.Handle, identifiers storage.Handle) *Store {
	return &Store{
		log:            logger.New("collection"),
		engine:         engine,
		gate:           gate,
		collections:    collections,
		subcollections: subcollections,
		identifiers:    identifiers,
	}
}

// identifierKey - fixed width key for the identifiers pool
func identifierKey(tokenId identifier.Identifier) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, tokenId.Uint64())
	return key
}

// approvalKey - key for the transfer approval of one identifier
func approvalKey(tokenId identifier.Identifier) []byte {
	return append(identifierKey(tokenId), approvalSuffix)
}

// Create - create a collection from a signed creation request
//
// any caller may deploy a creation request; the authority is the
// verifier signature alone
func (s *Store) Create(owner *account.Account, name string, req *request.CreationRequest, signature account.Signature) error {
	if nil == req || nil == owner {
		return fault.MissingParameters
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fault.NameTooLong
	}

	_, err := s.engine.Authorize(req, signature, func(signer *account.Account) error {
		s.Lock()
		defer s.Unlock()

		key := collectionKey(req.CollectionId)
		if s.collections.Has(key) {
			return fault.CollectionAlreadyExists
		}

		c := &Collection{
			CollectionId: req.CollectionId,
			Admin:        req.Admin,
			Owner:        owner,
			Registry:     req.Registry,
			Name:         name,
			HighestSub:   1,
		}
		s.collections.Put(key, c.pack())

		// subcollection 1 exists from creation
		sub := &Subcollection{MaxEdition: req.MaxEdition, Minted: 0}
		s.subcollections.Put(subcollectionKey(req.CollectionId, 1), sub.pack())

		s.log.Infof("created collection %d (%q) cap %d", req.CollectionId, name, req.MaxEdition)
		messagebus.Send("collection", messagebus.CollectionCreated{
			CollectionId:    req.CollectionId,
			SubcollectionId: 1,
			MaxEdition:      req.MaxEdition,
			Name:            name,
			Admin:           req.Admin,
		})
		return nil
	})
	return err
}

// AddSubcollection - open the next subcollection of a collection
//
// the new id must be exactly one greater than the current highest;
// no gaps and no reuse
func (s *Store) AddSubcollection(req *request.AddSubCollectionRequest, signature account.Signature) error {
	if nil == req {
		return fault.MissingParameters
	}

	_, err := s.engine.Authorize(req, signature, func(signer *account.Account) error {
		s.Lock()
		defer s.Unlock()

		c, err := s.get(req.CollectionId)
		if nil != err {
			return err
		}
		if req.SubcollectionId != c.HighestSub+1 {
			return fault.NonSequentialSubcollection
		}

		sub := &Subcollection{MaxEdition: req.MaxEdition, Minted: 0}
		s.subcollections.Put(subcollectionKey(req.CollectionId, req.SubcollectionId), sub.pack())

		c.HighestSub = req.SubcollectionId
		s.collections.Put(collectionKey(c.CollectionId), c.pack())

		s.log.Infof("collection %d: opened subcollection %d cap %d", c.CollectionId, req.SubcollectionId, req.MaxEdition)
		messagebus.Send("collection", messagebus.SubcollectionAdded{
			CollectionId:    c.CollectionId,
			SubcollectionId: req.SubcollectionId,
			MaxEdition:      req.MaxEdition,
		})
		return nil
	})
	return err
}

// Mint - mint one identifier into a collection
//
// role gate first: a superseded minter never reaches the engine
func (s *Store) Mint(caller *account.Account, collectionId uint64, req *request.MintRequest, signature account.Signature) error {
	if err := s.gate.Authorize(caller, rolegate.Minter); nil != err {
		return err
	}
	if nil == req {
		return fault.MissingParameters
	}

	_, err := s.engine.Authorize(req, signature, func(signer *account.Account) error {
		s.Lock()
		defer s.Unlock()
		return s.mintOne(collectionId, req.TokenId, req.To, req.Uri)
	})
	return err
}

// MintBatch - mint several identifiers in one all-or-nothing call
func (s *Store) MintBatch(caller *account.Account, collectionId uint64, req *request.BatchMintRequest, signature account.Signature) error {
	if err := s.gate.Authorize(caller, rolegate.Minter); nil != err {
		return err
	}
	if nil == req {
		return fault.MissingParameters
	}
	if 0 == len(req.TokenIds) {
		return fault.InvalidCount
	}
	if len(req.TokenIds) != len(req.Uris) {
		return fault.ArityMismatch
	}

	// all identifiers must share one subcollection
	subcollectionId := req.TokenIds[0].Subcollection()
	for _, tokenId := range req.TokenIds[1:] {
		if tokenId.Subcollection() != subcollectionId {
			return fault.MixedSubcollections
		}
	}

	_, err := s.engine.Authorize(req, signature, func(signer *account.Account) error {
		s.Lock()
		defer s.Unlock()

		// validate the whole batch before touching any state so a
		// failure cannot leave a partial mint behind
		count := uint64(len(req.TokenIds))
		seen := make(map[identifier.Identifier]struct{}, count)
		for _, tokenId := range req.TokenIds {
			if tokenId.Collection() != collectionId {
				return fault.WrongCollection
			}
			if _, ok := seen[tokenId]; ok {
				return fault.AlreadyMinted
			}
			seen[tokenId] = struct{}{}
			if s.identifiers.Has(identifierKey(tokenId)) {
				return fault.AlreadyMinted
			}
		}

		sub, err := s.subcollection(collectionId, subcollectionId)
		if nil != err {
			// a subcollection that was never opened mints nothing,
			// exactly like a cap of zero
			return fault.EditionCapReached
		}
		if sub.Minted+count > sub.MaxEdition {
			return fault.EditionCapReached
		}

		for i, tokenId := range req.TokenIds {
			s.identifiers.Put(identifierKey(tokenId), req.To.Bytes())
			messagebus.Send("collection", messagebus.AssetMinted{
				CollectionId: collectionId,
				TokenId:      tokenId,
				Owner:        req.To,
				Uri:          req.Uris[i],
			})
		}
		sub.Minted += count
		s.subcollections.Put(subcollectionKey(collectionId, subcollectionId), sub.pack())

		s.log.Infof("collection %d: batch minted %d into subcollection %d (%d/%d)",
			collectionId, count, subcollectionId, sub.Minted, sub.MaxEdition)
		return nil
	})
	return err
}

// mintOne - the single mint rule, lock held by caller
func (s *Store) mintOne(collectionId uint64, tokenId identifier.Identifier, to *account.Account, uri string) error {
	if tokenId.Collection() != collectionId {
		return fault.WrongCollection
	}

	sub, err := s.subcollection(collectionId, tokenId.Subcollection())
	if nil != err {
		return fault.EditionCapReached
	}
	if sub.Minted >= sub.MaxEdition {
		return fault.EditionCapReached
	}
	if s.identifiers.Has(identifierKey(tokenId)) {
		return fault.AlreadyMinted
	}

	s.identifiers.Put(identifierKey(tokenId), to.Bytes())
	sub.Minted += 1
	s.subcollections.Put(subcollectionKey(collectionId, tokenId.Subcollection()), sub.pack())

	s.log.Infof("collection %d: minted %s (%d/%d)", collectionId, tokenId, sub.Minted, sub.MaxEdition)
	messagebus.Send("collection", messagebus.AssetMinted{
		CollectionId: collectionId,
		TokenId:      tokenId,
		Owner:        to,
		Uri:          uri,
	})
	return nil
}

// UpdateRegistry - point a collection at a different registry
//
// restricted to the collection's own admin
func (s *Store) UpdateRegistry(caller *account.Account, collectionId uint64, registry string) error {
	s.Lock()
	defer s.Unlock()

	c, err := s.get(collectionId)
	if nil != err {
		return err
	}
	if !c.Admin.IsSame(caller) {
		return fault.Unauthorized
	}
	c.Registry = registry
	s.collections.Put(collectionKey(collectionId), c.pack())
	s.log.Infof("collection %d: registry set to %q", collectionId, registry)
	return nil
}

// Get - fetch a collection record
func (s *Store) Get(collectionId uint64) (*Collection, error) {
	s.RLock()
	defer s.RUnlock()
	return s.get(collectionId)
}

// get - lock free fetch
func (s *Store) get(collectionId uint64) (*Collection, error) {
	data := s.collections.Get(collectionKey(collectionId))
	if nil == data {
		return nil, fault.CollectionNotFound
	}
	return unpackCollection(data)
}

// Subcollection - fetch one edition counter
func (s *Store) Subcollection(collectionId uint64, subcollectionId uint64) (*Subcollection, error) {
	s.RLock()
	defer s.RUnlock()
	return s.subcollection(collectionId, subcollectionId)
}

// subcollection - lock free fetch
func (s *Store) subcollection(collectionId uint64, subcollectionId uint64) (*Subcollection, error) {
	data := s.subcollections.Get(subcollectionKey(collectionId, subcollectionId))
	if nil == data {
		return nil, fault.SubcollectionNotFound
	}
	return unpackSubcollection(data)
}

// NextSubcollection - the id AddSubcollection would accept next
func (s *Store) NextSubcollection(collectionId uint64) (uint64, error) {
	c, err := s.Get(collectionId)
	if nil != err {
		return 0, err
	}
	return c.HighestSub + 1, nil
}

// OwnerOf - current owner of a minted identifier
func (s *Store) OwnerOf(tokenId identifier.Identifier) (*account.Account, error) {
	s.RLock()
	defer s.RUnlock()
	data := s.identifiers.Get(identifierKey(tokenId))
	if nil == data {
		return nil, fault.IdentifierNotMinted
	}
	return account.AccountFromBytes(data)
}

// Approve - the owner grants one operator transfer rights
func (s *Store) Approve(caller *account.Account, tokenId identifier.Identifier, operator *account.Account) error {
	s.Lock()
	defer s.Unlock()

	data := s.identifiers.Get(identifierKey(tokenId))
	if nil == data {
		return fault.IdentifierNotMinted
	}
	owner, err := account.AccountFromBytes(data)
	if nil != err {
		return err
	}
	if !owner.IsSame(caller) {
		return fault.Unauthorized
	}
	s.identifiers.Put(approvalKey(tokenId), operator.Bytes())
	return nil
}

// IsApproved - check transfer rights of an operator
func (s *Store) IsApproved(tokenId identifier.Identifier, operator *account.Account) bool {
	s.RLock()
	defer s.RUnlock()
	data := s.identifiers.Get(approvalKey(tokenId))
	if nil == data {
		return false
	}
	approved, err := account.AccountFromBytes(data)
	if nil != err {
		return false
	}
	return approved.IsSame(operator)
}

// Transfer - move an identifier between owners
//
// the operator must be the owner or the approved operator; the
// approval is consumed by the transfer
func (s *Store) Transfer(tokenId identifier.Identifier, from *account.Account, to *account.Account, operator *account.Account) error {
	s.Lock()
	defer s.Unlock()

	data := s.identifiers.Get(identifierKey(tokenId))
	if nil == data {
		return fault.SellerNotOwner
	}
	owner, err := account.AccountFromBytes(data)
	if nil != err {
		return err
	}
	if !owner.IsSame(from) {
		return fault.SellerNotOwner
	}

	if !owner.IsSame(operator) {
		approval := s.identifiers.Get(approvalKey(tokenId))
		if nil == approval {
			return fault.TransferNotApproved
		}
		approved, err := account.AccountFromBytes(approval)
		if nil != err {
			return err
		}
		if !approved.IsSame(operator) {
			return fault.TransferNotApproved
		}
	}

	s.identifiers.Put(identifierKey(tokenId), to.Bytes())
	s.identifiers.Delete(approvalKey(tokenId))
	return nil
}

// Count - number of collections
func (s *Store) Count() uint64 {
	return s.collections.Count()
}

// MintedCount - number of minted identifiers
//
// approval entries share the identifiers pool and are skipped by
// their longer keys
func (s *Store) MintedCount() uint64 {
	n := uint64(0)
	for _, e := range s.identifiers.Fetch() {
		if 8 == len(e.Key) {
			n += 1
		}
	}
	return n
}
