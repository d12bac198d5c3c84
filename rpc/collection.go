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
	"github.com/countersign/registryd/request"
)

// Collection - collection deployment and queries
type Collection struct {
	log     *logger.L
	limiter *rate.Limiter
	store   *collection.Store
}

// Collection.Create
// -----------------

// CollectionCreateArguments - a signed creation request
type CollectionCreateArguments struct {
	Owner     *account.Account        `json:"owner"`
	Name      string                  `json:"name"`
	Request   request.CreationRequest `json:"request"`
	Signature account.Signature       `json:"signature"`
}

// CollectionCreateReply - the created collection
type CollectionCreateReply struct {
	CollectionId    uint64 `json:"collectionId"`
	SubcollectionId uint64 `json:"subcollectionId"`
}

// Create - deploy a collection, any caller with a valid verifier
// signature succeeds
func (c *Collection) Create(arguments *CollectionCreateArguments, reply *CollectionCreateReply) error {
	if err := rateLimit(c.limiter); nil != err {
		return err
	}
	c.log.Infof("Collection.Create: %d", arguments.Request.CollectionId)

	err := c.store.Create(arguments.Owner, arguments.Name, &arguments.Request, arguments.Signature)
	if nil != err {
		return err
	}
	reply.CollectionId = arguments.Request.CollectionId
	reply.SubcollectionId = 1
	return nil
}

// Collection.AddSubcollection
// ---------------------------

// CollectionAddArguments - a signed add subcollection request
type CollectionAddArguments struct {
	Request   request.AddSubCollectionRequest `json:"request"`
	Signature account.Signature               `json:"signature"`
}

// CollectionAddReply - the opened subcollection
type CollectionAddReply struct {
	CollectionId    uint64 `json:"collectionId"`
	SubcollectionId uint64 `json:"subcollectionId"`
}

// AddSubcollection - open the next subcollection
func (c *Collection) AddSubcollection(arguments *CollectionAddArguments, reply *CollectionAddReply) error {
	if err := rateLimit(c.limiter); nil != err {
		return err
	}
	c.log.Infof("Collection.AddSubcollection: %d.%d", arguments.Request.CollectionId, arguments.Request.SubcollectionId)

	err := c.store.AddSubcollection(&arguments.Request, arguments.Signature)
	if nil != err {
		return err
	}
	reply.CollectionId = arguments.Request.CollectionId
	reply.SubcollectionId = arguments.Request.SubcollectionId
	return nil
}

// Collection.Get
// --------------

// CollectionGetArguments - select one collection
type CollectionGetArguments struct {
	CollectionId uint64 `json:"collectionId"`
}

// CollectionGetReply - the collection record and its edition state
type CollectionGetReply struct {
	CollectionId      uint64              `json:"collectionId"`
	Name              string              `json:"name"`
	Admin             *account.Account    `json:"admin"`
	Owner             *account.Account    `json:"owner"`
	Registry          string              `json:"registry"`
	HighestSub        uint64              `json:"highestSubcollection"`
	NextSubcollection uint64              `json:"nextSubcollection"`
	Subcollections    []SubcollectionInfo `json:"subcollections"`
}

// SubcollectionInfo - edition state of one subcollection
type SubcollectionInfo struct {
	SubcollectionId uint64 `json:"subcollectionId"`
	MaxEdition      uint64 `json:"maxEdition"`
	Minted          uint64 `json:"minted"`
}

// Get - fetch a collection and all its edition counters
func (c *Collection) Get(arguments *CollectionGetArguments, reply *CollectionGetReply) error {
	if err := rateLimit(c.limiter); nil != err {
		return err
	}

	record, err := c.store.Get(arguments.CollectionId)
	if nil != err {
		return err
	}
	reply.CollectionId = record.CollectionId
	reply.Name = record.Name
	reply.Admin = record.Admin
	reply.Owner = record.Owner
	reply.Registry = record.Registry
	reply.HighestSub = record.HighestSub
	reply.NextSubcollection = record.HighestSub + 1

	for subcollectionId := uint64(1); subcollectionId <= record.HighestSub; subcollectionId += 1 {
		sub, err := c.store.Subcollection(record.CollectionId, subcollectionId)
		if nil != err {
			return err
		}
		reply.Subcollections = append(reply.Subcollections, SubcollectionInfo{
			SubcollectionId: subcollectionId,
			MaxEdition:      sub.MaxEdition,
			Minted:          sub.Minted,
		})
	}
	return nil
}

// Collection.UpdateRegistry
// -------------------------

// CollectionUpdateRegistryArguments - admin retargets the registry address
type CollectionUpdateRegistryArguments struct {
	Caller       *account.Account `json:"caller"`
	CollectionId uint64           `json:"collectionId"`
	Registry     string           `json:"registry"`
}

// CollectionUpdateRegistryReply - confirmation
type CollectionUpdateRegistryReply struct {
	Registry string `json:"registry"`
}

// UpdateRegistry - restricted to the collection's admin
func (c *Collection) UpdateRegistry(arguments *CollectionUpdateRegistryArguments, reply *CollectionUpdateRegistryReply) error {
	if err := rateLimit(c.limiter); nil != err {
		return err
	}

	err := c.store.UpdateRegistry(arguments.Caller, arguments.CollectionId, arguments.Registry)
	if nil != err {
		return err
	}
	reply.Registry = arguments.Registry
	return nil
}
