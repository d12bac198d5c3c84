// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"encoding/binary"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/util"
)

// Collection - the stored collection record
//
// CollectionId and Admin are immutable once created; Registry is the
// mutable pointer to the authorisation registry in use
type Collection struct {
	CollectionId uint64           `json:"collectionId"`
	Admin        *account.Account `json:"admin"`
	Owner        *account.Account `json:"owner"`
	Registry     string           `json:"registry"`
	Name         string           `json:"name"`
	HighestSub   uint64           `json:"highestSub"`
}

// Subcollection - one edition counter
type Subcollection struct {
	MaxEdition uint64 `json:"maxEdition"`
	Minted     uint64 `json:"minted"`
}

// collectionKey - fixed width key for the collections pool
func collectionKey(collectionId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, collectionId)
	return key
}

// subcollectionKey - fixed width key for the subcollections pool
func subcollectionKey(collectionId uint64, subcollectionId uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], collectionId)
	binary.BigEndian.PutUint64(key[8:], subcollectionId)
	return key
}

// pack a collection record for storage
func (c *Collection) pack() []byte {
	buffer := util.ToVarint64(c.CollectionId)
	buffer = appendBytes(buffer, c.Admin.Bytes())
	buffer = appendBytes(buffer, c.Owner.Bytes())
	buffer = appendBytes(buffer, []byte(c.Registry))
	buffer = appendBytes(buffer, []byte(c.Name))
	buffer = append(buffer, util.ToVarint64(c.HighestSub)...)
	return buffer
}

// unpack a stored collection record
func unpackCollection(buffer []byte) (*Collection, error) {
	collectionId, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.DataInconsistency
	}
	buffer = buffer[n:]

	adminBytes, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}
	admin, err := account.AccountFromBytes(adminBytes)
	if nil != err {
		return nil, err
	}

	ownerBytes, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}
	owner, err := account.AccountFromBytes(ownerBytes)
	if nil != err {
		return nil, err
	}

	registry, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}

	name, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}

	highestSub, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.DataInconsistency
	}

	return &Collection{
		CollectionId: collectionId,
		Admin:        admin,
		Owner:        owner,
		Registry:     string(registry),
		Name:         string(name),
		HighestSub:   highestSub,
	}, nil
}

// pack a subcollection counter for storage
func (s *Subcollection) pack() []byte {
	buffer := util.ToVarint64(s.MaxEdition)
	return append(buffer, util.ToVarint64(s.Minted)...)
}

// unpack a stored subcollection counter
func unpackSubcollection(buffer []byte) (*Subcollection, error) {
	maxEdition, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.DataInconsistency
	}
	minted, m := util.FromVarint64(buffer[n:])
	if 0 == m {
		return nil, fault.DataInconsistency
	}
	return &Subcollection{MaxEdition: maxEdition, Minted: minted}, nil
}

// append a length prefixed field
func appendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

// split off one length prefixed field
func nextBytes(buffer []byte) ([]byte, []byte, error) {
	length, n := util.FromVarint64(buffer)
	if 0 == n || uint64(len(buffer)-n) < length {
		return nil, nil, fault.DataInconsistency
	}
	return buffer[n : n+int(length)], buffer[n+int(length):], nil
}
