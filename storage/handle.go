// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// Handle - the interface components use to access a pool
type Handle interface {
	Put(key []byte, value []byte)
	Get(key []byte) []byte
	Has(key []byte) bool
	Delete(key []byte)
	Fetch() []Element
	Count() uint64
}

// PoolHandle - a prefixed view onto the database
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *leveldb.DB
}

// Element - a binary key/value pair
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Put nil database")
		return
	}
	err := p.database.Put(p.prefixKey(key), value, nil)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Delete nil database")
		return
	}
	err := p.database.Delete(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Get nil database")
		return nil
	}
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Has nil database")
		return false
	}
	value, err := p.database.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// Fetch - return all elements of the pool in key order
//
// keys are returned without their pool prefix
func (p *PoolHandle) Fetch() []Element {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Fetch nil database")
		return nil
	}

	iter := p.database.NewIterator(&ldb_util.Range{Start: []byte{p.prefix}, Limit: p.limit}, nil)
	defer iter.Release()

	results := make([]Element, 0, 16)
	for iter.Next() {
		key := make([]byte, len(iter.Key())-1)
		copy(key, iter.Key()[1:])
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		results = append(results, Element{Key: key, Value: value})
	}
	logger.PanicIfError("pool.Fetch", iter.Error())
	return results
}

// Count - number of elements in the pool
func (p *PoolHandle) Count() uint64 {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Count nil database")
		return 0
	}

	iter := p.database.NewIterator(&ldb_util.Range{Start: []byte{p.prefix}, Limit: p.limit}, nil)
	defer iter.Release()

	n := uint64(0)
	for iter.Next() {
		n += 1
	}
	logger.PanicIfError("pool.Count", iter.Error())
	return n
}
