// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// one leveldb database split into pools, each pool distinguished by
// a one byte prefix on every key
//
//	C → collection records
//	S → subcollection edition counters
//	I → minted identifier assignments
//	G → consumed signatures
//	V → registered verifiers
//	R → role holders
//	A → registered asset contracts and payment tokens
//	F → fungible balances and allowances
//	Z → reserved for testing
package storage
