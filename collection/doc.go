// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collection - collections, subcollections and edition accounting
//
// A collection is created once by a signed creation request and never
// destroyed.  Subcollection 1 exists from creation; further
// subcollections are opened by signed requests with strictly
// sequential ids.  Each subcollection counts minted editions against
// an immutable cap: minted only grows, and only by the number of
// identifiers accepted in one call.  A batch is all-or-nothing.
//
// A mint whose identifier names a subcollection this collection never
// opened fails with the same EditionCapReached as an exhausted
// subcollection: a missing counter behaves as a cap of zero.
package collection
