// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - verifier authorised peer to peer sales
//
// A purchase is admitted only through the market role holder and only
// with a verifier signature over the exact sale parameters.  After
// authorisation the settlement is plain arithmetic: a basis point fee
// is split off the total and the identifier moves to the buyer.
//
// The asset and fungible token ledgers are collaborators behind small
// interfaces; the in-process implementations let the daemon run stand
// alone and are swappable for external ledgers.
package market
