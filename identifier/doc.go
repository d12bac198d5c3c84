// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identifier - packed asset identifiers
//
// An identifier encodes three decimal fields in one unsigned integer:
//
//	collectionId · 10¹⁶ + subcollectionId · 10¹² + serial
//
// subcollectionId occupies four decimal digits and serial twelve, so
// the identifier prints as the collection id followed by a fixed
// sixteen digit tail.  Unpacking always recovers the exact fields
// that were packed; packing rejects any field too wide for its slot.
package identifier
