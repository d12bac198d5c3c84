// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - canonical signable request records
//
// Every privileged operation is described by one record type.  A
// record packs to one deterministic byte sequence built only from the
// record's own fields; the verifier signs exactly these bytes, and
// the daemon rebuilds them from the submitted record before checking
// the signature.  Two records with equal fields always pack to
// identical bytes, so a signature binds the verifier to every field.
//
// New request kinds require a new record type with its own Pack; the
// set is closed and RecordName is exhaustive.
package request
