// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"strconv"

	"github.com/countersign/registryd/fault"
)

// Identifier - a packed asset identifier
type Identifier uint64

// decimal field widths
const (
	subcollectionModulus = 10000             // 4 digits
	serialModulus        = 1000000000000     // 12 digits
	collectionShift      = 10000000000000000 // 16 digits

	// MaxSubcollection - largest encodable subcollection id
	MaxSubcollection = subcollectionModulus - 1

	// MaxSerial - largest encodable serial number
	MaxSerial = serialModulus - 1

	// MaxCollection - largest collection id that cannot overflow
	// uint64 even with maximum subcollection and serial
	MaxCollection = 1843
)

// Pack - compose an identifier from its three fields
//
// fails with EncodingOverflow if any field exceeds its digit width
func Pack(collection uint64, subcollection uint64, serial uint64) (Identifier, error) {
	if collection > MaxCollection {
		return 0, fault.EncodingOverflow
	}
	if subcollection > MaxSubcollection {
		return 0, fault.EncodingOverflow
	}
	if serial > MaxSerial {
		return 0, fault.EncodingOverflow
	}
	return Identifier(collection*collectionShift + subcollection*serialModulus + serial), nil
}

// Unpack - decompose an identifier into its three fields
//
// pure arithmetic, defined for every value
func (id Identifier) Unpack() (collection uint64, subcollection uint64, serial uint64) {
	n := uint64(id)
	collection = n / collectionShift
	subcollection = n / serialModulus % subcollectionModulus
	serial = n % serialModulus
	return
}

// Collection - the collection id field
func (id Identifier) Collection() uint64 {
	return uint64(id) / collectionShift
}

// Subcollection - the subcollection id field
func (id Identifier) Subcollection() uint64 {
	return uint64(id) / serialModulus % subcollectionModulus
}

// Serial - the serial number field
func (id Identifier) Serial() uint64 {
	return uint64(id) % serialModulus
}

// Uint64 - the raw packed value
func (id Identifier) Uint64() uint64 {
	return uint64(id)
}

// String - decimal form for use by the fmt package (for %s)
func (id Identifier) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// GoString - fields and packed value, for debugging (for %#v)
func (id Identifier) GoString() string {
	c, s, n := id.Unpack()
	return "<identifier:" + strconv.FormatUint(c, 10) +
		"/" + strconv.FormatUint(s, 10) +
		"/" + strconv.FormatUint(n, 10) + ">"
}

// MarshalText - convert an identifier to its decimal text form
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert decimal text into an identifier
func (id *Identifier) UnmarshalText(s []byte) error {
	n, err := strconv.ParseUint(string(s), 10, 64)
	if nil != err {
		return err
	}
	*id = Identifier(n)
	return nil
}
