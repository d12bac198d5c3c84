// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - encode binary data as a Base58 string
func ToBase58(data []byte) string {
	return base58.Encode(data)
}

// FromBase58 - decode a Base58 string to binary
//
// returns an empty slice on malformed input
func FromBase58(s string) []byte {
	data, err := base58.Decode(s)
	if nil != err {
		return []byte{}
	}
	return data
}
