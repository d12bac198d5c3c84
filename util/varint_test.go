// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/countersign/registryd/util"
)

// test Varint64 round trip
func TestVarint64(t *testing.T) {

	testData := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range testData {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: encode: %d → %x  expected: %x", i, item.value, encoded, item.encoded)
		}
		decoded, count := util.FromVarint64(encoded)
		if decoded != item.value {
			t.Errorf("%d: decode: %x → %d  expected: %d", i, encoded, decoded, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: decode used %d bytes expected: %d", i, count, len(item.encoded))
		}
	}
}

// truncated buffers must decode as zero length
func TestVarint64Truncated(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated varint decoded as: %d, %d", value, count)
	}
	value, count = util.FromVarint64([]byte{})
	if 0 != value || 0 != count {
		t.Errorf("empty varint decoded as: %d, %d", value, count)
	}
}

// base58 round trip
func TestBase58(t *testing.T) {
	data := []byte{0x01, 0x21, 0xff, 0x00, 0x7a}
	s := util.ToBase58(data)
	back := util.FromBase58(s)
	if !bytes.Equal(data, back) {
		t.Errorf("base58 round trip: %x → %q → %x", data, s, back)
	}
	if 0 != len(util.FromBase58("0OIl")) {
		t.Error("malformed base58 did not decode as empty")
	}
}
