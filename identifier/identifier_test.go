// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier_test

import (
	"testing"

	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
)

// pack/unpack must round trip every field exactly
func TestRoundTrip(t *testing.T) {

	testData := []struct {
		collection    uint64
		subcollection uint64
		serial        uint64
		packed        uint64
	}{
		{0, 0, 0, 0},
		{0, 0, 1, 1},
		{0, 1, 0, 1000000000000},
		{1, 0, 0, 10000000000000000},
		{99, 1, 7, 990001000000000007},
		{99, 2, 999999999999, 990002999999999999},
		{7, 42, 123456, 70042000000123456},
		{1843, 9999, 999999999999, 18439999999999999999},
	}

	for i, item := range testData {
		id, err := identifier.Pack(item.collection, item.subcollection, item.serial)
		if nil != err {
			t.Fatalf("%d: pack error: %s", i, err)
		}
		if uint64(id) != item.packed {
			t.Errorf("%d: packed: %d  expected: %d", i, uint64(id), item.packed)
		}
		c, s, n := id.Unpack()
		if c != item.collection || s != item.subcollection || n != item.serial {
			t.Errorf("%d: unpack: (%d, %d, %d)  expected: (%d, %d, %d)",
				i, c, s, n, item.collection, item.subcollection, item.serial)
		}
		if id.Collection() != c || id.Subcollection() != s || id.Serial() != n {
			t.Errorf("%d: accessor mismatch for: %#v", i, id)
		}
	}
}

// packing must reject fields wider than their slots
func TestOverflow(t *testing.T) {

	testData := []struct {
		collection    uint64
		subcollection uint64
		serial        uint64
	}{
		{identifier.MaxCollection + 1, 0, 0},
		{0, identifier.MaxSubcollection + 1, 0},
		{0, 0, identifier.MaxSerial + 1},
		{99, 10000, 0},
		{99, 0, 1000000000000},
	}

	for i, item := range testData {
		_, err := identifier.Pack(item.collection, item.subcollection, item.serial)
		if fault.EncodingOverflow != err {
			t.Errorf("%d: pack(%d, %d, %d) error: %v  expected: %v",
				i, item.collection, item.subcollection, item.serial, err, fault.EncodingOverflow)
		}
	}
}

// every packed value must re-encode to itself
func TestReencode(t *testing.T) {
	samples := []uint64{0, 1, 990001000000000007, 18439999999999999999}
	for _, n := range samples {
		id := identifier.Identifier(n)
		c, s, serial := id.Unpack()
		back, err := identifier.Pack(c, s, serial)
		if nil != err {
			t.Fatalf("re-encode %d error: %s", n, err)
		}
		if back != id {
			t.Errorf("re-encode: %d → %d", n, uint64(back))
		}
	}
}

// text marshalling round trip
func TestText(t *testing.T) {
	id, err := identifier.Pack(99, 1, 7)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	text, err := id.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	if "990001000000000007" != string(text) {
		t.Errorf("text form: %q", text)
	}
	var back identifier.Identifier
	if err := back.UnmarshalText(text); nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if back != id {
		t.Errorf("text round trip: %d → %d", uint64(id), uint64(back))
	}
}
