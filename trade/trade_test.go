// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade_test

import (
	"testing"

	"github.com/countersign/registryd/trade"
)

func TestFromString(t *testing.T) {
	items := []struct {
		in       string
		expected trade.Type
		fails    bool
	}{
		{"", trade.Nothing, false},
		{"native", trade.Native, false},
		{"Native", trade.Native, false},
		{"token", trade.Token, false},
		{"fungible", trade.Token, false},
		{"TOKEN", trade.Token, false},
		{"gold", trade.Nothing, true},
	}

	for i, item := range items {
		actual, err := trade.FromString(item.in)
		if item.fails {
			if nil == err {
				t.Errorf("%d: %q: unexpected success", i, item.in)
			}
			continue
		}
		if nil != err {
			t.Errorf("%d: %q: error: %s", i, item.in, err)
		} else if item.expected != actual {
			t.Errorf("%d: %q: %#v  expected: %#v", i, item.in, actual, item.expected)
		}
	}
}

func TestString(t *testing.T) {
	if "native" != trade.Native.String() {
		t.Errorf("native: %q", trade.Native.String())
	}
	if "token" != trade.Token.String() {
		t.Errorf("token: %q", trade.Token.String())
	}
	if "*unknown*" != trade.Type(99).String() {
		t.Errorf("out of range: %q", trade.Type(99).String())
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	text, err := trade.Token.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	var back trade.Type
	if err := back.UnmarshalText(text); nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if trade.Token != back {
		t.Errorf("round trip: %#v", back)
	}
	if err := back.UnmarshalText([]byte("gold")); nil == err {
		t.Error("bad tag unmarshalled")
	}
}
