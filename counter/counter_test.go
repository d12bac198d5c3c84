// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/countersign/registryd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	if !c.IsZero() {
		t.Fatal("new counter is not zero")
	}
	if 1 != c.Increment() {
		t.Fatal("increment from zero is not one")
	}
	c.Increment()
	c.Increment()
	if 3 != c.Uint64() {
		t.Fatalf("value: %d  expected: 3", c.Uint64())
	}
	if 2 != c.Decrement() {
		t.Fatal("decrement from three is not two")
	}
}

func TestCounterConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if 10000 != c.Uint64() {
		t.Fatalf("value: %d  expected: 10000", c.Uint64())
	}
}
