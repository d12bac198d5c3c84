// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/countersign/registryd/background"
)

type ticker struct {
	count uint64
}

func (tk *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			atomic.AddUint64(&tk.count, 1)
		}
	}
}

func TestStartStop(t *testing.T) {
	one := new(ticker)
	two := new(ticker)

	processes := background.Processes{one, two}
	b := background.Start(processes, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	b.Stop()

	if 0 == atomic.LoadUint64(&one.count) || 0 == atomic.LoadUint64(&two.count) {
		t.Fatal("a process never ran")
	}

	// no further work after stop
	n := atomic.LoadUint64(&one.count)
	time.Sleep(25 * time.Millisecond)
	if n != atomic.LoadUint64(&one.count) {
		t.Fatal("process still running after stop")
	}
}

func TestStopNil(t *testing.T) {
	var b *background.T
	b.Stop() // must not panic
}
