// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/countersign/registryd/messagebus"
)

func TestSendReceive(t *testing.T) {
	messagebus.Send("test", messagebus.SubcollectionAdded{
		CollectionId:    7,
		SubcollectionId: 2,
		MaxEdition:      5,
	})

	m := <-messagebus.Chan()
	if "test" != m.From {
		t.Errorf("from: %q", m.From)
	}
	event, ok := m.Item.(messagebus.SubcollectionAdded)
	if !ok {
		t.Fatalf("item type: %T", m.Item)
	}
	if 7 != event.CollectionId || 2 != event.SubcollectionId {
		t.Errorf("event: %+v", event)
	}
}

// a full queue drops rather than blocks the sender
func TestSendNeverBlocks(t *testing.T) {
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5000; i += 1 {
			messagebus.Send("flood", i)
		}
		close(done)
	}()
	<-done

	// drain whatever was queued
	n := 0
drain:
	for {
		select {
		case <-messagebus.Chan():
			n += 1
		default:
			break drain
		}
	}
	if 0 == n {
		t.Error("nothing queued")
	}
}
