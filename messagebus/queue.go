// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan-in queue for registry events
package messagebus

// internal constants
const (
	queueSize = 1000
)

// Message - one queued event
type Message struct {
	From string
	Item interface{}
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)
)

// Send - queue an event
//
// drops the event when the queue is full rather than blocking a
// registry call on a slow subscriber
func Send(from string, item interface{}) {
	select {
	case queue <- Message{From: from, Item: item}:
	default:
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}
