// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - event broadcasting
//
// Registry events (creations, mints, settlements) are read from the
// message bus and published on a zmq PUB socket as: topic frame then a
// JSON payload frame.  Subscribers filter by topic; a slow subscriber
// only ever loses events, it cannot stall the registry.
package publish

import (
	"encoding/json"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/background"
	"github.com/countersign/registryd/counter"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/messagebus"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// globals for background process
type publishData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	brdc broadcaster // event publishing loop

	published counter.Counter // events sent so far

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - set up the publisher
func Initialise(configuration *Configuration) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if err := globalData.brdc.initialise(configuration.Broadcast); nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Count - events published so far
func Count() uint64 {
	return globalData.published.Uint64()
}

// events queued on the socket before zmq starts dropping
const publishHighWaterMark = 1000

// the broadcasting loop
type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all broadcast addresses
func (brdc *broadcaster) initialise(addresses []string) error {
	brdc.log = logger.New("broadcaster")

	if 0 == len(addresses) {
		brdc.log.Info("no broadcast addresses: publishing disabled")
		return nil
	}

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}
	socket.SetLinger(0)
	socket.SetSndhwm(publishHighWaterMark)

	for _, address := range addresses {
		err = socket.Bind(address)
		if nil != err {
			brdc.log.Errorf("bind: %q  error: %s", address, err)
			socket.Close()
			return err
		}
		brdc.log.Infof("publishing on: %q", address)
	}

	brdc.socket = socket
	return nil
}

// wire form of one event
type envelope struct {
	From  string      `json:"from"`
	Event interface{} `json:"event"`
}

// Run - publish events until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case message := <-messagebus.Chan():
			if nil == brdc.socket {
				continue loop // draining keeps the bus from filling
			}
			topic, ok := messagebus.Topic(message.Item)
			if !ok {
				log.Warnf("discard unknown event: %v", message.Item)
				continue loop
			}
			payload, err := json.Marshal(envelope{
				From:  message.From,
				Event: message.Item,
			})
			if nil != err {
				log.Errorf("marshal %q error: %s", topic, err)
				continue loop
			}

			_, err = brdc.socket.SendMessage(topic, payload)
			if nil != err {
				log.Errorf("send %q error: %s", topic, err)
				continue loop
			}
			globalData.published.Increment()
			log.Debugf("published %q: %s", topic, payload)
		}
	}

	if nil != brdc.socket {
		brdc.socket.Close()
		brdc.socket = nil
	}
	log.Info("stopped")
}
