// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"os"
	"sync"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/collection"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/market"
	"github.com/countersign/registryd/rolegate"
	"github.com/countersign/registryd/util"
)

// Configuration - configuration file data for the RPC setup
type Configuration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Registries - the registry components the services operate on
type Registries struct {
	Engine *authorize.Engine
	Gate   *rolegate.Gate
	Store  *collection.Store
	Market *market.Market
	Admin  *account.Account
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener *listener.MultiListener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listeners
func Initialise(configuration *Configuration, version string, registries *Registries) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid maximum connection limit: %d", configuration.MaximumConnections)
		return fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Error("no listen addresses")
		return fault.MissingParameters
	}

	tlsConfiguration, fingerprint, err := loadCertificate(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("certificate fingerprint: %x", fingerprint)

	limiter := listener.NewLimiter(configuration.MaximumConnections)
	ml, err := listener.NewMultiListener("rpc", configuration.Listen, tlsConfiguration, limiter, Callback)
	if nil != err {
		log.Errorf("invalid listen addresses: %v", configuration.Listen)
		return err
	}
	globalData.listener = ml

	argument := &serverArgument{
		Log:    logger.New("rpc-server"),
		Server: createServer(log, version, registries),
	}
	ml.Start(argument)

	// all data initialised
	globalData.initialised = true
	return nil
}

// Finalise - stop the RPC listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.listener.Stop()
	globalData.listener = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// read the certificate keypair and set up TLS
func loadCertificate(certificateFileName string, keyFileName string) (*tls.Config, util.FingerprintBytes, error) {

	zero := util.FingerprintBytes{}

	if _, err := os.Stat(certificateFileName); nil != err {
		return nil, zero, err
	}
	if _, err := os.Stat(keyFileName); nil != err {
		return nil, zero, err
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		return nil, zero, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}
	return tlsConfiguration, util.Fingerprint(keyPair.Certificate[0]), nil
}
