// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/collection"
	"github.com/countersign/registryd/market"
	"github.com/countersign/registryd/mode"
	"github.com/countersign/registryd/publish"
	"github.com/countersign/registryd/replay"
	"github.com/countersign/registryd/rolegate"
	"github.com/countersign/registryd/rpc"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/verifier"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// the registry accounts
	admin, err := account.AccountFromBase58(theConfiguration.Admin)
	if nil != err {
		log.Criticalf("admin account error: %s", err)
		exitwithstatus.Message("admin account: %q error: %s", theConfiguration.Admin, err)
	}
	feeAccount, err := account.AccountFromBase58(theConfiguration.FeeAccount)
	if nil != err {
		log.Criticalf("fee account error: %s", err)
		exitwithstatus.Message("fee account: %q error: %s", theConfiguration.FeeAccount, err)
	}
	var legacyVerifier *account.Account
	if "" != theConfiguration.LegacyVerifier {
		legacyVerifier, err = account.AccountFromBase58(theConfiguration.LegacyVerifier)
		if nil != err {
			log.Criticalf("legacy verifier error: %s", err)
			exitwithstatus.Message("legacy verifier: %q error: %s", theConfiguration.LegacyVerifier, err)
		}
	}

	// accounts must match the chain
	for _, item := range []struct {
		name    string
		account *account.Account
	}{
		{"admin", admin},
		{"fee account", feeAccount},
		{"legacy verifier", legacyVerifier},
	} {
		if nil != item.account && item.account.IsTesting() != mode.IsTesting() {
			log.Criticalf("%s account: %s is not valid for chain: %s", item.name, item.account, theConfiguration.Chain)
			exitwithstatus.Message("%s account: %s is not valid for chain: %s", item.name, item.account, theConfiguration.Chain)
		}
	}

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the authorisation stack
	log.Info("initialise verifier registry")
	verifiers, err := verifier.New(storage.Pool.Verifiers, legacyVerifier)
	if nil != err {
		log.Criticalf("verifier initialise error: %s", err)
		exitwithstatus.Message("verifier initialise error: %s", err)
	}

	log.Info("initialise role gate")
	gate, err := rolegate.New(storage.Pool.Roles)
	if nil != err {
		log.Criticalf("role gate initialise error: %s", err)
		exitwithstatus.Message("role gate initialise error: %s", err)
	}

	engine := authorize.New(verifiers, replay.New(storage.Pool.Signatures))

	// the registries
	log.Info("initialise collection store")
	store := collection.NewStore(engine, gate,
		storage.Pool.Collections, storage.Pool.Subcollections, storage.Pool.Identifiers)

	log.Info("initialise market")
	funds := market.NewFunds(storage.Pool.Balances)
	theMarket := market.New(engine, gate, admin, feeAccount,
		storage.Pool.AssetContracts, store, funds)

	// start up the event publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc listeners
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, &rpc.Registries{
		Engine: engine,
		Gate:   gate,
		Store:  store,
		Market: theMarket,
		Admin:  admin,
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// all services up
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
