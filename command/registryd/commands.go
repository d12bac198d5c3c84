// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/countersign/registryd/account"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files; these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := rpcCertificateFilename
		privateKeyFilename := rpcPrivateKeyFilename
		if len(arguments) >= 1 && "" != arguments[0] {
			certificateFilename = arguments[0] + ".crt"
			privateKeyFilename = arguments[0] + ".key"
		}

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-account", "account":
		test := len(arguments) >= 1 && "test" == arguments[0]
		key, err := account.NewKeypair(test, nil)
		if nil != err {
			fmt.Printf("generate account error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("private key: %s\n", key)
		fmt.Printf("account:     %s\n", key.Account())

	case "version", "v":
		fmt.Println(version)

	case "help", "h", "?":
		fmt.Printf("usage: %s [options] <command>\n", program)
		fmt.Println("supported commands:")
		fmt.Println()
		fmt.Println("  help                                   (h)       - display this message")
		fmt.Println("  version                                (v)       - display version")
		fmt.Println()
		fmt.Println("  gen-rpc-cert [NAME [IP-OR-HOST…]]      (rpc)     - create a self-signed RPC certificate")
		fmt.Println("  gen-account  [test]                    (account) - create a signing keypair")
		fmt.Println()
		fmt.Println("  --config-file=FILE                     (-c FILE) - run the daemon")
		fmt.Println()

	default:
		// not a setup command: fall through to the daemon
		return false
	}

	// indicate processed
	return true
}
