// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "registry-cli"
	app.Usage = "offline signing tool for registry requests"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new signing key pair",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "test, t",
					Usage: " generate a test network key pair",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "mint",
			Usage:     "sign a single mint request",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*verifier private key, `KEY`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient account, `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "token, i",
					Value: "",
					Usage: "*token identifier, `COLLECTION.SUBCOLLECTION.SERIAL` or packed decimal",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: "*metadata pointer, `URI`",
				},
			},
			Action: runMint,
		},
		{
			Name:      "batch",
			Usage:     "sign a batch mint request",
			ArgsUsage: "\n   (* = required, repeat token/uri pairs in order)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*verifier private key, `KEY`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient account, `ACCOUNT`",
				},
				cli.StringSliceFlag{
					Name:  "token, i",
					Usage: "*token identifier, `COLLECTION.SUBCOLLECTION.SERIAL` (repeatable)",
				},
				cli.StringSliceFlag{
					Name:  "uri, u",
					Usage: "*metadata pointer, `URI` (repeatable)",
				},
			},
			Action: runBatch,
		},
		{
			Name:      "creation",
			Usage:     "sign a collection creation request",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*verifier private key, `KEY`",
				},
				cli.Uint64Flag{
					Name:  "collection, c",
					Usage: "*collection id, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "max-edition, m",
					Usage: "*edition cap for the first subcollection, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "request-id, r",
					Usage: "*request id issued by the verifier service, `NUMBER`",
				},
				cli.StringFlag{
					Name:  "admin, a",
					Value: "",
					Usage: "*collection administrator account, `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "registry, g",
					Value: "",
					Usage: "*authorisation registry address, `ADDRESS`",
				},
			},
			Action: runCreation,
		},
		{
			Name:      "subcollection",
			Usage:     "sign a request to open the next subcollection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*verifier private key, `KEY`",
				},
				cli.Uint64Flag{
					Name:  "collection, c",
					Usage: "*collection id, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "subcollection, s",
					Usage: "*subcollection id, must be highest + 1, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "max-edition, m",
					Usage: "*edition cap, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "request-id, r",
					Usage: "*request id issued by the verifier service, `NUMBER`",
				},
			},
			Action: runSubcollection,
		},
		{
			Name:      "purchase",
			Usage:     "sign a purchase settlement request",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*verifier private key, `KEY`",
				},
				cli.StringFlag{
					Name:  "seller, s",
					Value: "",
					Usage: "*seller account, `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "receiver, e",
					Value: "",
					Usage: "*payment receiver account, `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "contract, o",
					Value: "",
					Usage: "*asset contract address, `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "token, i",
					Value: "",
					Usage: "*token identifier, `COLLECTION.SUBCOLLECTION.SERIAL` or packed decimal",
				},
				cli.StringFlag{
					Name:  "payment-token, y",
					Value: "",
					Usage: " fungible payment token address, empty for native currency, `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "fee-rate, f",
					Usage: "*marketplace fee in basis points, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*price per unit in smallest currency unit, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Usage: "*number of units sold, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "sell-id, l",
					Usage: "*sale identifier from the verifier service, `NUMBER`",
				},
			},
			Action: runPurchase,
		},
		{
			Name:      "token",
			Usage:     "pack or unpack a token identifier",
			ArgsUsage: "[PACKED-DECIMAL]\n   (either supply the packed value or all three parts)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "collection, c",
					Usage: " collection id, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "subcollection, s",
					Usage: " subcollection id, `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "serial, n",
					Usage: " serial number, `NUMBER`",
				},
			},
			Action: runToken,
		},
		{
			Name:  "version",
			Usage: "display version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.Bool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
