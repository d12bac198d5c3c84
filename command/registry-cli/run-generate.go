// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/countersign/registryd/account"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewKeypair(c.Bool("test"), nil)
	if nil != err {
		return err
	}

	out := struct {
		PrivateKey *account.PrivateKey `json:"private_key"`
		Account    *account.Account    `json:"account"`
		Testnet    bool                `json:"testnet"`
	}{
		PrivateKey: key,
		Account:    key.Account(),
		Testnet:    key.IsTesting(),
	}
	printJson(m.w, out)
	return nil
}
