// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/countersign/registryd/identifier"
)

func runToken(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var id identifier.Identifier
	var err error

	if 1 == c.NArg() {
		id, err = checkToken(c.Args().Get(0))
	} else {
		id, err = identifier.Pack(c.Uint64("collection"), c.Uint64("subcollection"), c.Uint64("serial"))
	}
	if nil != err {
		return err
	}

	collection, subcollection, serial := id.Unpack()

	out := struct {
		Packed        identifier.Identifier `json:"packed"`
		Collection    uint64                `json:"collection"`
		Subcollection uint64                `json:"subcollection"`
		Serial        uint64                `json:"serial"`
	}{
		Packed:        id,
		Collection:    collection,
		Subcollection: subcollection,
		Serial:        serial,
	}
	printJson(m.w, out)
	return nil
}
