// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/request"
)

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	to, err := checkAccount(c.String("to"))
	if nil != err {
		return err
	}

	tokenId, err := checkToken(c.String("token"))
	if nil != err {
		return err
	}

	uri := c.String("uri")
	if "" == uri {
		return fault.MissingParameters
	}

	record := &request.MintRequest{
		To:      to,
		TokenId: tokenId,
		Uri:     uri,
	}
	return signAndPrint(m, record, key)
}

func runBatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	to, err := checkAccount(c.String("to"))
	if nil != err {
		return err
	}

	tokens := c.StringSlice("token")
	uris := c.StringSlice("uri")
	if 0 == len(tokens) {
		return fault.MissingParameters
	}
	if len(tokens) != len(uris) {
		return fault.ArityMismatch
	}

	tokenIds := make([]identifier.Identifier, len(tokens))
	for i, token := range tokens {
		tokenIds[i], err = checkToken(token)
		if nil != err {
			return err
		}
	}

	record := &request.BatchMintRequest{
		To:       to,
		TokenIds: tokenIds,
		Uris:     uris,
	}
	return signAndPrint(m, record, key)
}

func runCreation(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	admin, err := checkAccount(c.String("admin"))
	if nil != err {
		return err
	}

	registry := c.String("registry")
	if "" == registry {
		return fault.MissingParameters
	}

	record := &request.CreationRequest{
		CollectionId: c.Uint64("collection"),
		MaxEdition:   c.Uint64("max-edition"),
		RequestId:    c.Uint64("request-id"),
		Admin:        admin,
		Registry:     registry,
	}
	return signAndPrint(m, record, key)
}

func runSubcollection(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	record := &request.AddSubCollectionRequest{
		CollectionId:    c.Uint64("collection"),
		SubcollectionId: c.Uint64("subcollection"),
		MaxEdition:      c.Uint64("max-edition"),
		RequestId:       c.Uint64("request-id"),
	}
	return signAndPrint(m, record, key)
}

func runPurchase(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	seller, err := checkAccount(c.String("seller"))
	if nil != err {
		return err
	}

	receiver, err := checkAccount(c.String("receiver"))
	if nil != err {
		return err
	}

	contract := c.String("contract")
	if "" == contract {
		return fault.MissingParameters
	}

	tokenId, err := checkToken(c.String("token"))
	if nil != err {
		return err
	}

	record := &request.PurchaseRequest{
		Seller:          seller,
		PaymentReceiver: receiver,
		AssetContract:   contract,
		TokenId:         tokenId,
		PaymentToken:    c.String("payment-token"),
		FeeRate:         c.Uint64("fee-rate"),
		Price:           c.Uint64("price"),
		Amount:          c.Uint64("amount"),
		SellId:          c.Uint64("sell-id"),
	}
	return signAndPrint(m, record, key)
}
