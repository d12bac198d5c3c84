// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/request"
)

// print a JSON result to the output handle
func printJson(handle io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		panic("fail to marshal json")
	}
	fmt.Fprintf(handle, "%s\n", b)
}

// check if a private key is valid base58
func checkKey(key string) (*account.PrivateKey, error) {
	if "" == key {
		return nil, fault.MissingParameters
	}
	return account.PrivateKeyFromBase58(key)
}

// check if an account string is valid base58
func checkAccount(address string) (*account.Account, error) {
	if "" == address {
		return nil, fault.MissingParameters
	}
	return account.AccountFromBase58(address)
}

// check a token identifier
//
// accepts either the dotted "COLLECTION.SUBCOLLECTION.SERIAL" form or
// a packed decimal value
func checkToken(token string) (identifier.Identifier, error) {
	if "" == token {
		return 0, fault.MissingParameters
	}

	if parts := strings.Split(token, "."); 3 == len(parts) {
		fields := [3]uint64{}
		for i, p := range parts {
			n, err := strconv.ParseUint(p, 10, 64)
			if nil != err {
				return 0, err
			}
			fields[i] = n
		}
		return identifier.Pack(fields[0], fields[1], fields[2])
	}

	packed, err := strconv.ParseUint(token, 10, 64)
	if nil != err {
		return 0, err
	}

	// repack to reject out of range collection ids
	return identifier.Pack(identifier.Identifier(packed).Unpack())
}

// pack and sign a request record, printing the result
func signAndPrint(m *metadata, record request.Record, key *account.PrivateKey) error {

	packed, err := record.Pack()
	if nil != err {
		return err
	}

	signature := key.Sign(packed)

	name, _ := request.RecordName(record)
	if m.verbose {
		fmt.Fprintf(m.e, "record: %s\n", name)
		fmt.Fprintf(m.e, "signer: %s\n", key.Account())
		fmt.Fprintf(m.e, "payload: %x\n", packed)
	}

	out := struct {
		Record    string            `json:"record"`
		Request   request.Record    `json:"request"`
		Signer    *account.Account  `json:"signer"`
		Payload   request.Packed    `json:"payload"`
		Signature account.Signature `json:"signature"`
	}{
		Record:    name,
		Request:   record,
		Signer:    key.Account(),
		Payload:   packed,
		Signature: signature,
	}
	printJson(m.w, out)
	return nil
}
