// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authorize_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/replay"
	"github.com/countersign/registryd/request"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/verifier"
)

const testingDirName = "testing"

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) *authorize.Engine {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(testingDirName + "/test.leveldb")
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	registry, err := verifier.New(storage.Pool.Verifiers, nil)
	if nil != err {
		t.Fatalf("registry error: %s", err)
	}
	return authorize.New(registry, replay.New(storage.Pool.Signatures))
}

func teardown() {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func makeKeypair(t *testing.T) (*account.PrivateKey, *account.Account) {
	key, err := account.NewKeypair(true, nil)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}
	return key, key.Account()
}

// a signed mint request over fixed fields
func makeRequest(t *testing.T, key *account.PrivateKey) (*request.MintRequest, account.Signature) {
	_, owner := makeKeypair(t)
	tokenId, err := identifier.Pack(7, 1, 42)
	if nil != err {
		t.Fatalf("identifier error: %s", err)
	}
	req := &request.MintRequest{
		To:      owner,
		TokenId: tokenId,
		Uri:     "ipfs://QmTest",
	}
	payload, err := req.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return req, key.Sign(payload)
}

func TestAuthorizeAndConsume(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, verifierAccount := makeKeypair(t)
	engine.Verifiers().Add(verifierAccount)

	req, sig := makeRequest(t, key)

	applied := false
	signer, err := engine.Authorize(req, sig, func(signer *account.Account) error {
		applied = true
		return nil
	})
	assert.NoError(t, err, "authorize failed")
	assert.True(t, applied, "apply never ran")
	assert.True(t, signer.IsSame(verifierAccount), "wrong signer recovered")
	assert.True(t, engine.Ledger().Seen(sig), "authorised signature not consumed")

	// the same signature is spent
	_, err = engine.Authorize(req, sig, nil)
	assert.Equal(t, fault.SignatureReused, err, "replay admitted")
}

func TestTamperedFieldRejected(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, verifierAccount := makeKeypair(t)
	engine.Verifiers().Add(verifierAccount)

	req, sig := makeRequest(t, key)

	// a valid signature over different fields is no authority at all
	req.Uri = "ipfs://QmSomethingElse"
	_, err := engine.Authorize(req, sig, nil)
	assert.Equal(t, fault.InvalidVerifier, err, "tampered record admitted")
	assert.False(t, engine.Ledger().Seen(sig), "rejected signature consumed")
}

func TestUnregisteredSignerRejected(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, _ := makeKeypair(t)
	req, sig := makeRequest(t, key)

	_, err := engine.Authorize(req, sig, nil)
	assert.Equal(t, fault.InvalidVerifier, err, "unregistered signer admitted")
}

func TestRemovedVerifierRejected(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, verifierAccount := makeKeypair(t)
	engine.Verifiers().Add(verifierAccount)
	req, sig := makeRequest(t, key)

	// removal rejects even signatures that were never submitted
	engine.Verifiers().Remove(verifierAccount)
	_, err := engine.Authorize(req, sig, nil)
	assert.Equal(t, fault.InvalidVerifier, err, "removed verifier admitted")
}

func TestMalformedSignatureRejected(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, verifierAccount := makeKeypair(t)
	engine.Verifiers().Add(verifierAccount)
	req, sig := makeRequest(t, key)

	_, err := engine.Authorize(req, sig[:account.SignatureSize-1], nil)
	assert.Equal(t, fault.MalformedSignature, err, "short signature admitted")

	_, err = engine.Authorize(req, append(sig, 0x00), nil)
	assert.Equal(t, fault.MalformedSignature, err, "long signature admitted")
}

// an apply error must leave the signature unconsumed so the caller can
// retry the same authorisation after fixing its state
func TestApplyFailureLeavesSignatureFresh(t *testing.T) {
	engine := setup(t)
	defer teardown()

	key, verifierAccount := makeKeypair(t)
	engine.Verifiers().Add(verifierAccount)
	req, sig := makeRequest(t, key)

	_, err := engine.Authorize(req, sig, func(signer *account.Account) error {
		return fault.EditionCapReached
	})
	assert.Equal(t, fault.EditionCapReached, err, "apply error not propagated")
	assert.False(t, engine.Ledger().Seen(sig), "failed request consumed its signature")

	// the retry succeeds with the identical signature
	_, err = engine.Authorize(req, sig, nil)
	assert.NoError(t, err, "retry after apply failure rejected")
}
