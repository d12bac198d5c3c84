// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/verifier"
)

const testingDirName = "testing"

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) {
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
}

func teardown() {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func makeAccount(t *testing.T) *account.Account {
	key, err := account.NewKeypair(true, nil)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}
	return key.Account()
}

func TestAddRemove(t *testing.T) {
	setup(t)
	defer teardown()

	r, err := verifier.New(storage.Pool.Verifiers, nil)
	if nil != err {
		t.Fatalf("registry error: %s", err)
	}

	one := makeAccount(t)
	two := makeAccount(t)

	if r.IsAuthorized(one) {
		t.Fatal("empty registry authorises")
	}

	r.Add(one)
	r.Add(two)
	if !r.IsAuthorized(one) || !r.IsAuthorized(two) {
		t.Fatal("added verifier not authorised")
	}
	if 2 != len(r.Candidates()) {
		t.Fatalf("candidates: %d  expected: 2", len(r.Candidates()))
	}

	// removal takes effect immediately
	r.Remove(one)
	if r.IsAuthorized(one) {
		t.Fatal("removed verifier still authorised")
	}
	if !r.IsAuthorized(two) {
		t.Fatal("unrelated verifier lost")
	}
}

func TestLegacySlot(t *testing.T) {
	setup(t)
	defer teardown()

	legacy := makeAccount(t)

	r, err := verifier.New(storage.Pool.Verifiers, legacy)
	if nil != err {
		t.Fatalf("registry error: %s", err)
	}
	if !r.IsAuthorized(legacy) {
		t.Fatal("legacy verifier not authorised")
	}

	// after migration the slot reads as absent
	r.MigrateLegacy()
	if r.IsAuthorized(legacy) {
		t.Fatal("migrated legacy verifier still authorised")
	}
	if 0 != len(r.Candidates()) {
		t.Fatal("migrated legacy verifier still a candidate")
	}
}

// membership and the cleared legacy slot must survive a restart
func TestPersistence(t *testing.T) {
	setup(t)
	defer teardown()

	legacy := makeAccount(t)
	member := makeAccount(t)

	r, err := verifier.New(storage.Pool.Verifiers, legacy)
	if nil != err {
		t.Fatalf("registry error: %s", err)
	}
	r.Add(member)
	r.MigrateLegacy()

	// a fresh registry over the same pool, legacy configured again
	r, err = verifier.New(storage.Pool.Verifiers, legacy)
	if nil != err {
		t.Fatalf("reload error: %s", err)
	}
	if !r.IsAuthorized(member) {
		t.Fatal("persisted member lost")
	}
	if r.IsAuthorized(legacy) {
		t.Fatal("cleared legacy slot resurrected by restart")
	}
}
