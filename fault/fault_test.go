// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/countersign/registryd/fault"
)

// test that errors retain their class
func TestClassification(t *testing.T) {

	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
	}{
		{fault.AlreadyMinted, true, false, false, false, false},
		{fault.ArityMismatch, false, false, true, false, false},
		{fault.CollectionNotFound, false, false, false, true, false},
		{fault.EditionCapReached, false, true, false, false, false},
		{fault.EncodingOverflow, false, false, true, false, false},
		{fault.InvalidVerifier, false, true, false, false, false},
		{fault.MalformedSignature, false, false, true, false, false},
		{fault.NotInitialised, false, false, false, false, true},
		{fault.SignatureReused, false, true, false, false, false},
		{fault.Unauthorized, false, true, false, false, false},
	}

	for i, item := range errorList {
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: exists class mismatch for: %q", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: invalid class mismatch for: %q", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.length {
			t.Errorf("%d: length class mismatch for: %q", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: not found class mismatch for: %q", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: process class mismatch for: %q", i, item.err)
		}
	}
}

// errors must compare equal to themselves only
func TestIdentity(t *testing.T) {
	if fault.InvalidVerifier == fault.SignatureReused {
		t.Fatal("distinct errors compare equal")
	}
	var err error = fault.SignatureReused
	if err != fault.SignatureReused {
		t.Fatal("error lost its identity through the error interface")
	}
}
