// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/countersign/registryd/configuration"
	"github.com/countersign/registryd/fault"
)

type testConfiguration struct {
	Chain   string   `gluamapper:"chain"`
	Nodes   uint64   `gluamapper:"nodes"`
	Listen  []string `gluamapper:"listen"`
	Nested  nested   `gluamapper:"nested"`
	Missing string   `gluamapper:"missing"`
}

type nested struct {
	Name string `gluamapper:"name"`
}

const luaFile = `
local M = {}
M.chain = "testing"
M.nodes = 5
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.nested = { name = arg[0] }
return M
`

func TestParseConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "registryd.conf")
	if err := os.WriteFile(fileName, []byte(luaFile), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}

	var config testConfiguration
	if err := configuration.ParseConfigurationFile(fileName, &config); nil != err {
		t.Fatalf("parse error: %s", err)
	}

	if "testing" != config.Chain {
		t.Errorf("chain: %q", config.Chain)
	}
	if 5 != config.Nodes {
		t.Errorf("nodes: %d", config.Nodes)
	}
	if 2 != len(config.Listen) || "127.0.0.1:2130" != config.Listen[0] {
		t.Errorf("listen: %v", config.Listen)
	}

	// lua sees the config file name as arg[0]
	if fileName != config.Nested.Name {
		t.Errorf("arg[0]: %q  expected: %q", config.Nested.Name, fileName)
	}
	if "" != config.Missing {
		t.Errorf("missing field set: %q", config.Missing)
	}
}

func TestParseRejectsNonPointer(t *testing.T) {
	var config testConfiguration
	if err := configuration.ParseConfigurationFile("no-such-file", config); fault.InvalidStructPointer != err {
		t.Errorf("error: %v  expected: %v", err, fault.InvalidStructPointer)
	}
}
