// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/mode"
	"github.com/countersign/registryd/publish"
	"github.com/countersign/registryd/rolegate"
)

// Node - daemon status and administration
type Node struct {
	log        *logger.L
	limiter    *rate.Limiter
	start      time.Time
	version    string
	registries *Registries
}

// Node.Info
// ---------

// InfoArguments - none needed
type InfoArguments struct{}

// InfoReply - some information about this node
type InfoReply struct {
	Chain       string           `json:"chain"`
	Mode        string           `json:"mode"`
	Collections uint64           `json:"collections"`
	Identifiers uint64           `json:"identifiers"`
	Signatures  uint64           `json:"signatures"`
	Published   uint64           `json:"published"`
	Connections uint64           `json:"connections"`
	Minter      *account.Account `json:"minter"`
	Market      *account.Account `json:"market"`
	Version     string           `json:"version"`
	Uptime      string           `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := rateLimit(node.limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Collections = node.registries.Store.Count()
	reply.Identifiers = node.registries.Store.MintedCount()
	reply.Signatures = node.registries.Engine.Ledger().Count()
	reply.Published = publish.Count()
	reply.Connections = connectionCount.Uint64()
	reply.Minter = node.registries.Gate.Holder(rolegate.Minter)
	reply.Market = node.registries.Gate.Holder(rolegate.Market)
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()

	return nil
}

// Node.UpdateVerifier
// -------------------

// UpdateVerifierArguments - admin adds or removes a verifier
type UpdateVerifierArguments struct {
	Caller   *account.Account `json:"caller"`
	Verifier *account.Account `json:"verifier"`
	Remove   bool             `json:"remove"`
}

// UpdateVerifierReply - confirmation
type UpdateVerifierReply struct {
	Verifier *account.Account `json:"verifier"`
	Removed  bool             `json:"removed"`
}

// UpdateVerifier - change the verifier set, immediate effect
func (node *Node) UpdateVerifier(arguments *UpdateVerifierArguments, reply *UpdateVerifierReply) error {
	if err := rateLimit(node.limiter); nil != err {
		return err
	}
	if err := node.checkAdmin(arguments.Caller); nil != err {
		return err
	}
	if nil == arguments.Verifier {
		return fault.MissingParameters
	}

	if arguments.Remove {
		node.registries.Engine.Verifiers().Remove(arguments.Verifier)
	} else {
		node.registries.Engine.Verifiers().Add(arguments.Verifier)
	}
	reply.Verifier = arguments.Verifier
	reply.Removed = arguments.Remove
	return nil
}

// Node.MigrateLegacy
// ------------------

// MigrateLegacyArguments - admin clears the legacy verifier slot
type MigrateLegacyArguments struct {
	Caller *account.Account `json:"caller"`
}

// MigrateLegacyReply - confirmation
type MigrateLegacyReply struct {
	Migrated bool `json:"migrated"`
}

// MigrateLegacy - clear the legacy single verifier slot forever
func (node *Node) MigrateLegacy(arguments *MigrateLegacyArguments, reply *MigrateLegacyReply) error {
	if err := rateLimit(node.limiter); nil != err {
		return err
	}
	if err := node.checkAdmin(arguments.Caller); nil != err {
		return err
	}

	node.registries.Engine.Verifiers().MigrateLegacy()
	reply.Migrated = true
	return nil
}

// Node.UpdateRole
// ---------------

// UpdateRoleArguments - admin installs a new role holder
type UpdateRoleArguments struct {
	Caller *account.Account `json:"caller"`
	Role   string           `json:"role"` // "minter" or "market"
	Holder *account.Account `json:"holder"`
}

// UpdateRoleReply - confirmation
type UpdateRoleReply struct {
	Role   string           `json:"role"`
	Holder *account.Account `json:"holder"`
}

// UpdateRole - replace the single live holder of a role
func (node *Node) UpdateRole(arguments *UpdateRoleArguments, reply *UpdateRoleReply) error {
	if err := rateLimit(node.limiter); nil != err {
		return err
	}
	if err := node.checkAdmin(arguments.Caller); nil != err {
		return err
	}
	if nil == arguments.Holder {
		return fault.MissingParameters
	}

	switch arguments.Role {
	case rolegate.Minter.String():
		node.registries.Gate.SetMinter(arguments.Holder)
	case rolegate.Market.String():
		node.registries.Gate.SetMarket(arguments.Holder)
	default:
		return fault.InvalidItem
	}
	reply.Role = arguments.Role
	reply.Holder = arguments.Holder
	return nil
}

// only the configured administrator may change live state
func (node *Node) checkAdmin(caller *account.Account) error {
	if nil == node.registries.Admin || !node.registries.Admin.IsSame(caller) {
		return fault.Unauthorized
	}
	return nil
}
