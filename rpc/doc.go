// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the JSON RPC calls
//
// Connections are TLS and the services mirror the registry
// operations: collection creation, minting, market settlement and a
// node service for administration and status.  Each service carries
// its own rate limiter.
package rpc
