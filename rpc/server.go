// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/counter"
)

// rate limits per connection
const (
	defaultRateLimit = 200 // requests per second
	defaultRateBurst = 100
)

// the argument passed to the callback
type serverArgument struct {
	Log    *logger.L
	Server *rpc.Server
}

var connectionCount counter.Counter

// ConnectionCount - live RPC connections
func ConnectionCount() uint64 {
	return connectionCount.Uint64()
}

// createServer - register all services onto one RPC server
func createServer(log *logger.L, version string, registries *Registries) *rpc.Server {
	server := rpc.NewServer()

	server.Register(&Collection{
		log:     log,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		store:   registries.Store,
	})
	server.Register(&Mint{
		log:     log,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		store:   registries.Store,
	})
	server.Register(&Market{
		log:     log,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		market:  registries.Market,
	})
	server.Register(&Node{
		log:        log,
		limiter:    rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		start:      time.Now(),
		version:    version,
		registries: registries,
	})
	return server
}

// Callback - handle one connection
func Callback(conn *listener.ClientConnection, argument interface{}) {

	serverArgument := argument.(*serverArgument)

	log := serverArgument.Log
	log.Info("starting…")

	server := serverArgument.Server

	connectionCount.Increment()
	defer connectionCount.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	server.ServeCodec(codec)

	log.Info("finished")
}
