// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/countersign/registryd/account"
	"github.com/countersign/registryd/authorize"
	"github.com/countersign/registryd/collection"
	"github.com/countersign/registryd/fault"
	"github.com/countersign/registryd/identifier"
	"github.com/countersign/registryd/market"
	"github.com/countersign/registryd/replay"
	"github.com/countersign/registryd/request"
	"github.com/countersign/registryd/rolegate"
	"github.com/countersign/registryd/storage"
	"github.com/countersign/registryd/verifier"
)

const testingDirName = "testing"

const tokenContract = "0xfungible"
const assetContract = "0xassets"

// one test fixture: a minted identifier held by seller, the market
// operator approved to move it, contracts registered
type fixture struct {
	market      *market.Market
	store       *collection.Store
	funds       *market.Funds
	gate        *rolegate.Gate
	verifierKey *account.PrivateKey
	admin       *account.Account
	feeAccount  *account.Account
	operator    *account.Account // holds the market role
	seller      *account.Account
	buyer       *account.Account
	tokenId     identifier.Identifier
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func makeKeypair(t *testing.T) *account.PrivateKey {
	key, err := account.NewKeypair(true, nil)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}
	return key
}

func setup(t *testing.T) *fixture {
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
	gate, err := rolegate.New(storage.Pool.Roles)
	if nil != err {
		t.Fatalf("gate error: %s", err)
	}
	engine := authorize.New(registry, replay.New(storage.Pool.Signatures))
	store := collection.NewStore(engine, gate,
		storage.Pool.Collections, storage.Pool.Subcollections, storage.Pool.Identifiers)
	funds := market.NewFunds(storage.Pool.Balances)

	f := &fixture{
		store:       store,
		funds:       funds,
		gate:        gate,
		verifierKey: makeKeypair(t),
		admin:       makeKeypair(t).Account(),
		feeAccount:  makeKeypair(t).Account(),
		operator:    makeKeypair(t).Account(),
		seller:      makeKeypair(t).Account(),
		buyer:       makeKeypair(t).Account(),
	}
	registry.Add(f.verifierKey.Account())
	gate.SetMinter(f.operator)
	gate.SetMarket(f.operator)

	f.market = market.New(engine, gate, f.admin, f.feeAccount,
		storage.Pool.AssetContracts, store, funds)

	// a collection with one identifier held by seller
	create := &request.CreationRequest{
		CollectionId: 5,
		MaxEdition:   100,
		RequestId:    1,
		Admin:        f.admin,
		Registry:     "registry.test.countersign",
	}
	if err := store.Create(f.seller, "lot", create, f.sign(t, create)); nil != err {
		t.Fatalf("create error: %s", err)
	}
	f.tokenId, err = identifier.Pack(5, 1, 1)
	if nil != err {
		t.Fatalf("identifier error: %s", err)
	}
	mint := &request.MintRequest{To: f.seller, TokenId: f.tokenId, Uri: "ipfs://Qm"}
	if err := store.Mint(f.operator, 5, mint, f.sign(t, mint)); nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if err := store.Approve(f.seller, f.tokenId, f.operator); nil != err {
		t.Fatalf("approve error: %s", err)
	}

	// admit the contracts
	if err := f.market.RegisterAssetContract(f.admin, assetContract, market.TagAsset, true); nil != err {
		t.Fatalf("register asset error: %s", err)
	}
	if err := f.market.RegisterAssetContract(f.admin, tokenContract, market.TagFungible, true); nil != err {
		t.Fatalf("register token error: %s", err)
	}
	return f
}

func teardown() {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func (f *fixture) sign(t *testing.T, record request.Record) account.Signature {
	payload, err := record.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return f.verifierKey.Sign(payload)
}

// the standard sale: 2 units at 100 with a 2.5% fee
func (f *fixture) saleRequest(paymentToken string) *request.PurchaseRequest {
	return &request.PurchaseRequest{
		Seller:          f.seller,
		PaymentReceiver: f.seller,
		AssetContract:   assetContract,
		TokenId:         f.tokenId,
		PaymentToken:    paymentToken,
		FeeRate:         250,
		Price:           100,
		Amount:          2,
		SellId:          9001,
	}
}

func TestBuyNative(t *testing.T) {
	f := setup(t)
	defer teardown()

	req := f.saleRequest("")
	err := f.market.BuyNative(f.operator, f.buyer, req, f.sign(t, req), 200)
	assert.NoError(t, err, "buy failed")

	// total 200, fee 5: receiver 195, fee account 5
	assert.Equal(t, uint64(195), f.funds.Balance("", f.seller), "receiver share")
	assert.Equal(t, uint64(5), f.funds.Balance("", f.feeAccount), "fee share")

	owner, err := f.store.OwnerOf(f.tokenId)
	assert.NoError(t, err)
	assert.True(t, owner.IsSame(f.buyer), "identifier did not move")
}

func TestBuyNativeInsufficient(t *testing.T) {
	f := setup(t)
	defer teardown()

	req := f.saleRequest("")
	sig := f.sign(t, req)
	err := f.market.BuyNative(f.operator, f.buyer, req, sig, 199)
	assert.Equal(t, fault.InsufficientPayment, err, "underpayment admitted")

	// nothing moved and the authorisation is still spendable
	owner, _ := f.store.OwnerOf(f.tokenId)
	assert.True(t, owner.IsSame(f.seller), "identifier moved on failure")
	err = f.market.BuyNative(f.operator, f.buyer, req, sig, 200)
	assert.NoError(t, err, "retry with full payment failed")
}

func TestBuyNativeRejectsTokenSale(t *testing.T) {
	f := setup(t)
	defer teardown()

	req := f.saleRequest(tokenContract)
	err := f.market.BuyNative(f.operator, f.buyer, req, f.sign(t, req), 200)
	assert.Equal(t, fault.UnsupportedPaymentToken, err)
}

func TestBuyWithToken(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.funds.Deposit(tokenContract, f.buyer, 500)
	f.funds.Approve(tokenContract, f.buyer, f.operator, 200)

	req := f.saleRequest(tokenContract)
	err := f.market.BuyWithToken(f.operator, f.buyer, req, f.sign(t, req))
	assert.NoError(t, err, "buy failed")

	assert.Equal(t, uint64(300), f.funds.Balance(tokenContract, f.buyer), "buyer balance")
	assert.Equal(t, uint64(195), f.funds.Balance(tokenContract, f.seller), "receiver share")
	assert.Equal(t, uint64(5), f.funds.Balance(tokenContract, f.feeAccount), "fee share")

	owner, _ := f.store.OwnerOf(f.tokenId)
	assert.True(t, owner.IsSame(f.buyer), "identifier did not move")
}

func TestBuyWithTokenChecks(t *testing.T) {
	f := setup(t)
	defer teardown()

	// unregistered payment token
	req := f.saleRequest("0xunknown")
	err := f.market.BuyWithToken(f.operator, f.buyer, req, f.sign(t, req))
	assert.Equal(t, fault.UnsupportedPaymentToken, err, "unknown token admitted")

	// no allowance for the operator
	f.funds.Deposit(tokenContract, f.buyer, 500)
	req = f.saleRequest(tokenContract)
	err = f.market.BuyWithToken(f.operator, f.buyer, req, f.sign(t, req))
	assert.Equal(t, fault.TransferNotApproved, err, "missing allowance admitted")

	// allowance present but balance short
	poor := makeKeypair(t).Account()
	f.funds.Approve(tokenContract, poor, f.operator, 200)
	err = f.market.BuyWithToken(f.operator, poor, req, f.sign(t, req))
	assert.Equal(t, fault.InsufficientPayment, err, "empty balance admitted")
}

func TestBuyWithTokenPartialCoverMovesNothing(t *testing.T) {
	f := setup(t)
	defer teardown()

	// allowance covers the receiver share but not the full total
	f.funds.Deposit(tokenContract, f.buyer, 500)
	f.funds.Approve(tokenContract, f.buyer, f.operator, 199)

	req := f.saleRequest(tokenContract)
	sig := f.sign(t, req)
	err := f.market.BuyWithToken(f.operator, f.buyer, req, sig)
	assert.Equal(t, fault.TransferNotApproved, err, "short allowance admitted")

	// no partial settlement: every balance is untouched
	assert.Equal(t, uint64(500), f.funds.Balance(tokenContract, f.buyer), "buyer debited on rejection")
	assert.Equal(t, uint64(0), f.funds.Balance(tokenContract, f.seller), "receiver credited on rejection")
	assert.Equal(t, uint64(0), f.funds.Balance(tokenContract, f.feeAccount), "fee account credited on rejection")
	owner, _ := f.store.OwnerOf(f.tokenId)
	assert.True(t, owner.IsSame(f.seller), "identifier moved on rejection")

	// balance covering the receiver share but not the total is the
	// same case on the other ledger entry
	short := makeKeypair(t).Account()
	f.funds.Deposit(tokenContract, short, 199)
	f.funds.Approve(tokenContract, short, f.operator, 200)
	err = f.market.BuyWithToken(f.operator, short, req, f.sign(t, req))
	assert.Equal(t, fault.InsufficientPayment, err, "short balance admitted")
	assert.Equal(t, uint64(199), f.funds.Balance(tokenContract, short), "short buyer debited on rejection")
	assert.Equal(t, uint64(0), f.funds.Balance(tokenContract, f.seller), "receiver credited on rejection")

	// the authorisation was never consumed; full cover settles
	f.funds.Approve(tokenContract, f.buyer, f.operator, 200)
	err = f.market.BuyWithToken(f.operator, f.buyer, req, sig)
	assert.NoError(t, err, "retry with full allowance failed")
	assert.Equal(t, uint64(300), f.funds.Balance(tokenContract, f.buyer), "buyer balance")
	assert.Equal(t, uint64(195), f.funds.Balance(tokenContract, f.seller), "receiver share")
	assert.Equal(t, uint64(5), f.funds.Balance(tokenContract, f.feeAccount), "fee share")
}

func TestFeeOnLargeTotal(t *testing.T) {
	f := setup(t)
	defer teardown()

	// price large enough that total*feeRate would wrap uint64
	const price = uint64(1) << 60
	req := f.saleRequest("")
	req.Price = price
	req.Amount = 1
	req.FeeRate = 10000 // the whole total is fee

	err := f.market.BuyNative(f.operator, f.buyer, req, f.sign(t, req), price)
	assert.NoError(t, err, "buy failed")

	assert.Equal(t, price, f.funds.Balance("", f.feeAccount), "fee share")
	assert.Equal(t, uint64(0), f.funds.Balance("", f.seller), "receiver share")
}

func TestSaleChecks(t *testing.T) {
	f := setup(t)
	defer teardown()

	// only the market role holder reaches the engine
	req := f.saleRequest("")
	sig := f.sign(t, req)
	err := f.market.BuyNative(f.buyer, f.buyer, req, sig, 200)
	assert.Equal(t, fault.Unauthorized, err, "non market caller admitted")

	// unregistered asset contract
	bad := f.saleRequest("")
	bad.AssetContract = "0xunknown"
	err = f.market.BuyNative(f.operator, f.buyer, bad, f.sign(t, bad), 200)
	assert.Equal(t, fault.UnsupportedAssetContract, err, "unknown contract admitted")

	// a disabled contract is no contract
	err = f.market.RegisterAssetContract(f.admin, assetContract, market.TagAsset, false)
	assert.NoError(t, err)
	err = f.market.BuyNative(f.operator, f.buyer, req, sig, 200)
	assert.Equal(t, fault.UnsupportedAssetContract, err, "disabled contract admitted")
	err = f.market.RegisterAssetContract(f.admin, assetContract, market.TagAsset, true)
	assert.NoError(t, err)

	// seller must own the identifier at settlement time
	stranger := makeKeypair(t).Account()
	bad = f.saleRequest("")
	bad.Seller = stranger
	err = f.market.BuyNative(f.operator, f.buyer, bad, f.sign(t, bad), 200)
	assert.Equal(t, fault.SellerNotOwner, err, "non owner sale admitted")

	// zero amount is meaningless
	bad = f.saleRequest("")
	bad.Amount = 0
	err = f.market.BuyNative(f.operator, f.buyer, bad, f.sign(t, bad), 200)
	assert.Equal(t, fault.InvalidCount, err, "zero amount admitted")

	// the untouched original sale still settles
	err = f.market.BuyNative(f.operator, f.buyer, req, sig, 200)
	assert.NoError(t, err, "valid sale rejected after failed attempts")
}

func TestContractRegistryIsAdminOnly(t *testing.T) {
	f := setup(t)
	defer teardown()

	err := f.market.RegisterAssetContract(f.operator, "0xnew", market.TagAsset, true)
	assert.Equal(t, fault.Unauthorized, err, "non admin registered a contract")

	err = f.market.UnregisterAssetContract(f.operator, assetContract)
	assert.Equal(t, fault.Unauthorized, err, "non admin unregistered a contract")

	err = f.market.UnregisterAssetContract(f.admin, assetContract)
	assert.NoError(t, err)

	// the sale no longer settles
	req := f.saleRequest("")
	err = f.market.BuyNative(f.operator, f.buyer, req, f.sign(t, req), 200)
	assert.Equal(t, fault.UnsupportedAssetContract, err, "unregistered contract admitted")
}
