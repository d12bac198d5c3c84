// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	ExistsError   GenericError
	InvalidError  GenericError
	LengthError   GenericError
	NotFoundError GenericError
	ProcessError  GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	AlreadyMinted                = ExistsError("identifier is already minted")
	ArityMismatch                = LengthError("identifier and metadata counts differ")
	CannotDecodeAccount          = InvalidError("cannot decode account")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	CollectionAlreadyExists      = ExistsError("collection already exists")
	CollectionNotFound           = NotFoundError("collection not found")
	DataInconsistency            = ProcessError("data inconsistency")
	EditionCapReached            = InvalidError("subcollection edition cap reached")
	EncodingOverflow             = LengthError("identifier field exceeds its digit width")
	InsufficientPayment          = InvalidError("attached payment is insufficient")
	IdentifierNotMinted          = NotFoundError("identifier is not minted")
	InvalidChain                 = InvalidError("invalid chain")
	InvalidCount                 = InvalidError("invalid count")
	InvalidItem                  = InvalidError("invalid item")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvalidVerifier              = InvalidError("signature is not from a registered verifier")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MalformedSignature           = LengthError("signature has invalid length")
	MissingParameters            = LengthError("missing parameters")
	MixedSubcollections          = InvalidError("batch spans multiple subcollections")
	NameTooLong                  = LengthError("name is too long")
	NonSequentialSubcollection   = InvalidError("subcollection id is not sequential")
	NotAvailableDuringStartup    = ProcessError("not available during startup")
	NotInitialised               = ProcessError("not initialised")
	NotPublicKey                 = InvalidError("not a public key")
	RateLimiting                 = ProcessError("rate limiting")
	SellerNotOwner               = InvalidError("seller is not the current owner")
	SignatureReused              = InvalidError("signature has already been used")
	SubcollectionNotFound        = NotFoundError("subcollection not found")
	TransferNotApproved          = InvalidError("transfer is not approved")
	Unauthorized                 = InvalidError("caller does not hold the required role")
	UnsupportedAssetContract     = InvalidError("asset contract is not registered")
	UnsupportedPaymentToken      = InvalidError("payment token is not supported")
	UriTooLong                   = LengthError("uri is too long")
	WrongCollection              = InvalidError("identifier belongs to a different collection")
	WrongNetworkForPublicKey     = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an error is in the exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is in the invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if an error is in the length class
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if an error is in the not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is in the process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
