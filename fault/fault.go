// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type OverflowError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AddressExists                = ExistsError("address already exists")
	AddressOnCurve               = InvalidError("derived address is on the ed25519 curve")
	AlreadyInitialised           = ProcessError("already initialised")
	AttributeKeyEmpty            = RecordError("attribute key is empty")
	BasisPointsOutOfRange        = RecordError("basis points out of range")
	CannotDecodeAccount          = RecordError("cannot decode account")
	CannotDecodePrivateKey       = RecordError("cannot decode private key")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CertificateFileNotFound      = NotFoundError("certificate file not found")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	ConfigurationFileNotFound    = NotFoundError("configuration file not found")
	ConfigurationNotTable        = InvalidError("configuration must return a table")
	CreatorSharesNotHundred      = RecordError("creator shares do not total 100")
	DataHashMismatch             = InvalidError("data hash does not match record")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DuplicateNewAddress          = ExistsError("duplicate new address in batch")
	GroupAddressMismatch         = InvalidError("group address does not match seeds")
	GroupAuthorityMismatch       = InvalidError("group authority does not match")
	GroupFull                    = OverflowError("group is full")
	GroupNotFound                = NotFoundError("group not found")
	InputCountMismatch           = InvalidError("input record count mismatch")
	InputNotFound                = NotFoundError("input record not found")
	InvalidAuthority             = InvalidError("invalid authority signature")
	InvalidAuthorityVariant      = RecordError("invalid authority variant")
	InvalidChain                 = InvalidError("invalid chain")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidLockState             = RecordError("invalid lock state")
	InvalidProof                 = InvalidError("invalid proof")
	InvalidRecordOwner           = InvalidError("invalid record owner")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidStoredIdentity        = InvalidError("invalid stored identity")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvalidUTF8                  = RecordError("invalid utf-8 string")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	KeyFileNotFound              = NotFoundError("key file not found")
	MemberAssetOverflow          = OverflowError("member asset overflow")
	MissingAuthority             = InvalidError("missing authority")
	MissingParameters            = InvalidError("missing parameters")
	MissingProof                 = InvalidError("missing proof")
	MissingSigner                = InvalidError("missing signer")
	NameTooLong                  = LengthError("name too long")
	NameTooShort                 = LengthError("name too short")
	NewAddressNotUsed            = InvalidError("new address not used by any output")
	NoIdentity                   = NotFoundError("no identity")
	NoValidBump                  = ProcessError("no valid bump for program address")
	NotARecord                   = RecordError("not a record")
	NotAddress                   = InvalidError("not an address")
	NotDigest                    = InvalidError("not a digest")
	NotInitialised               = ProcessError("not initialised")
	NotPrivateKey                = InvalidError("not a private key")
	NotPublicKey                 = InvalidError("not a public key")
	OutputNotInBatch             = InvalidError("output address is neither new nor an input")
	RateLimiting                 = InvalidError("rate limiting")
	RecordHasExcessData          = RecordError("record has excess data")
	RecordNotFound               = NotFoundError("record not found")
	RootIndexMismatch            = InvalidError("root index mismatch")
	RootIndexOutOfRange          = InvalidError("root index out of range")
	RootNotFound                 = NotFoundError("root not found")
	SignatureReplayed            = InvalidError("signature already used")
	StaleInput                   = InvalidError("input record is stale")
	StaleTimestamp               = InvalidError("request timestamp out of range")
	StateTreeFull                = OverflowError("state tree is full")
	TooManyAttributes            = LengthError("too many attributes")
	TooManyCreators              = LengthError("too many creators")
	TransactionAlreadyInUse      = ProcessError("transaction already in use")
	TruncatedRecord              = RecordError("truncated record")
	URITooLong                   = LengthError("uri too long")
	UnexpectedRecordType         = RecordError("unexpected record type")
	UnknownRecordType            = RecordError("unknown record type")
	UnknownTree                  = InvalidError("unknown tree")
	WrongNetworkForPublicKey     = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e OverflowError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrOverflow(e error) bool { _, ok := e.(OverflowError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// IsErrConstruction - true for any error raised while packing a record
func IsErrConstruction(e error) bool { return IsErrRecord(e) || IsErrLength(e) }
