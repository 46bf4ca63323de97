// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apierror

// Request-level errors
var (
	IncorrectRequest = New(KindIncorrectRequest, "Incorrect request")
	PostRequired     = New(
		KindIncorrectRequest,
		"This request is only accepted using POST!",
	)
	UnknownRequestType = New(KindIncorrectRequest, "Unknown request type")
)

// Parameter resolution errors
var (
	MissingAccount   = Missing("account")
	IncorrectAccount = Incorrect("account")
	UnknownAccount   = Unknown("account")

	MissingSecretPhrase            = Missing("secretPhrase")
	MissingSecretPhraseOrPublicKey = Missing("secretPhrase", "publicKey")
	IncorrectPublicKey             = Incorrect("publicKey")

	MissingAliasOrAliasName = Missing("alias", "aliasName")
	IncorrectAlias          = Incorrect("alias")
	UnknownAlias            = Unknown("alias")

	MissingAmount   = Missing("amountNQT")
	IncorrectAmount = Incorrect("amountNQT")

	MissingAsset   = Missing("asset")
	IncorrectAsset = Incorrect("asset")
	UnknownAsset   = Unknown("asset")

	MissingGoods   = Missing("goods")
	IncorrectGoods = Incorrect("goods")
	UnknownGoods   = Unknown("goods")

	IncorrectEncryptedMessage = Incorrect("encryptedMessageData")
	IncorrectPlainMessage     = Incorrect("messageToEncrypt")
	IncorrectArbitraryMessage = Incorrect("message")

	MissingRecipient   = Missing("recipient")
	IncorrectRecipient = Incorrect("recipient")

	IncorrectNumberOfConfirmations = Incorrect("numberOfConfirmations")
	IncorrectHeight                = Incorrect("height")
	HeightNotAvailable             = New(
		KindNotAvailable,
		"Requested height not available",
	)

	IncorrectTimestamp = Incorrect("timestamp")
)

// Transaction assembly errors
var (
	MissingDeadline                = Missing("deadline")
	IncorrectDeadline              = Incorrect("deadline")
	MissingFee                     = Missing("feeNQT")
	IncorrectFee                   = Incorrect("feeNQT")
	IncorrectReferencedTransaction = Incorrect(
		"referencedTransactionFullHash",
	)
	NotEnoughFunds = New(KindInsufficientFunds, "Not enough funds")

	MissingTransactionBytesOrJSON = Missing(
		"transactionBytes",
		"transactionJSON",
	)
	IncorrectTransactionBytes = Incorrect("transactionBytes")
	IncorrectTransactionJSON  = Incorrect("transactionJSON")
)

// IncorrectTransaction reports a transaction that failed validation
func IncorrectTransaction(err error) *Error {
	return New(
		KindIncorrectParameter,
		"Incorrect transaction: "+err.Error(),
	).WithCause(err)
}

// Escrow creation errors
var (
	InvalidRequiredSignersParameter = New(
		KindIncorrectParameter,
		"Invalid requiredSigners parameter",
	)
	InvalidNumberOfRequiredSigners = New(
		KindOutOfRange,
		"Invalid number of requiredSigners",
	)
	SignersNotSpecified = New(
		KindMissingParameter,
		"Signers not specified",
	)
	InvalidNumberOfSigners = New(
		KindInconsistent,
		"Invalid number of signers",
	)
	InvalidSignersParameter = New(
		KindIncorrectParameter,
		"Invalid signers parameter",
	)
	InsufficientFunds = New(
		KindInsufficientFunds,
		"Insufficient funds",
	)
	InvalidEscrowDeadlineParameter = New(
		KindIncorrectParameter,
		"Invalid escrowDeadline parameter",
	)
	EscrowDeadlineOutOfRange = New(
		KindOutOfRange,
		"Escrow deadline must be 1 - 7776000",
	)
	InvalidDeadlineActionParameter = New(
		KindIncorrectParameter,
		"Invalid deadlineAction parameter",
	)
)
