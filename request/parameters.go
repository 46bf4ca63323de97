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

package request

// Parameter names
const (
	ParamRequestType = "requestType"

	ParamAccount      = "account"
	ParamSecretPhrase = "secretPhrase"
	ParamPublicKey    = "publicKey"
	ParamRecipient    = "recipient"
	ParamAmountNQT    = "amountNQT"
	ParamFeeNQT       = "feeNQT"
	ParamDeadline     = "deadline"
	ParamBroadcast    = "broadcast"

	ParamReferencedTransactionFullHash = "referencedTransactionFullHash"

	ParamAlias     = "alias"
	ParamAliasName = "aliasName"
	ParamAsset     = "asset"
	ParamGoods     = "goods"

	ParamHeight                = "height"
	ParamNumberOfConfirmations = "numberOfConfirmations"
	ParamTimestamp             = "timestamp"
	ParamFirstIndex            = "firstIndex"
	ParamLastIndex             = "lastIndex"
	ParamIncludeTransactions   = "includeTransactions"

	ParamMessage       = "message"
	ParamMessageIsText = "messageIsText"

	ParamEncryptedMessageData         = "encryptedMessageData"
	ParamEncryptedMessageNonce        = "encryptedMessageNonce"
	ParamMessageToEncrypt             = "messageToEncrypt"
	ParamMessageToEncryptIsText       = "messageToEncryptIsText"
	ParamEncryptToSelfMessageData     = "encryptToSelfMessageData"
	ParamEncryptToSelfMessageNonce    = "encryptToSelfMessageNonce"
	ParamMessageToEncryptToSelf       = "messageToEncryptToSelf"
	ParamMessageToEncryptToSelfIsText = "messageToEncryptToSelfIsText"

	ParamEscrowDeadline  = "escrowDeadline"
	ParamDeadlineAction  = "deadlineAction"
	ParamRequiredSigners = "requiredSigners"
	ParamSigners         = "signers"

	ParamTransactionBytes = "transactionBytes"
	ParamTransactionJSON  = "transactionJSON"
)
