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

package api

import (
	"context"

	"github.com/blinklabs-io/nodeapi/request"
)

type Tag string

const (
	TagAccounts          Tag = "ACCOUNTS"
	TagDGS               Tag = "DGS"
	TagTransactions      Tag = "TRANSACTIONS"
	TagCreateTransaction Tag = "CREATE_TRANSACTION"
)

// Request types
const (
	RequestTypeDGSDelisting         = "dgsDelisting"
	RequestTypeSendMoneyEscrow      = "sendMoneyEscrow"
	RequestTypeGetAccountBlocks     = "getAccountBlocks"
	RequestTypeGetAccountBlockIds   = "getAccountBlockIds"
	RequestTypeBroadcastTransaction = "broadcastTransaction"
)

// Handler processes a single request type
type Handler interface {
	ProcessRequest(ctx context.Context, req request.Request) (any, error)
	Tags() []Tag
	Parameters() []string
	RequirePost() bool
}

// createTransactionParameters are accepted by every handler that creates a transaction
var createTransactionParameters = []string{
	request.ParamSecretPhrase,
	request.ParamPublicKey,
	request.ParamFeeNQT,
	request.ParamDeadline,
	request.ParamReferencedTransactionFullHash,
	request.ParamBroadcast,
	request.ParamMessage,
	request.ParamMessageIsText,
	request.ParamMessageToEncrypt,
	request.ParamMessageToEncryptIsText,
	request.ParamMessageToEncryptToSelf,
	request.ParamMessageToEncryptToSelfIsText,
}

func withCreateTransactionParameters(params ...string) []string {
	ret := make([]string, 0, len(params)+len(createTransactionParameters))
	ret = append(ret, params...)
	return append(ret, createTransactionParameters...)
}
