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

package transaction

import (
	"context"

	"github.com/blinklabs-io/nodeapi/ledger"
)

// Transaction is a built (and possibly signed) ledger transaction
type Transaction interface {
	Id() uint64
	StringId() string
	FullHash() []byte
	Bytes() []byte
	UnsignedBytes() []byte
	JSON() map[string]any
	Validate() error
	Signed() bool
}

// Processor builds transactions from drafts and submits them to the network
type Processor interface {
	CreateTransaction(ctx context.Context, draft Draft) (Transaction, error)
	Broadcast(ctx context.Context, tx Transaction) error
}

// Parser decodes transactions submitted by clients
type Parser interface {
	ParseBytes(txBytes []byte) (Transaction, error)
	ParseJSON(txJSON []byte) (Transaction, error)
}

// Draft is everything needed to build a transaction. A draft without a
// secret phrase produces an unsigned transaction.
type Draft struct {
	Sender                        *ledger.Account
	SenderPublicKey               []byte
	RecipientId                   ledger.AccountId
	AmountNQT                     uint64
	FeeNQT                        uint64
	Deadline                      uint16
	Attachment                    ledger.Attachment
	SecretPhrase                  string
	Message                       []byte
	MessageIsText                 bool
	EncryptedMessage              *ledger.EncryptedData
	EncryptToSelfMessage          *ledger.EncryptedData
	ReferencedTransactionFullHash []byte
}
