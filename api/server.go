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
	"log/slog"

	"github.com/blinklabs-io/nodeapi/attachment"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/transaction"
)

// Config describes a dispatcher with every built-in handler registered
type Config struct {
	State         ledger.LedgerState
	Logger        *slog.Logger
	Admin         bool
	MaxAPIRecords int
	// Processor builds and broadcasts transactions. An in-memory pool is used when not set
	Processor transaction.Processor
	// Transactions resolves transaction IDs in block listings. Defaults to the processor when it can
	Transactions TransactionSource
	HostFilter   HostFilter
}

// NewDefaultDispatcher wires the resolver, attachment builder and transaction
// assembler together and registers the built-in handlers
func NewDefaultDispatcher(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	processor := cfg.Processor
	if processor == nil {
		processor = transaction.NewPool(transaction.WithPoolLogger(logger))
	}
	txSource := cfg.Transactions
	if txSource == nil {
		if src, ok := processor.(TransactionSource); ok {
			txSource = src
		}
	}
	resolver := parameter.NewResolver(
		cfg.State,
		parameter.WithLogger(logger),
		parameter.WithAdmin(cfg.Admin),
		parameter.WithMaxAPIRecords(cfg.MaxAPIRecords),
	)
	builder := attachment.NewBuilder(
		resolver,
		attachment.WithLogger(logger),
	)
	assembler := transaction.NewAssembler(
		resolver,
		transaction.WithLogger(logger),
		transaction.WithProcessor(processor),
	)
	return NewDispatcher(
		WithLogger(logger),
		WithHostFilter(cfg.HostFilter),
		WithHandler(
			RequestTypeDGSDelisting,
			NewDGSDelisting(builder, assembler),
		),
		WithHandler(
			RequestTypeSendMoneyEscrow,
			NewSendMoneyEscrow(builder, assembler),
		),
		WithHandler(
			RequestTypeGetAccountBlocks,
			NewGetAccountBlocks(resolver, cfg.State, txSource),
		),
		WithHandler(
			RequestTypeGetAccountBlockIds,
			NewGetAccountBlockIds(resolver, cfg.State),
		),
		WithHandler(
			RequestTypeBroadcastTransaction,
			NewBroadcastTransaction(assembler),
		),
	)
}
