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
	"strconv"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/request"
	"github.com/blinklabs-io/nodeapi/transaction"
)

// TransactionSource looks up transactions for inclusion in block listings
type TransactionSource interface {
	Transaction(id uint64) (*transaction.Tx, bool)
}

// GetAccountBlocks lists the blocks forged by an account, newest first
type GetAccountBlocks struct {
	resolver     *parameter.Resolver
	blocks       ledger.BlockState
	transactions TransactionSource
}

// NewGetAccountBlocks creates the handler. The transaction source may be nil,
// in which case only transaction IDs are listed
func NewGetAccountBlocks(
	resolver *parameter.Resolver,
	blocks ledger.BlockState,
	transactions TransactionSource,
) *GetAccountBlocks {
	return &GetAccountBlocks{
		resolver:     resolver,
		blocks:       blocks,
		transactions: transactions,
	}
}

func (h *GetAccountBlocks) ProcessRequest(
	_ context.Context,
	req request.Request,
) (any, error) {
	blocks, err := accountBlocks(h.resolver, h.blocks, req)
	if err != nil {
		return nil, err
	}
	includeTransactions := request.IsTrue(
		req.Get(request.ParamIncludeTransactions),
	)
	ret := make([]map[string]any, 0, len(blocks))
	for _, block := range blocks {
		ret = append(ret, h.blockJSON(block, includeTransactions))
	}
	return map[string]any{"blocks": ret}, nil
}

func (h *GetAccountBlocks) blockJSON(
	block ledger.Block,
	includeTransactions bool,
) map[string]any {
	txs := make([]any, 0, len(block.TransactionIds))
	for _, txId := range block.TransactionIds {
		if includeTransactions && h.transactions != nil {
			if tx, ok := h.transactions.Transaction(txId); ok {
				txs = append(txs, tx.JSON())
				continue
			}
		}
		txs = append(txs, strconv.FormatUint(txId, 10))
	}
	ret := map[string]any{
		"block":                strconv.FormatUint(block.Id, 10),
		"height":               block.Height,
		"timestamp":            block.Timestamp,
		"generator":            block.GeneratorId.String(),
		"generatorRS":          block.GeneratorId.Address(),
		"totalAmountNQT":       strconv.FormatUint(block.TotalAmountNQT, 10),
		"totalFeeNQT":          strconv.FormatUint(block.TotalFeeNQT, 10),
		"payloadLength":        block.PayloadLength,
		"numberOfTransactions": len(block.TransactionIds),
		"transactions":         txs,
	}
	if block.PreviousBlockId != 0 {
		ret["previousBlock"] = strconv.FormatUint(block.PreviousBlockId, 10)
	}
	return ret
}

func (h *GetAccountBlocks) Tags() []Tag {
	return []Tag{TagAccounts}
}

func (h *GetAccountBlocks) Parameters() []string {
	return []string{
		request.ParamAccount,
		request.ParamTimestamp,
		request.ParamFirstIndex,
		request.ParamLastIndex,
		request.ParamIncludeTransactions,
	}
}

func (h *GetAccountBlocks) RequirePost() bool {
	return false
}

// GetAccountBlockIds lists the IDs of the blocks forged by an account, newest first
type GetAccountBlockIds struct {
	resolver *parameter.Resolver
	blocks   ledger.BlockState
}

func NewGetAccountBlockIds(
	resolver *parameter.Resolver,
	blocks ledger.BlockState,
) *GetAccountBlockIds {
	return &GetAccountBlockIds{
		resolver: resolver,
		blocks:   blocks,
	}
}

func (h *GetAccountBlockIds) ProcessRequest(
	_ context.Context,
	req request.Request,
) (any, error) {
	blocks, err := accountBlocks(h.resolver, h.blocks, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(blocks))
	for _, block := range blocks {
		ids = append(ids, strconv.FormatUint(block.Id, 10))
	}
	return map[string]any{"blockIds": ids}, nil
}

func (h *GetAccountBlockIds) Tags() []Tag {
	return []Tag{TagAccounts}
}

func (h *GetAccountBlockIds) Parameters() []string {
	return []string{
		request.ParamAccount,
		request.ParamTimestamp,
		request.ParamFirstIndex,
		request.ParamLastIndex,
	}
}

func (h *GetAccountBlockIds) RequirePost() bool {
	return false
}

func accountBlocks(
	resolver *parameter.Resolver,
	blocks ledger.BlockState,
	req request.Request,
) ([]ledger.Block, error) {
	account, err := resolver.Account(req)
	if err != nil {
		return nil, err
	}
	timestamp, err := resolver.Timestamp(req)
	if err != nil {
		return nil, err
	}
	firstIndex := resolver.FirstIndex(req)
	lastIndex := resolver.LastIndex(req)
	ret, err := blocks.BlocksByGenerator(
		account.Id,
		timestamp,
		firstIndex,
		lastIndex,
	)
	if err != nil {
		return nil, apierror.IncorrectRequest.WithCause(err)
	}
	return ret, nil
}
