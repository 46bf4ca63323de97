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

	"github.com/blinklabs-io/nodeapi/attachment"
	"github.com/blinklabs-io/nodeapi/request"
	"github.com/blinklabs-io/nodeapi/transaction"
)

// DGSDelisting removes one of the sender's listings from the goods store
type DGSDelisting struct {
	builder   *attachment.Builder
	assembler *transaction.Assembler
}

func NewDGSDelisting(
	builder *attachment.Builder,
	assembler *transaction.Assembler,
) *DGSDelisting {
	return &DGSDelisting{
		builder:   builder,
		assembler: assembler,
	}
}

func (h *DGSDelisting) ProcessRequest(
	ctx context.Context,
	req request.Request,
) (any, error) {
	sender, delisting, err := h.builder.GoodsDelisting(req)
	if err != nil {
		return nil, err
	}
	return h.assembler.Create(ctx, req, sender, 0, 0, delisting)
}

func (h *DGSDelisting) Tags() []Tag {
	return []Tag{TagDGS, TagCreateTransaction}
}

func (h *DGSDelisting) Parameters() []string {
	return withCreateTransactionParameters(request.ParamGoods)
}

func (h *DGSDelisting) RequirePost() bool {
	return true
}

// SendMoneyEscrow places an amount in escrow for a recipient, released by signer vote or deadline
type SendMoneyEscrow struct {
	builder   *attachment.Builder
	assembler *transaction.Assembler
}

func NewSendMoneyEscrow(
	builder *attachment.Builder,
	assembler *transaction.Assembler,
) *SendMoneyEscrow {
	return &SendMoneyEscrow{
		builder:   builder,
		assembler: assembler,
	}
}

// ProcessRequest builds the escrow attachment. The escrowed amount travels in
// the attachment, so the transaction itself moves nothing.
func (h *SendMoneyEscrow) ProcessRequest(
	ctx context.Context,
	req request.Request,
) (any, error) {
	escrow, err := h.builder.EscrowCreation(req)
	if err != nil {
		return nil, err
	}
	return h.assembler.Create(
		ctx,
		req,
		escrow.Sender,
		escrow.RecipientId,
		0,
		escrow.Attachment,
	)
}

func (h *SendMoneyEscrow) Tags() []Tag {
	return []Tag{TagTransactions, TagCreateTransaction}
}

func (h *SendMoneyEscrow) Parameters() []string {
	return withCreateTransactionParameters(
		request.ParamRecipient,
		request.ParamAmountNQT,
		request.ParamEscrowDeadline,
		request.ParamDeadlineAction,
		request.ParamRequiredSigners,
		request.ParamSigners,
	)
}

func (h *SendMoneyEscrow) RequirePost() bool {
	return true
}

// BroadcastTransaction submits a transaction built and signed by the client
type BroadcastTransaction struct {
	assembler *transaction.Assembler
}

func NewBroadcastTransaction(
	assembler *transaction.Assembler,
) *BroadcastTransaction {
	return &BroadcastTransaction{
		assembler: assembler,
	}
}

func (h *BroadcastTransaction) ProcessRequest(
	ctx context.Context,
	req request.Request,
) (any, error) {
	return h.assembler.Broadcast(ctx, req)
}

func (h *BroadcastTransaction) Tags() []Tag {
	return []Tag{TagTransactions}
}

func (h *BroadcastTransaction) Parameters() []string {
	return []string{
		request.ParamTransactionBytes,
		request.ParamTransactionJSON,
	}
}

func (h *BroadcastTransaction) RequirePost() bool {
	return true
}
