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

package attachment

import (
	"errors"
	"log/slog"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/request"
)

type BuilderOptionFunc func(*Builder)

// WithLogger specifies the logger. slog.Default() is used when not set
func WithLogger(logger *slog.Logger) BuilderOptionFunc {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder turns requests into attachments, resolving every referenced entity
// through the parameter resolver
type Builder struct {
	resolver *parameter.Resolver
	logger   *slog.Logger
}

func NewBuilder(
	resolver *parameter.Resolver,
	opts ...BuilderOptionFunc,
) *Builder {
	b := &Builder{
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

func (b *Builder) Resolver() *parameter.Resolver {
	return b.resolver
}

// GoodsDelisting resolves the sender and a listing it owns. Listings that are
// already delisted or belong to another seller are reported as unknown.
func (b *Builder) GoodsDelisting(
	req request.Request,
) (*ledger.Account, *ledger.GoodsDelisting, error) {
	sender, err := b.resolver.SenderAccount(req)
	if err != nil {
		return nil, nil, b.rejected("DigitalGoodsDelisting", err)
	}
	goods, err := b.resolver.Goods(req)
	if err != nil {
		return nil, nil, b.rejected("DigitalGoodsDelisting", err)
	}
	if goods.Delisted || !goods.IsOwnedBy(sender.Id) {
		return nil, nil, b.rejected(
			"DigitalGoodsDelisting",
			apierror.UnknownGoods,
		)
	}
	return sender, ledger.NewGoodsDelisting(goods.Id), nil
}

// EscrowCreation runs the escrow steps in order and returns the first failure
func (b *Builder) EscrowCreation(req request.Request) (*EscrowRequest, error) {
	state := &EscrowState{}
	for _, step := range escrowSteps {
		if err := step(b.resolver, state, req); err != nil {
			return nil, b.rejected("EscrowCreation", err)
		}
	}
	return &EscrowRequest{
		Sender:      state.Sender,
		RecipientId: state.RecipientId,
		AmountNQT:   state.AmountNQT,
		Attachment:  state.Attachment,
	}, nil
}

func (b *Builder) rejected(attachmentName string, err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		b.logger.Debug(
			"attachment rejected",
			"component", "attachment",
			"attachment", attachmentName,
			"error_code", apiErr.Code,
			"error", apiErr.Description,
		)
	}
	return err
}
