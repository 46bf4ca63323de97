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
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/nodeapi/ledger"
)

var ErrExpired = errors.New("transaction deadline has passed")

type PoolOptionFunc func(*Pool)

// TxAddedFunc is called, outside the pool lock, for every transaction newly added to the pool
type TxAddedFunc func(*Tx)

// WithPoolLogger specifies the logger. slog.Default() is used when not set
func WithPoolLogger(logger *slog.Logger) PoolOptionFunc {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithPoolClock specifies the time source for timestamps and expiry
func WithPoolClock(now func() time.Time) PoolOptionFunc {
	return func(p *Pool) {
		p.now = now
	}
}

// WithTxAddedFunc specifies a callback for transactions added to the pool
func WithTxAddedFunc(txAddedFunc TxAddedFunc) PoolOptionFunc {
	return func(p *Pool) {
		p.txAddedFunc = txAddedFunc
	}
}

// Pool is an in-memory Processor holding broadcast transactions until they expire
type Pool struct {
	mutex        sync.RWMutex
	logger       *slog.Logger
	now          func() time.Time
	txAddedFunc  TxAddedFunc
	transactions map[uint64]*Tx
	order        []uint64
}

var _ Processor = (*Pool)(nil)

func NewPool(opts ...PoolOptionFunc) *Pool {
	p := &Pool{
		transactions: make(map[uint64]*Tx),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// CreateTransaction builds the transaction, signing and validating it when the
// draft carries a secret phrase
func (p *Pool) CreateTransaction(
	ctx context.Context,
	draft Draft,
) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if draft.Attachment == nil {
		draft.Attachment = &ledger.OrdinaryPayment{
			AttachmentType: ledger.AttachmentTypeOrdinaryPayment,
		}
	}
	body := TxBody{
		Version:   TxVersion,
		Timestamp: p.timestamp(),
		Deadline:  draft.Deadline,
		SenderPublicKey: append(
			[]byte(nil),
			draft.SenderPublicKey...,
		),
		RecipientId:                   draft.RecipientId,
		AmountNQT:                     draft.AmountNQT,
		FeeNQT:                        draft.FeeNQT,
		ReferencedTransactionFullHash: draft.ReferencedTransactionFullHash,
		Attachment: &ledger.AttachmentWrapper{
			Type:       draft.Attachment.Type(),
			Attachment: draft.Attachment,
		},
		Message:              draft.Message,
		MessageIsText:        draft.MessageIsText,
		EncryptedMessage:     draft.EncryptedMessage,
		EncryptToSelfMessage: draft.EncryptToSelfMessage,
	}
	tx, err := newTx(body, nil)
	if err != nil {
		return nil, err
	}
	if draft.SecretPhrase == "" {
		return tx, nil
	}
	tx, err = tx.sign(draft.SecretPhrase)
	if err != nil {
		return nil, err
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (p *Pool) timestamp() uint32 {
	elapsed := p.now().Sub(EpochBeginning)
	if elapsed < 0 {
		return 0
	}
	return uint32(elapsed / time.Second)
}

// Broadcast validates the transaction and adds it to the pool. Rebroadcasting
// a known transaction is not an error.
func (p *Pool) Broadcast(ctx context.Context, tx Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !tx.Signed() {
		return ErrUnsigned
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	poolTx, ok := tx.(*Tx)
	if !ok {
		// Foreign implementations are normalized through their byte form
		parsed, err := Codec{}.ParseBytes(tx.Bytes())
		if err != nil {
			return err
		}
		poolTx = parsed.(*Tx)
	}
	if !p.now().Before(poolTx.Expiration()) {
		return ErrExpired
	}
	if p.add(poolTx) && p.txAddedFunc != nil {
		p.txAddedFunc(poolTx)
	}
	return nil
}

func (p *Pool) add(tx *Tx) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.removeExpiredLocked()
	if _, exists := p.transactions[tx.Id()]; exists {
		p.logger.Debug(
			"transaction already in pool",
			"component", "transaction",
			"transaction", tx.StringId(),
		)
		return false
	}
	p.transactions[tx.Id()] = tx
	p.order = append(p.order, tx.Id())
	p.logger.Debug(
		"transaction broadcast",
		"component", "transaction",
		"transaction", tx.StringId(),
		"sender", tx.SenderId().String(),
	)
	return true
}

func (p *Pool) removeExpiredLocked() {
	now := p.now()
	kept := p.order[:0]
	for _, id := range p.order {
		if !now.Before(p.transactions[id].Expiration()) {
			delete(p.transactions, id)
			continue
		}
		kept = append(kept, id)
	}
	p.order = kept
}

// Transaction returns a pooled transaction by ID
func (p *Pool) Transaction(id uint64) (*Tx, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	tx, ok := p.transactions[id]
	return tx, ok
}

// Transactions returns the pooled transactions in broadcast order
func (p *Pool) Transactions() []*Tx {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	ret := make([]*Tx, 0, len(p.order))
	for _, id := range p.order {
		ret = append(ret, p.transactions[id])
	}
	return ret
}
