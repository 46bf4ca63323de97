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
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/request"
)

// Response is returned for a created transaction
type Response struct {
	Transaction              string         `json:"transaction"`
	FullHash                 string         `json:"fullHash"`
	TransactionBytes         string         `json:"transactionBytes,omitempty"`
	UnsignedTransactionBytes string         `json:"unsignedTransactionBytes"`
	TransactionJSON          map[string]any `json:"transactionJSON"`
	Broadcasted              bool           `json:"broadcasted"`
	SignatureHash            string         `json:"signatureHash,omitempty"`
}

// BroadcastResponse is returned for a broadcast client transaction
type BroadcastResponse struct {
	Transaction string `json:"transaction"`
	FullHash    string `json:"fullHash"`
}

// Assembler turns a resolved sender, recipient, amount and attachment into a
// transaction using the common transaction parameters of the request
type Assembler struct {
	resolver  *parameter.Resolver
	processor Processor
	parser    Parser
	logger    *slog.Logger
}

func NewAssembler(
	resolver *parameter.Resolver,
	opts ...AssemblerOptionFunc,
) *Assembler {
	a := &Assembler{
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.processor == nil {
		a.processor = NewPool(WithPoolLogger(a.logger))
	}
	if a.parser == nil {
		a.parser = Codec{}
	}
	return a
}

func (a *Assembler) Processor() Processor {
	return a.processor
}

// Create builds the transaction and broadcasts it when the request carries a
// secret phrase and does not set "broadcast" to false
func (a *Assembler) Create(
	ctx context.Context,
	req request.Request,
	sender *ledger.Account,
	recipientId ledger.AccountId,
	amountNQT uint64,
	attachment ledger.Attachment,
) (*Response, error) {
	secretPhrase := req.Get(request.ParamSecretPhrase)
	publicKeyValue := req.Get(request.ParamPublicKey)
	broadcast := !request.IsFalse(req.Get(request.ParamBroadcast)) &&
		secretPhrase != ""

	var recipient *ledger.Account
	if recipientId != 0 {
		var err error
		recipient, err = a.resolver.State().AccountById(recipientId)
		if err != nil {
			a.logger.Debug(
				"recipient lookup failed",
				"component", "transaction",
				"error", err,
			)
		}
	}
	encryptedMessage, err := a.resolver.EncryptedMessage(req, recipient)
	if err != nil {
		return nil, err
	}
	encryptToSelfMessage, err := a.resolver.EncryptToSelfMessage(req)
	if err != nil {
		return nil, err
	}
	message, messageIsText, err := arbitraryMessage(req)
	if err != nil {
		return nil, err
	}
	if secretPhrase == "" && publicKeyValue == "" {
		return nil, apierror.MissingSecretPhrase
	}
	deadline, err := deadlineMinutes(req)
	if err != nil {
		return nil, err
	}
	feeNQT, err := feeNQT(req)
	if err != nil {
		return nil, err
	}
	referencedFullHash, err := referencedTransactionFullHash(req)
	if err != nil {
		return nil, err
	}
	totalNQT := amountNQT + feeNQT
	if totalNQT < amountNQT || totalNQT > sender.UnconfirmedBalanceNQT {
		return nil, apierror.NotEnoughFunds
	}
	var publicKey []byte
	if secretPhrase != "" {
		publicKey = ledger.PublicKeyFromSecretPhrase(secretPhrase)
	} else {
		publicKey, err = hex.DecodeString(publicKeyValue)
		if err != nil {
			return nil, apierror.IncorrectPublicKey.WithCause(err)
		}
	}

	tx, err := a.processor.CreateTransaction(ctx, Draft{
		Sender:                        sender,
		SenderPublicKey:               publicKey,
		RecipientId:                   recipientId,
		AmountNQT:                     amountNQT,
		FeeNQT:                        feeNQT,
		Deadline:                      deadline,
		Attachment:                    attachment,
		SecretPhrase:                  secretPhrase,
		Message:                       message,
		MessageIsText:                 messageIsText,
		EncryptedMessage:              encryptedMessage,
		EncryptToSelfMessage:          encryptToSelfMessage,
		ReferencedTransactionFullHash: referencedFullHash,
	})
	if err != nil {
		return nil, a.rejected(err)
	}
	resp := newResponse(tx)
	if broadcast {
		if err := a.processor.Broadcast(ctx, tx); err != nil {
			return nil, a.rejected(err)
		}
		resp.Broadcasted = true
	}
	a.logger.Debug(
		"transaction created",
		"component", "transaction",
		"transaction", tx.StringId(),
		"attachment", attachmentName(attachment),
		"broadcasted", resp.Broadcasted,
	)
	return resp, nil
}

// Broadcast parses a client-built transaction from "transactionBytes" or
// "transactionJSON", validates and broadcasts it
func (a *Assembler) Broadcast(
	ctx context.Context,
	req request.Request,
) (*BroadcastResponse, error) {
	tx, err := a.parseTransaction(req)
	if err != nil {
		return nil, err
	}
	if err := tx.Validate(); err != nil {
		return nil, a.rejected(err)
	}
	if err := a.processor.Broadcast(ctx, tx); err != nil {
		return nil, a.rejected(err)
	}
	return &BroadcastResponse{
		Transaction: tx.StringId(),
		FullHash:    hex.EncodeToString(tx.FullHash()),
	}, nil
}

func (a *Assembler) parseTransaction(req request.Request) (Transaction, error) {
	txBytesValue := req.Get(request.ParamTransactionBytes)
	txJSONValue := req.Get(request.ParamTransactionJSON)
	switch {
	case txBytesValue != "":
		txBytes, err := hex.DecodeString(txBytesValue)
		if err != nil {
			return nil, apierror.IncorrectTransactionBytes.WithCause(err)
		}
		tx, err := a.parser.ParseBytes(txBytes)
		if err != nil {
			return nil, apierror.IncorrectTransactionBytes.WithCause(err)
		}
		return tx, nil
	case txJSONValue != "":
		tx, err := a.parser.ParseJSON([]byte(txJSONValue))
		if err != nil {
			return nil, apierror.IncorrectTransactionJSON.WithCause(err)
		}
		return tx, nil
	default:
		return nil, apierror.MissingTransactionBytesOrJSON
	}
}

// rejected maps a processor failure onto the API error reported to the client
func (a *Assembler) rejected(err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	a.logger.Info(
		"transaction rejected",
		"component", "transaction",
		"error", err,
	)
	return apierror.IncorrectTransaction(err)
}

func newResponse(tx Transaction) *Response {
	resp := &Response{
		Transaction:              tx.StringId(),
		FullHash:                 hex.EncodeToString(tx.FullHash()),
		UnsignedTransactionBytes: hex.EncodeToString(tx.UnsignedBytes()),
		TransactionJSON:          tx.JSON(),
	}
	if tx.Signed() {
		resp.TransactionBytes = hex.EncodeToString(tx.Bytes())
		if s, ok := tx.(interface{ SignatureHash() []byte }); ok {
			resp.SignatureHash = hex.EncodeToString(s.SignatureHash())
		}
	}
	return resp
}

func attachmentName(attachment ledger.Attachment) string {
	if attachment == nil {
		return "OrdinaryPayment"
	}
	return attachment.Name()
}

func arbitraryMessage(req request.Request) ([]byte, bool, error) {
	messageValue := req.Get(request.ParamMessage)
	if messageValue == "" {
		return nil, false, nil
	}
	isText := !request.IsFalse(req.Get(request.ParamMessageIsText))
	var message []byte
	if isText {
		message = []byte(messageValue)
	} else {
		var err error
		message, err = hex.DecodeString(messageValue)
		if err != nil {
			return nil, false, apierror.IncorrectArbitraryMessage.WithCause(err)
		}
	}
	if len(message) > ledger.MaxArbitraryMessageLength {
		return nil, false, apierror.IncorrectArbitraryMessage
	}
	return message, isText, nil
}

func deadlineMinutes(req request.Request) (uint16, error) {
	deadlineValue := req.Get(request.ParamDeadline)
	if deadlineValue == "" {
		return 0, apierror.MissingDeadline
	}
	deadline, err := strconv.ParseInt(deadlineValue, 10, 16)
	if err != nil {
		return 0, apierror.IncorrectDeadline.WithCause(err)
	}
	if deadline < 1 || deadline > MaxDeadlineMinutes {
		return 0, apierror.IncorrectDeadline
	}
	return uint16(deadline), nil
}

func feeNQT(req request.Request) (uint64, error) {
	feeValue := req.Get(request.ParamFeeNQT)
	if feeValue == "" {
		return 0, apierror.MissingFee
	}
	fee, err := strconv.ParseInt(feeValue, 10, 64)
	if err != nil {
		return 0, apierror.IncorrectFee.WithCause(err)
	}
	if fee < 0 || uint64(fee) >= ledger.MaxBalanceNQT {
		return 0, apierror.IncorrectFee
	}
	return uint64(fee), nil
}

func referencedTransactionFullHash(req request.Request) ([]byte, error) {
	value := req.Get(request.ParamReferencedTransactionFullHash)
	if value == "" {
		return nil, nil
	}
	hash, err := hex.DecodeString(value)
	if err != nil {
		return nil, apierror.IncorrectReferencedTransaction.WithCause(err)
	}
	if len(hash) != FullHashSize {
		return nil, apierror.IncorrectReferencedTransaction
	}
	return hash, nil
}
