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
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/nodeapi/cbor"
	"github.com/blinklabs-io/nodeapi/ledger"
)

// Codec parses transactions in the byte and JSON forms produced by Tx
type Codec struct{}

var _ Parser = Codec{}

func (Codec) ParseBytes(txBytes []byte) (Transaction, error) {
	var tx Tx
	if _, err := cbor.Decode(txBytes, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	if err := tx.seal(); err != nil {
		return nil, err
	}
	return &tx, nil
}

type txJSON struct {
	Version                       uint8              `json:"version"`
	Timestamp                     uint32             `json:"timestamp"`
	Deadline                      uint16             `json:"deadline"`
	SenderPublicKey               string             `json:"senderPublicKey"`
	Recipient                     string             `json:"recipient"`
	AmountNQT                     string             `json:"amountNQT"`
	FeeNQT                        string             `json:"feeNQT"`
	ReferencedTransactionFullHash string             `json:"referencedTransactionFullHash"`
	AttachmentBytes               string             `json:"attachmentBytes"`
	Message                       string             `json:"message"`
	MessageIsText                 bool               `json:"messageIsText"`
	EncryptedMessage              *encryptedDataJSON `json:"encryptedMessage"`
	EncryptToSelfMessage          *encryptedDataJSON `json:"encryptToSelfMessage"`
	Signature                     string             `json:"signature"`
}

type encryptedDataJSON struct {
	Data  string `json:"data"`
	Nonce string `json:"nonce"`
}

func (e *encryptedDataJSON) decode() (*ledger.EncryptedData, error) {
	if e == nil {
		return nil, nil
	}
	data, err := hex.DecodeString(e.Data)
	if err != nil {
		return nil, err
	}
	nonce, err := hex.DecodeString(e.Nonce)
	if err != nil {
		return nil, err
	}
	return &ledger.EncryptedData{Data: data, Nonce: nonce}, nil
}

func (Codec) ParseJSON(data []byte) (Transaction, error) {
	var tmp txJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("failed to decode transaction JSON: %w", err)
	}
	body := TxBody{
		Version:       tmp.Version,
		Timestamp:     tmp.Timestamp,
		Deadline:      tmp.Deadline,
		MessageIsText: tmp.MessageIsText,
	}
	var err error
	if body.SenderPublicKey, err = hex.DecodeString(tmp.SenderPublicKey); err != nil {
		return nil, fieldError("senderPublicKey", err)
	}
	if tmp.Recipient != "" {
		if body.RecipientId, err = ledger.ParseAccountId(tmp.Recipient); err != nil {
			return nil, fieldError("recipient", err)
		}
	}
	if body.AmountNQT, err = strconv.ParseUint(tmp.AmountNQT, 10, 64); err != nil {
		return nil, fieldError("amountNQT", err)
	}
	if body.FeeNQT, err = strconv.ParseUint(tmp.FeeNQT, 10, 64); err != nil {
		return nil, fieldError("feeNQT", err)
	}
	if tmp.ReferencedTransactionFullHash != "" {
		if body.ReferencedTransactionFullHash, err = hex.DecodeString(
			tmp.ReferencedTransactionFullHash,
		); err != nil {
			return nil, fieldError("referencedTransactionFullHash", err)
		}
	}
	if tmp.AttachmentBytes == "" {
		return nil, fieldError("attachmentBytes", errors.New("missing"))
	}
	attachmentBytes, err := hex.DecodeString(tmp.AttachmentBytes)
	if err != nil {
		return nil, fieldError("attachmentBytes", err)
	}
	body.Attachment = &ledger.AttachmentWrapper{}
	if _, err := cbor.Decode(attachmentBytes, body.Attachment); err != nil {
		return nil, fieldError("attachmentBytes", err)
	}
	if tmp.Message != "" {
		if body.Message, err = hex.DecodeString(tmp.Message); err != nil {
			return nil, fieldError("message", err)
		}
	}
	if body.EncryptedMessage, err = tmp.EncryptedMessage.decode(); err != nil {
		return nil, fieldError("encryptedMessage", err)
	}
	if body.EncryptToSelfMessage, err = tmp.EncryptToSelfMessage.decode(); err != nil {
		return nil, fieldError("encryptToSelfMessage", err)
	}
	var signature []byte
	if tmp.Signature != "" {
		if signature, err = hex.DecodeString(tmp.Signature); err != nil {
			return nil, fieldError("signature", err)
		}
	}
	return newTx(body, signature)
}

func fieldError(field string, err error) error {
	return fmt.Errorf("failed to decode transaction JSON field %s: %w", field, err)
}
