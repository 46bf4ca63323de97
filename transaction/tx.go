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
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/blinklabs-io/nodeapi/cbor"
	"github.com/blinklabs-io/nodeapi/ledger"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	TxVersion          = 1
	MaxDeadlineMinutes = 1440
	FullHashSize       = blake2b.Size256
)

// EpochBeginning is the origin of transaction timestamps
var EpochBeginning = time.Date(2014, time.August, 11, 2, 0, 0, 0, time.UTC)

var (
	ErrUnsigned         = errors.New("transaction is not signed")
	ErrInvalidSignature = errors.New("invalid transaction signature")
	ErrKeyMismatch      = errors.New(
		"secret phrase does not match sender public key",
	)
)

// ValidationError describes a transaction field that breaks a ledger rule
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TxBody is the signed portion of a transaction
type TxBody struct {
	cbor.StructAsArray
	Version                       uint8
	Timestamp                     uint32
	Deadline                      uint16
	SenderPublicKey               []byte
	RecipientId                   ledger.AccountId
	AmountNQT                     uint64
	FeeNQT                        uint64
	ReferencedTransactionFullHash []byte
	Attachment                    *ledger.AttachmentWrapper
	Message                       []byte
	MessageIsText                 bool
	EncryptedMessage              *ledger.EncryptedData
	EncryptToSelfMessage          *ledger.EncryptedData
}

// Tx is the CBOR-encoded transaction produced by the Pool and accepted by the Codec
type Tx struct {
	cbor.StructAsArray
	Body          TxBody
	Signature     []byte
	unsignedBytes []byte
	txBytes       []byte
	fullHash      []byte
}

// newTx encodes the transaction and caches its bytes and hash
func newTx(body TxBody, signature []byte) (*Tx, error) {
	t := &Tx{
		Body:      body,
		Signature: signature,
	}
	if err := t.seal(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tx) seal() error {
	unsignedBytes, err := cbor.Encode(&t.Body)
	if err != nil {
		return fmt.Errorf("failed to encode transaction body: %w", err)
	}
	txBytes, err := cbor.Encode(t)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	hasher.Write(unsignedBytes)
	hasher.Write(t.Signature)
	t.unsignedBytes = unsignedBytes
	t.txBytes = txBytes
	t.fullHash = hasher.Sum(nil)
	return nil
}

// sign returns a copy of the transaction signed with the secret phrase
func (t *Tx) sign(secretPhrase string) (*Tx, error) {
	privKey := ledger.PrivateKeyFromSecretPhrase(secretPhrase)
	if !bytes.Equal(
		privKey.Public().(ed25519.PublicKey),
		t.Body.SenderPublicKey,
	) {
		return nil, ErrKeyMismatch
	}
	return newTx(t.Body, ed25519.Sign(privKey, t.unsignedBytes))
}

func (t *Tx) Id() uint64 {
	return binary.BigEndian.Uint64(t.fullHash[:8])
}

func (t *Tx) StringId() string {
	return strconv.FormatUint(t.Id(), 10)
}

func (t *Tx) FullHash() []byte {
	return bytes.Clone(t.fullHash)
}

func (t *Tx) Bytes() []byte {
	return bytes.Clone(t.txBytes)
}

func (t *Tx) UnsignedBytes() []byte {
	return bytes.Clone(t.unsignedBytes)
}

func (t *Tx) Signed() bool {
	return len(t.Signature) > 0
}

func (t *Tx) SenderId() ledger.AccountId {
	return ledger.AccountIdFromPublicKey(t.Body.SenderPublicKey)
}

// SignatureHash is the hash of the signature, or nil when unsigned
func (t *Tx) SignatureHash() []byte {
	if !t.Signed() {
		return nil
	}
	hash := blake2b.Sum256(t.Signature)
	return hash[:]
}

// Expiration is the time after which the transaction can no longer be included
func (t *Tx) Expiration() time.Time {
	return EpochBeginning.Add(
		time.Duration(t.Body.Timestamp)*time.Second +
			time.Duration(t.Body.Deadline)*time.Minute,
	)
}

// Validate checks the transaction against the ledger rules that do not depend on chain state
func (t *Tx) Validate() error {
	b := &t.Body
	if b.Version != TxVersion {
		return ValidationError{
			Field:  "version",
			Reason: fmt.Sprintf("unsupported version %d", b.Version),
		}
	}
	if len(b.SenderPublicKey) != ed25519.PublicKeySize {
		return ValidationError{
			Field:  "senderPublicKey",
			Reason: fmt.Sprintf("length %d", len(b.SenderPublicKey)),
		}
	}
	if b.Deadline < 1 || b.Deadline > MaxDeadlineMinutes {
		return ValidationError{
			Field:  "deadline",
			Reason: fmt.Sprintf("%d is not in 1-%d", b.Deadline, MaxDeadlineMinutes),
		}
	}
	if b.AmountNQT >= ledger.MaxBalanceNQT {
		return ValidationError{Field: "amountNQT", Reason: "too large"}
	}
	if b.FeeNQT >= ledger.MaxBalanceNQT {
		return ValidationError{Field: "feeNQT", Reason: "too large"}
	}
	if len(b.ReferencedTransactionFullHash) != 0 &&
		len(b.ReferencedTransactionFullHash) != FullHashSize {
		return ValidationError{
			Field:  "referencedTransactionFullHash",
			Reason: fmt.Sprintf("length %d", len(b.ReferencedTransactionFullHash)),
		}
	}
	if b.Attachment == nil || b.Attachment.Attachment == nil {
		return ValidationError{Field: "attachment", Reason: "missing"}
	}
	if v, ok := b.Attachment.Attachment.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return ValidationError{Field: "attachment", Reason: err.Error()}
		}
	}
	if len(b.Message) > ledger.MaxArbitraryMessageLength {
		return ValidationError{Field: "message", Reason: "too long"}
	}
	for field, msg := range map[string]*ledger.EncryptedData{
		"encryptedMessage":     b.EncryptedMessage,
		"encryptToSelfMessage": b.EncryptToSelfMessage,
	} {
		if msg != nil &&
			len(msg.Data) > ledger.MaxEncryptedMessageLength+chacha20poly1305.Overhead {
			return ValidationError{Field: field, Reason: "too long"}
		}
	}
	if t.Signed() &&
		!ed25519.Verify(b.SenderPublicKey, t.unsignedBytes, t.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

// JSON renders the transaction in the form accepted by Codec.ParseJSON
func (t *Tx) JSON() map[string]any {
	b := &t.Body
	senderId := t.SenderId()
	attachmentJSON := map[string]any{}
	var attachmentBytes []byte
	if b.Attachment != nil && b.Attachment.Attachment != nil {
		for k, v := range b.Attachment.Attachment.JSON() {
			attachmentJSON[k] = v
		}
		attachmentBytes, _ = cbor.Encode(b.Attachment)
	}
	ret := map[string]any{
		"version":         b.Version,
		"timestamp":       b.Timestamp,
		"deadline":        b.Deadline,
		"senderPublicKey": hex.EncodeToString(b.SenderPublicKey),
		"sender":          senderId.String(),
		"senderRS":        senderId.Address(),
		"amountNQT":       strconv.FormatUint(b.AmountNQT, 10),
		"feeNQT":          strconv.FormatUint(b.FeeNQT, 10),
		"attachment":      attachmentJSON,
		"attachmentBytes": hex.EncodeToString(attachmentBytes),
		"transaction":     t.StringId(),
		"fullHash":        hex.EncodeToString(t.fullHash),
	}
	if b.Attachment != nil {
		ret["type"] = b.Attachment.Type
	}
	if b.RecipientId != 0 {
		ret["recipient"] = b.RecipientId.String()
		ret["recipientRS"] = b.RecipientId.Address()
	}
	if len(b.ReferencedTransactionFullHash) > 0 {
		ret["referencedTransactionFullHash"] = hex.EncodeToString(
			b.ReferencedTransactionFullHash,
		)
	}
	if len(b.Message) > 0 {
		ret["message"] = hex.EncodeToString(b.Message)
		ret["messageIsText"] = b.MessageIsText
	}
	if b.EncryptedMessage != nil {
		ret["encryptedMessage"] = encryptedDataToJSON(b.EncryptedMessage)
	}
	if b.EncryptToSelfMessage != nil {
		ret["encryptToSelfMessage"] = encryptedDataToJSON(b.EncryptToSelfMessage)
	}
	if t.Signed() {
		ret["signature"] = hex.EncodeToString(t.Signature)
		ret["signatureHash"] = hex.EncodeToString(t.SignatureHash())
	}
	return ret
}

func encryptedDataToJSON(data *ledger.EncryptedData) map[string]string {
	return map[string]string{
		"data":  hex.EncodeToString(data.Data),
		"nonce": hex.EncodeToString(data.Nonce),
	}
}
