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

package transaction_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	senderSecret    = "transaction sender secret"
	recipientSecret = "transaction recipient secret"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func escrowAttachment(t *testing.T) *ledger.EscrowCreation {
	t.Helper()
	att, err := ledger.NewEscrowCreation(
		ledger.OneCoinNQT,
		3600,
		ledger.EscrowDecisionSplit,
		1,
		[]ledger.AccountId{1, 2},
	)
	require.NoError(t, err)
	return att
}

func newDraft(t *testing.T, secretPhrase string) transaction.Draft {
	return transaction.Draft{
		SenderPublicKey: ledger.PublicKeyFromSecretPhrase(senderSecret),
		RecipientId: ledger.AccountIdFromPublicKey(
			ledger.PublicKeyFromSecretPhrase(recipientSecret),
		),
		AmountNQT:     ledger.OneCoinNQT,
		FeeNQT:        ledger.OneCoinNQT,
		Deadline:      60,
		Attachment:    escrowAttachment(t),
		SecretPhrase:  secretPhrase,
		Message:       []byte("hi"),
		MessageIsText: true,
	}
}

func TestCreateSignedTransaction(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, senderSecret),
	)
	require.NoError(t, err)
	assert.True(t, tx.Signed())
	require.NoError(t, tx.Validate())
	assert.Len(t, tx.FullHash(), transaction.FullHashSize)
	assert.NotEqual(t, tx.Bytes(), tx.UnsignedBytes())

	poolTx := tx.(*transaction.Tx)
	assert.Equal(
		t,
		uint32(testNow.Sub(transaction.EpochBeginning)/time.Second),
		poolTx.Body.Timestamp,
	)
	assert.Equal(t, testNow.Add(time.Hour), poolTx.Expiration())
}

func TestCreateUnsignedTransaction(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(context.Background(), newDraft(t, ""))
	require.NoError(t, err)
	assert.False(t, tx.Signed())
	require.NoError(t, tx.Validate())
}

func TestCreateTransactionKeyMismatch(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	_, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, recipientSecret),
	)
	assert.ErrorIs(t, err, transaction.ErrKeyMismatch)
}

func TestCreateTransactionValidation(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	draft := newDraft(t, senderSecret)
	draft.Deadline = transaction.MaxDeadlineMinutes + 1
	_, err := pool.CreateTransaction(context.Background(), draft)
	var validationErr transaction.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "deadline", validationErr.Field)

	draft = newDraft(t, senderSecret)
	draft.ReferencedTransactionFullHash = []byte{1, 2, 3}
	_, err = pool.CreateTransaction(context.Background(), draft)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "referencedTransactionFullHash", validationErr.Field)
}

func TestCodecParseBytes(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, senderSecret),
	)
	require.NoError(t, err)

	parsed, err := transaction.Codec{}.ParseBytes(tx.Bytes())
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())
	assert.Equal(t, tx.Id(), parsed.Id())
	assert.Equal(t, tx.FullHash(), parsed.FullHash())
	parsedTx := parsed.(*transaction.Tx)
	escrow, ok := parsedTx.Body.Attachment.Attachment.(*ledger.EscrowCreation)
	require.True(t, ok)
	assert.Equal(t, []ledger.AccountId{1, 2}, escrow.Signers)
	assert.Equal(t, ledger.EscrowDecisionSplit, escrow.DeadlineAction)

	_, err = transaction.Codec{}.ParseBytes([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestCodecParseJSON(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, senderSecret),
	)
	require.NoError(t, err)
	txJSON, err := json.Marshal(tx.JSON())
	require.NoError(t, err)

	parsed, err := transaction.Codec{}.ParseJSON(txJSON)
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())
	assert.Equal(t, tx.StringId(), parsed.StringId())
	assert.Equal(t, tx.Bytes(), parsed.Bytes())

	_, err = transaction.Codec{}.ParseJSON([]byte(`{"senderPublicKey":"zz"}`))
	assert.Error(t, err)
}

func TestTamperedSignature(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, senderSecret),
	)
	require.NoError(t, err)
	txJSON := tx.JSON()
	txJSON["amountNQT"] = "2"
	data, err := json.Marshal(txJSON)
	require.NoError(t, err)
	parsed, err := transaction.Codec{}.ParseJSON(data)
	require.NoError(t, err)
	assert.ErrorIs(t, parsed.Validate(), transaction.ErrInvalidSignature)
}

func TestTransactionJSON(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	tx, err := pool.CreateTransaction(
		context.Background(),
		newDraft(t, senderSecret),
	)
	require.NoError(t, err)
	txJSON := tx.JSON()
	assert.Equal(t, tx.StringId(), txJSON["transaction"])
	assert.Equal(t, hex.EncodeToString([]byte("hi")), txJSON["message"])
	assert.Equal(t, uint(ledger.AttachmentTypeEscrowCreation), txJSON["type"])
	attachmentJSON := txJSON["attachment"].(map[string]any)
	assert.Equal(t, "split", attachmentJSON["deadlineAction"])
	assert.Contains(t, txJSON, "signatureHash")
}

func TestTransactionJSONEncryptedMessages(t *testing.T) {
	pool := transaction.NewPool(transaction.WithPoolClock(fixedClock))
	draft := newDraft(t, senderSecret)
	draft.EncryptedMessage = &ledger.EncryptedData{
		Data:  []byte{1, 2, 3},
		Nonce: []byte{4, 5},
	}
	draft.EncryptToSelfMessage = &ledger.EncryptedData{
		Data:  []byte{6},
		Nonce: []byte{7},
	}
	tx, err := pool.CreateTransaction(context.Background(), draft)
	require.NoError(t, err)
	txJSON := tx.JSON()
	assert.Equal(
		t,
		map[string]string{"data": "010203", "nonce": "0405"},
		txJSON["encryptedMessage"],
	)
	assert.Equal(
		t,
		map[string]string{"data": "06", "nonce": "07"},
		txJSON["encryptToSelfMessage"],
	)

	data, err := json.Marshal(txJSON)
	require.NoError(t, err)
	parsed, err := transaction.Codec{}.ParseJSON(data)
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())
	assert.Equal(t, tx.Bytes(), parsed.Bytes())
}
