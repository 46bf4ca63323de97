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

package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/transaction"
	"github.com/blinklabs-io/nodeapi/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveUser(
	m *user.Manager,
	method string,
	remoteAddr string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/user", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTPPendingResponses(t *testing.T) {
	m := newManager(t, user.Config{AllowedHosts: []string{"127.0.0.1"}})
	rec := serveUser(m, http.MethodGet, "127.0.0.1:5000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"responses":[]}`, rec.Body.String())

	m.NotifyNewData(map[string]any{"addedBlocks": 1})
	rec = serveUser(m, http.MethodGet, "127.0.0.1:5001")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(
		t,
		`{"responses":[{"addedBlocks":1,"response":"processNewData"}]}`,
		rec.Body.String(),
	)
	// Responses are drained once delivered
	rec = serveUser(m, http.MethodGet, "127.0.0.1:5002")
	assert.JSONEq(t, `{"responses":[]}`, rec.Body.String())

	rec = serveUser(m, http.MethodDelete, "127.0.0.1:5003")
	assert.JSONEq(t, `{"removed":true}`, rec.Body.String())
	assert.Empty(t, m.Users())
	rec = serveUser(m, http.MethodDelete, "127.0.0.1:5004")
	assert.JSONEq(t, `{"removed":false}`, rec.Body.String())
}

func TestServeHTTPRejected(t *testing.T) {
	m := newManager(t, user.Config{AllowedHosts: []string{"127.0.0.1"}})
	rec := serveUser(m, http.MethodGet, "10.1.2.3:5000")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, m.Users())

	rec = serveUser(m, http.MethodPost, "127.0.0.1:5000")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTransactionAdded(t *testing.T) {
	m := newManager(t, user.Config{})
	u := m.GetUser("a")
	pool := transaction.NewPool(transaction.WithTxAddedFunc(m.TransactionAdded))
	ctx := context.Background()
	tx, err := pool.CreateTransaction(ctx, transaction.Draft{
		SenderPublicKey: ledger.PublicKeyFromSecretPhrase("user test sender"),
		RecipientId:     7,
		AmountNQT:       ledger.OneCoinNQT,
		FeeNQT:          ledger.OneCoinNQT,
		Deadline:        60,
		SecretPhrase:    "user test sender",
	})
	require.NoError(t, err)
	require.NoError(t, pool.Broadcast(ctx, tx))

	pending := u.PendingResponses()
	require.Len(t, pending, 1)
	data, err := json.Marshal(pending[0])
	require.NoError(t, err)
	var resp struct {
		Response string `json:"response"`
		Added    []struct {
			Index       int    `json:"index"`
			Transaction string `json:"transaction"`
		} `json:"addedUnconfirmedTransactions"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "processNewData", resp.Response)
	require.Len(t, resp.Added, 1)
	assert.Equal(t, 1, resp.Added[0].Index)
	assert.Equal(t, tx.StringId(), resp.Added[0].Transaction)
}
