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

package user

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/blinklabs-io/nodeapi/transaction"
)

// TransactionAdded notifies every user of a transaction that entered the pool.
// It has the signature of transaction.TxAddedFunc.
func (m *Manager) TransactionAdded(tx *transaction.Tx) {
	entry := tx.JSON()
	entry["index"] = m.TransactionIndex(tx.Id())
	m.NotifyNewData(map[string]any{
		"addedUnconfirmedTransactions": []map[string]any{entry},
	})
}

// ServeHTTP serves the calling host's session. GET drains and returns the
// queued responses and DELETE ends the session.
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !m.AllowedHost(host) {
		http.Error(w, "Not allowed", http.StatusForbidden)
		return
	}
	switch r.Method {
	case http.MethodGet:
		responses := m.GetUser(host).PendingResponses()
		if responses == nil {
			responses = []any{}
		}
		m.writeJSON(w, map[string]any{"responses": responses})
	case http.MethodDelete:
		removed := m.Remove(host) != nil
		m.writeJSON(w, map[string]any{"removed": removed})
	default:
		w.Header().Set("Allow", "GET, DELETE")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (m *Manager) writeJSON(w http.ResponseWriter, resp any) {
	body, err := json.Marshal(resp)
	if err != nil {
		m.config.Logger.Error(
			"failed to render user response",
			"component", "user",
			"error", err,
		)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if _, err := w.Write(body); err != nil {
		m.config.Logger.Debug(
			"failed to write user response",
			"component", "user",
			"error", err,
		)
	}
}
