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

// Package ledger defines the domain types this API layer resolves request
// parameters into, together with the read-only state interfaces it uses to
// look them up.
//
// # Key Files by Purpose
//
// Interfaces:
//   - state.go: LedgerState and its child lookups (accounts, aliases, assets, goods, chain)
//
// Core Types:
//   - account.go: AccountId parsing/formatting and Account
//   - entity.go: Alias, Asset, Goods and Block
//   - attachment.go: Attachment interface and the operation payloads
//   - escrow.go: escrow deadline decisions
//   - crypto.go: key derivation and encrypted messages
//
// # Testing
//
// Use MockLedgerState from internal/test/ledger for anything that needs a
// LedgerState.
package ledger
