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

package test_ledger

import (
	"errors"
	"sort"
	"sync/atomic"

	"github.com/blinklabs-io/nodeapi/ledger"
)

// Compile-time checks that MockLedgerState implements LedgerState and all child interfaces
var (
	_ ledger.LedgerState  = (*MockLedgerState)(nil)
	_ ledger.AccountState = (*MockLedgerState)(nil)
	_ ledger.AliasState   = (*MockLedgerState)(nil)
	_ ledger.AssetState   = (*MockLedgerState)(nil)
	_ ledger.GoodsState   = (*MockLedgerState)(nil)
	_ ledger.ChainState   = (*MockLedgerState)(nil)
	_ ledger.BlockState   = (*MockLedgerState)(nil)
)

// ErrLookupFailed is what the *Func fields conventionally return to simulate a failing store
var ErrLookupFailed = errors.New("lookup failed")

// MockLedgerState is the canonical internal mock used by tests. Populate the
// maps for simple lookups, or set a *Func field to override a lookup entirely.
// Lookups are counted so tests can assert the resolver has no hidden side effects.
type MockLedgerState struct {
	Accounts map[ledger.AccountId]*ledger.Account
	Aliases  map[uint64]*ledger.Alias
	Assets   map[uint64]*ledger.Asset
	Goods    map[uint64]*ledger.Goods
	Blocks   []ledger.Block

	HeightVal            int
	MinRollbackHeightVal int

	AccountByIdFunc       func(ledger.AccountId) (*ledger.Account, error)
	AliasByIdFunc         func(uint64) (*ledger.Alias, error)
	AliasByNameFunc       func(string) (*ledger.Alias, error)
	AssetByIdFunc         func(uint64) (*ledger.Asset, error)
	GoodsByIdFunc         func(uint64) (*ledger.Goods, error)
	BlocksByGeneratorFunc func(ledger.AccountId, int, int, int) ([]ledger.Block, error)

	accountLookups atomic.Int64
}

// AddAccount creates an account keyed by the public key of the secret phrase
func (m *MockLedgerState) AddAccount(
	secretPhrase string,
	balanceNQT uint64,
) *ledger.Account {
	pubKey := ledger.PublicKeyFromSecretPhrase(secretPhrase)
	account := &ledger.Account{
		Id:                    ledger.AccountIdFromPublicKey(pubKey),
		BalanceNQT:            balanceNQT,
		UnconfirmedBalanceNQT: balanceNQT,
		PublicKey:             pubKey,
	}
	m.PutAccount(account)
	return account
}

// PutAccount stores an account under its ID
func (m *MockLedgerState) PutAccount(account *ledger.Account) {
	if m.Accounts == nil {
		m.Accounts = map[ledger.AccountId]*ledger.Account{}
	}
	m.Accounts[account.Id] = account
}

// AccountLookups returns how many account lookups have been made
func (m *MockLedgerState) AccountLookups() int64 {
	return m.accountLookups.Load()
}

func (m *MockLedgerState) AccountById(
	id ledger.AccountId,
) (*ledger.Account, error) {
	m.accountLookups.Add(1)
	if m.AccountByIdFunc != nil {
		return m.AccountByIdFunc(id)
	}
	return m.Accounts[id], nil
}

func (m *MockLedgerState) AliasById(id uint64) (*ledger.Alias, error) {
	if m.AliasByIdFunc != nil {
		return m.AliasByIdFunc(id)
	}
	return m.Aliases[id], nil
}

func (m *MockLedgerState) AliasByName(name string) (*ledger.Alias, error) {
	if m.AliasByNameFunc != nil {
		return m.AliasByNameFunc(name)
	}
	for _, alias := range m.Aliases {
		if alias.Name == name {
			return alias, nil
		}
	}
	return nil, nil
}

func (m *MockLedgerState) AssetById(id uint64) (*ledger.Asset, error) {
	if m.AssetByIdFunc != nil {
		return m.AssetByIdFunc(id)
	}
	return m.Assets[id], nil
}

func (m *MockLedgerState) GoodsById(id uint64) (*ledger.Goods, error) {
	if m.GoodsByIdFunc != nil {
		return m.GoodsByIdFunc(id)
	}
	return m.Goods[id], nil
}

func (m *MockLedgerState) Height() int {
	return m.HeightVal
}

func (m *MockLedgerState) MinRollbackHeight() int {
	return m.MinRollbackHeightVal
}

func (m *MockLedgerState) BlocksByGenerator(
	generator ledger.AccountId,
	timestamp int,
	firstIndex int,
	lastIndex int,
) ([]ledger.Block, error) {
	if m.BlocksByGeneratorFunc != nil {
		return m.BlocksByGeneratorFunc(generator, timestamp, firstIndex, lastIndex)
	}
	var matched []ledger.Block
	for _, block := range m.Blocks {
		if block.GeneratorId == generator && block.Timestamp >= timestamp {
			matched = append(matched, block)
		}
	}
	// Newest first
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Height > matched[j].Height
	})
	if firstIndex >= len(matched) || lastIndex < firstIndex {
		return nil, nil
	}
	end := len(matched)
	if lastIndex < end-1 {
		end = lastIndex + 1
	}
	return matched[firstIndex:end], nil
}
