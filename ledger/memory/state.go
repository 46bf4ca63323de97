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

package memory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blinklabs-io/nodeapi/ledger"
)

// DefaultRollbackDepth is the number of blocks below the tip that remain available
const DefaultRollbackDepth = 1440

var _ ledger.LedgerState = (*State)(nil)

type StateOptionFunc func(*State)

// WithRollbackDepth specifies how many blocks below the tip remain available
func WithRollbackDepth(depth int) StateOptionFunc {
	return func(s *State) {
		s.rollbackDepth = depth
	}
}

type State struct {
	mutex         sync.RWMutex
	rollbackDepth int
	accounts      map[ledger.AccountId]*ledger.Account
	aliases       map[uint64]*ledger.Alias
	aliasNames    map[string]uint64
	assets        map[uint64]*ledger.Asset
	goods         map[uint64]*ledger.Goods
	blocks        []ledger.Block
}

func New(opts ...StateOptionFunc) *State {
	s := &State{
		rollbackDepth: DefaultRollbackDepth,
		accounts:      make(map[ledger.AccountId]*ledger.Account),
		aliases:       make(map[uint64]*ledger.Alias),
		aliasNames:    make(map[string]uint64),
		assets:        make(map[uint64]*ledger.Asset),
		goods:         make(map[uint64]*ledger.Goods),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rollbackDepth < 0 {
		s.rollbackDepth = 0
	}
	return s
}

// PutAccount stores a copy of the account
func (s *State) PutAccount(account *ledger.Account) error {
	if account == nil {
		return errors.New("nil account")
	}
	tmp, err := account.Clone()
	if err != nil {
		return fmt.Errorf("failed to copy account: %w", err)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.accounts[tmp.Id] = tmp
	return nil
}

// AccountById returns a copy of the stored account
func (s *State) AccountById(id ledger.AccountId) (*ledger.Account, error) {
	s.mutex.RLock()
	account, ok := s.accounts[id]
	s.mutex.RUnlock()
	if !ok {
		return nil, nil
	}
	return account.Clone()
}

// PutAlias stores the alias. Alias names are unique regardless of case.
func (s *State) PutAlias(alias ledger.Alias) error {
	name := strings.ToLower(alias.Name)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if existing, ok := s.aliasNames[name]; ok && existing != alias.Id {
		return fmt.Errorf("alias name %q already taken", alias.Name)
	}
	if old, ok := s.aliases[alias.Id]; ok {
		delete(s.aliasNames, strings.ToLower(old.Name))
	}
	s.aliases[alias.Id] = &alias
	s.aliasNames[name] = alias.Id
	return nil
}

func (s *State) AliasById(id uint64) (*ledger.Alias, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	alias, ok := s.aliases[id]
	if !ok {
		return nil, nil
	}
	ret := *alias
	return &ret, nil
}

func (s *State) AliasByName(name string) (*ledger.Alias, error) {
	s.mutex.RLock()
	id, ok := s.aliasNames[strings.ToLower(name)]
	s.mutex.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.AliasById(id)
}

func (s *State) PutAsset(asset ledger.Asset) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.assets[asset.Id] = &asset
}

func (s *State) AssetById(id uint64) (*ledger.Asset, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	asset, ok := s.assets[id]
	if !ok {
		return nil, nil
	}
	ret := *asset
	return &ret, nil
}

func (s *State) PutGoods(goods ledger.Goods) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.goods[goods.Id] = &goods
}

func (s *State) GoodsById(id uint64) (*ledger.Goods, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	goods, ok := s.goods[id]
	if !ok {
		return nil, nil
	}
	ret := *goods
	return &ret, nil
}

// AddBlock appends a block to the chain. Its height must follow the current tip.
func (s *State) AddBlock(block ledger.Block) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	expected := len(s.blocks)
	if block.Height != expected {
		return fmt.Errorf(
			"unexpected block height: got %d, want %d",
			block.Height,
			expected,
		)
	}
	block.TransactionIds = append([]uint64(nil), block.TransactionIds...)
	s.blocks = append(s.blocks, block)
	return nil
}

// Height is the height of the newest block, or 0 for an empty chain
func (s *State) Height() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.heightLocked()
}

func (s *State) heightLocked() int {
	if len(s.blocks) == 0 {
		return 0
	}
	return s.blocks[len(s.blocks)-1].Height
}

func (s *State) MinRollbackHeight() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return max(0, s.heightLocked()-s.rollbackDepth)
}

func (s *State) BlocksByGenerator(
	generator ledger.AccountId,
	timestamp int,
	firstIndex int,
	lastIndex int,
) ([]ledger.Block, error) {
	if firstIndex < 0 || lastIndex < firstIndex {
		return nil, nil
	}
	s.mutex.RLock()
	// Blocks are stored in height order, so walking backwards yields newest first
	var matched []ledger.Block
	for i := len(s.blocks) - 1; i >= 0; i-- {
		block := s.blocks[i]
		if block.GeneratorId != generator || block.Timestamp < timestamp {
			continue
		}
		block.TransactionIds = append([]uint64(nil), block.TransactionIds...)
		matched = append(matched, block)
	}
	s.mutex.RUnlock()
	if firstIndex >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if lastIndex < end-1 {
		end = lastIndex + 1
	}
	return matched[firstIndex:end], nil
}
