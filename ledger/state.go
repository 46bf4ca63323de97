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

package ledger

// Related files:
//   - internal/test/ledger/ledger.go: MockLedgerState for testing
//   - parameter/resolver.go: the main consumer of these interfaces

// Lookups return (nil, nil) when no entity matches. A non-nil error means the
// lookup itself failed.

// AccountState defines the interface for querying accounts
type AccountState interface {
	AccountById(AccountId) (*Account, error)
}

// AliasState defines the interface for querying aliases
type AliasState interface {
	AliasById(uint64) (*Alias, error)
	AliasByName(string) (*Alias, error)
}

// AssetState defines the interface for querying assets
type AssetState interface {
	AssetById(uint64) (*Asset, error)
}

// GoodsState defines the interface for querying digital goods listings
type GoodsState interface {
	GoodsById(uint64) (*Goods, error)
}

// ChainState defines the interface for querying the chain height
type ChainState interface {
	Height() int
	// MinRollbackHeight is the lowest height the node still retains state for
	MinRollbackHeight() int
}

// BlockState defines the interface for querying blocks
type BlockState interface {
	// BlocksByGenerator returns the blocks forged by the account at or after
	// the timestamp, newest first, limited to the inclusive index range
	BlocksByGenerator(
		generator AccountId,
		timestamp int,
		firstIndex int,
		lastIndex int,
	) ([]Block, error)
}

// LedgerState defines the interface for querying the ledger
type LedgerState interface {
	AccountState
	AliasState
	AssetState
	GoodsState
	ChainState
	BlockState
}
