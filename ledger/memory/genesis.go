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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/blinklabs-io/nodeapi/ledger"
)

// Genesis describes the initial contents of an in-memory ledger
type Genesis struct {
	Accounts []GenesisAccount `json:"accounts"`
	Aliases  []GenesisAlias   `json:"aliases"`
	Assets   []GenesisAsset   `json:"assets"`
	Goods    []GenesisGoods   `json:"goods"`
}

type GenesisAccount struct {
	// Account is either a numeric ID or an address
	Account    string `json:"account"`
	PublicKey  string `json:"publicKey"`
	BalanceNQT uint64 `json:"balanceNQT"`
}

type GenesisAlias struct {
	Id      uint64 `json:"id"`
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Account string `json:"account"`
}

type GenesisAsset struct {
	Id          uint64 `json:"id"`
	Account     string `json:"account"`
	Name        string `json:"name"`
	Description string `json:"description"`
	QuantityQNT uint64 `json:"quantityQNT"`
	Decimals    uint8  `json:"decimals"`
}

type GenesisGoods struct {
	Id          uint64 `json:"id"`
	Seller      string `json:"seller"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	PriceNQT    uint64 `json:"priceNQT"`
	Delisted    bool   `json:"delisted"`
}

func NewGenesisFromReader(r io.Reader) (Genesis, error) {
	var ret Genesis
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ret); err != nil {
		return ret, err
	}
	return ret, nil
}

func NewGenesisFromFile(path string) (Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return Genesis{}, err
	}
	defer f.Close()
	return NewGenesisFromReader(f)
}

// LoadGenesis populates the state from the genesis contents
func (s *State) LoadGenesis(g Genesis) error {
	for idx, tmp := range g.Accounts {
		account := &ledger.Account{
			BalanceNQT:            tmp.BalanceNQT,
			UnconfirmedBalanceNQT: tmp.BalanceNQT,
		}
		if tmp.PublicKey != "" {
			pubKey, err := hex.DecodeString(tmp.PublicKey)
			if err != nil {
				return fmt.Errorf("genesis account %d: invalid public key: %w", idx, err)
			}
			account.PublicKey = pubKey
			account.Id = ledger.AccountIdFromPublicKey(pubKey)
		}
		if tmp.Account != "" {
			id, err := ledger.ParseAccountId(tmp.Account)
			if err != nil {
				return fmt.Errorf("genesis account %d: %w", idx, err)
			}
			if account.PublicKey != nil && id != account.Id {
				return fmt.Errorf(
					"genesis account %d: public key does not match account %s",
					idx,
					tmp.Account,
				)
			}
			account.Id = id
		}
		if account.Id == 0 {
			return fmt.Errorf("genesis account %d: no account or public key", idx)
		}
		if err := s.PutAccount(account); err != nil {
			return err
		}
	}
	for _, tmp := range g.Aliases {
		owner, err := ledger.ParseAccountId(tmp.Account)
		if err != nil {
			return fmt.Errorf("genesis alias %q: %w", tmp.Name, err)
		}
		err = s.PutAlias(ledger.Alias{
			Id:        tmp.Id,
			Name:      tmp.Name,
			URI:       tmp.URI,
			AccountId: owner,
		})
		if err != nil {
			return err
		}
	}
	for _, tmp := range g.Assets {
		owner, err := ledger.ParseAccountId(tmp.Account)
		if err != nil {
			return fmt.Errorf("genesis asset %d: %w", tmp.Id, err)
		}
		s.PutAsset(ledger.Asset{
			Id:          tmp.Id,
			AccountId:   owner,
			Name:        tmp.Name,
			Description: tmp.Description,
			QuantityQNT: tmp.QuantityQNT,
			Decimals:    tmp.Decimals,
		})
	}
	for _, tmp := range g.Goods {
		seller, err := ledger.ParseAccountId(tmp.Seller)
		if err != nil {
			return fmt.Errorf("genesis goods %d: %w", tmp.Id, err)
		}
		s.PutGoods(ledger.Goods{
			Id:          tmp.Id,
			SellerId:    seller,
			Name:        tmp.Name,
			Description: tmp.Description,
			Quantity:    tmp.Quantity,
			PriceNQT:    tmp.PriceNQT,
			Delisted:    tmp.Delisted,
		})
	}
	return nil
}
