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

type Alias struct {
	Id        uint64
	Name      string
	URI       string
	AccountId AccountId
	Timestamp int
}

type Asset struct {
	Id          uint64
	AccountId   AccountId
	Name        string
	Description string
	QuantityQNT uint64
	Decimals    uint8
}

// Goods is a listing in the digital goods store
type Goods struct {
	Id          uint64
	SellerId    AccountId
	Name        string
	Description string
	Quantity    int
	PriceNQT    uint64
	Delisted    bool
}

// IsOwnedBy reports whether the listing is active and was listed by the account
func (g *Goods) IsOwnedBy(accountId AccountId) bool {
	return g != nil && !g.Delisted && g.SellerId == accountId
}

type Block struct {
	Id              uint64
	Height          int
	Timestamp       int
	GeneratorId     AccountId
	PreviousBlockId uint64
	TotalAmountNQT  uint64
	TotalFeeNQT     uint64
	PayloadLength   int
	TransactionIds  []uint64
}
