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

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/blake2b"
)

// AccountAddressPrefix is the bech32 human-readable part of account addresses
const AccountAddressPrefix = "acct"

// AccountId is the numeric identifier of an account, derived from its public key
type AccountId uint64

// AccountIdFromPublicKey returns the first 8 bytes (big endian) of the
// Blake2b-256 hash of the public key
func AccountIdFromPublicKey(publicKey []byte) AccountId {
	hash := blake2b.Sum256(publicKey)
	return AccountId(binary.BigEndian.Uint64(hash[:8]))
}

// ParseAccountId accepts either the unsigned decimal form or the bech32 address form
func ParseAccountId(value string) (AccountId, error) {
	if value == "" {
		return 0, errors.New("empty account identifier")
	}
	if strings.HasPrefix(strings.ToLower(value), AccountAddressPrefix+"1") {
		return parseAccountAddress(value)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account identifier %q: %w", value, err)
	}
	return AccountId(id), nil
}

func parseAccountAddress(value string) (AccountId, error) {
	hrp, data, err := bech32.Decode(value)
	if err != nil {
		return 0, fmt.Errorf("invalid account address %q: %w", value, err)
	}
	if hrp != AccountAddressPrefix {
		return 0, fmt.Errorf("unexpected account address prefix: %s", hrp)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return 0, fmt.Errorf("invalid account address %q: %w", value, err)
	}
	if len(decoded) != 8 {
		return 0, fmt.Errorf(
			"invalid account address payload length: got %d, want 8",
			len(decoded),
		)
	}
	return AccountId(binary.BigEndian.Uint64(decoded)), nil
}

// ParseUnsignedId parses the unsigned decimal IDs used for aliases, assets and
// goods. The empty string parses as 0.
func ParseUnsignedId(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseUint(value, 10, 64)
}

// String returns the unsigned decimal form
func (a AccountId) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Address returns the bech32 form
func (a AccountId) Address() string {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(a))
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(raw[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(AccountAddressPrefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// MarshalJSON encodes the ID as a decimal string so it survives JSON number precision
func (a AccountId) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

type Account struct {
	Id                    AccountId
	BalanceNQT            uint64
	UnconfirmedBalanceNQT uint64
	PublicKey             []byte
}

func (a *Account) HasPublicKey() bool {
	return a != nil && len(a.PublicKey) > 0
}

// Clone returns a deep copy of the account
func (a *Account) Clone() (*Account, error) {
	if a == nil {
		return nil, nil
	}
	ret := &Account{}
	if err := copier.CopyWithOption(ret, a, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return ret, nil
}
