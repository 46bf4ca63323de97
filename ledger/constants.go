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

const (
	// OneCoinNQT is the number of NQT in one whole coin
	OneCoinNQT uint64 = 100_000_000
	// MaxBalanceCoins is the total coin supply
	MaxBalanceCoins uint64 = 2_158_812_800
	// MaxBalanceNQT is the exclusive upper bound for any amount
	MaxBalanceNQT = MaxBalanceCoins * OneCoinNQT

	// MaxEscrowSigners bounds both the signer list and the required signers
	MaxEscrowSigners = 10
	// MaxEscrowDeadlineSeconds is 90 days
	MaxEscrowDeadlineSeconds = 7_776_000
	// EscrowSignerFeeNQT is charged per escrow signer on top of the escrowed amount
	EscrowSignerFeeNQT = OneCoinNQT

	// MaxEncryptedMessageLength bounds the plaintext of encrypted messages
	MaxEncryptedMessageLength = 1000
	// MaxArbitraryMessageLength bounds plain (unencrypted) messages
	MaxArbitraryMessageLength = 1000
)
