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

import "fmt"

// EscrowDecision is the action an escrow takes, either by signer vote or when its deadline passes
type EscrowDecision uint8

const (
	EscrowDecisionUndecided EscrowDecision = 0
	EscrowDecisionRelease   EscrowDecision = 1
	EscrowDecisionRefund    EscrowDecision = 2
	EscrowDecisionSplit     EscrowDecision = 3
)

var escrowDecisionNames = map[EscrowDecision]string{
	EscrowDecisionUndecided: "undecided",
	EscrowDecisionRelease:   "release",
	EscrowDecisionRefund:    "refund",
	EscrowDecisionSplit:     "split",
}

func (d EscrowDecision) String() string {
	ret, ok := escrowDecisionNames[d]
	if !ok {
		return fmt.Sprintf("EscrowDecision(%d)", uint8(d))
	}
	return ret
}

// ParseEscrowDecision returns false for anything that is not a known decision name
func ParseEscrowDecision(value string) (EscrowDecision, bool) {
	for decision, name := range escrowDecisionNames {
		if name == value {
			return decision, true
		}
	}
	return EscrowDecisionUndecided, false
}

// IsDeadlineAction reports whether the decision can be applied at deadline
func (d EscrowDecision) IsDeadlineAction() bool {
	switch d {
	case EscrowDecisionRelease, EscrowDecisionRefund, EscrowDecisionSplit:
		return true
	default:
		return false
	}
}
