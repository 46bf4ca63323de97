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

package attachment

import (
	"strconv"
	"strings"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/request"
)

// EscrowRequest is everything needed to submit an escrow creation transaction
type EscrowRequest struct {
	Sender      *ledger.Account
	RecipientId ledger.AccountId
	AmountNQT   uint64
	Attachment  *ledger.EscrowCreation
}

// EscrowState accumulates the values resolved by the escrow steps
type EscrowState struct {
	Sender          *ledger.Account
	RecipientId     ledger.AccountId
	AmountNQT       uint64
	RequiredSigners uint8
	SignerValues    []string
	Signers         []ledger.AccountId
	DeadlineSeconds uint32
	DeadlineAction  ledger.EscrowDecision
	Attachment      *ledger.EscrowCreation
}

type EscrowStepFunc func(*parameter.Resolver, *EscrowState, request.Request) error

var escrowSteps = []EscrowStepFunc{
	EscrowResolveParties,
	EscrowParseRequiredSigners,
	EscrowSplitSigners,
	EscrowParseSigners,
	EscrowCheckBalance,
	EscrowParseDeadline,
	EscrowParseDeadlineAction,
	EscrowBuildAttachment,
}

// EscrowSteps returns the escrow creation steps in the order they run
func EscrowSteps() []EscrowStepFunc {
	return append([]EscrowStepFunc(nil), escrowSteps...)
}

// EscrowResolveParties resolves the sender, recipient and amount
func EscrowResolveParties(
	r *parameter.Resolver,
	s *EscrowState,
	req request.Request,
) error {
	sender, err := r.SenderAccount(req)
	if err != nil {
		return err
	}
	recipientId, err := r.RecipientId(req)
	if err != nil {
		return err
	}
	amountNQT, err := r.AmountNQT(req)
	if err != nil {
		return err
	}
	s.Sender = sender
	s.RecipientId = recipientId
	s.AmountNQT = amountNQT
	return nil
}

func EscrowParseRequiredSigners(
	_ *parameter.Resolver,
	s *EscrowState,
	req request.Request,
) error {
	requiredSigners, err := parseOptionalInt(req, request.ParamRequiredSigners)
	if err != nil {
		return apierror.InvalidRequiredSignersParameter.WithCause(err)
	}
	if requiredSigners < 1 || requiredSigners > ledger.MaxEscrowSigners {
		return apierror.InvalidNumberOfRequiredSigners
	}
	s.RequiredSigners = uint8(requiredSigners)
	return nil
}

// EscrowSplitSigners splits the signer list into at most MaxEscrowSigners
// segments. Anything past the last separator stays in the final segment.
func EscrowSplitSigners(
	_ *parameter.Resolver,
	s *EscrowState,
	req request.Request,
) error {
	signersValue := req.Get(request.ParamSigners)
	if signersValue == "" {
		return apierror.SignersNotSpecified
	}
	signerValues := strings.SplitN(signersValue, ";", ledger.MaxEscrowSigners)
	if len(signerValues) < 1 ||
		len(signerValues) > ledger.MaxEscrowSigners ||
		len(signerValues) < int(s.RequiredSigners) {
		return apierror.InvalidNumberOfSigners
	}
	s.SignerValues = signerValues
	return nil
}

func EscrowParseSigners(
	_ *parameter.Resolver,
	s *EscrowState,
	_ request.Request,
) error {
	signers := make([]ledger.AccountId, 0, len(s.SignerValues))
	for _, signerValue := range s.SignerValues {
		signer, err := ledger.ParseAccountId(signerValue)
		if err != nil {
			return apierror.InvalidSignersParameter.WithCause(err)
		}
		signers = append(signers, signer)
	}
	s.Signers = signers
	return nil
}

// EscrowCheckBalance requires the sender to cover the amount plus one coin per signer
func EscrowCheckBalance(
	_ *parameter.Resolver,
	s *EscrowState,
	_ request.Request,
) error {
	totalNQT, ok := ledger.EscrowTotalCostNQT(s.AmountNQT, len(s.Signers))
	if !ok || totalNQT > s.Sender.BalanceNQT {
		return apierror.InsufficientFunds
	}
	return nil
}

func EscrowParseDeadline(
	_ *parameter.Resolver,
	s *EscrowState,
	req request.Request,
) error {
	deadline, err := parseOptionalInt(req, request.ParamEscrowDeadline)
	if err != nil {
		return apierror.InvalidEscrowDeadlineParameter.WithCause(err)
	}
	if deadline < 1 || deadline > ledger.MaxEscrowDeadlineSeconds {
		return apierror.EscrowDeadlineOutOfRange
	}
	s.DeadlineSeconds = uint32(deadline)
	return nil
}

func EscrowParseDeadlineAction(
	_ *parameter.Resolver,
	s *EscrowState,
	req request.Request,
) error {
	action, ok := ledger.ParseEscrowDecision(req.Get(request.ParamDeadlineAction))
	if !ok || !action.IsDeadlineAction() {
		return apierror.InvalidDeadlineActionParameter
	}
	s.DeadlineAction = action
	return nil
}

func EscrowBuildAttachment(
	_ *parameter.Resolver,
	s *EscrowState,
	_ request.Request,
) error {
	attachment, err := ledger.NewEscrowCreation(
		s.AmountNQT,
		s.DeadlineSeconds,
		s.DeadlineAction,
		s.RequiredSigners,
		s.Signers,
	)
	if err != nil {
		return apierror.IncorrectRequest.WithCause(err)
	}
	s.Attachment = attachment
	return nil
}

// parseOptionalInt treats an absent parameter as 0 so the caller's range check
// rejects it. A supplied value, including an empty one, must parse.
func parseOptionalInt(req request.Request, name string) (int64, error) {
	if !req.Present(name) {
		return 0, nil
	}
	return strconv.ParseInt(req.Get(name), 10, 64)
}
