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
	"errors"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/nodeapi/cbor"
)

const (
	AttachmentTypeOrdinaryPayment = 0
	AttachmentTypeGoodsDelisting  = 1
	AttachmentTypeEscrowCreation  = 2
)

// Attachment is the operation-specific payload carried by a transaction
type Attachment interface {
	isAttachment()
	Type() uint
	Name() string
	Cbor() []byte
	JSON() map[string]any
}

type AttachmentWrapper struct {
	Type       uint
	Attachment Attachment
}

func (a *AttachmentWrapper) UnmarshalCBOR(data []byte) error {
	tmpAttachment, err := NewAttachmentFromCbor(data)
	if err != nil {
		return err
	}
	a.Type = tmpAttachment.Type()
	a.Attachment = tmpAttachment
	return nil
}

func (a *AttachmentWrapper) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.Attachment)
}

// NewAttachmentFromCbor decodes any known attachment by its leading type ID
func NewAttachmentFromCbor(data []byte) (Attachment, error) {
	ret, err := cbor.DecodeById(
		data,
		map[int]any{
			AttachmentTypeOrdinaryPayment: &OrdinaryPayment{},
			AttachmentTypeGoodsDelisting:  &GoodsDelisting{},
			AttachmentTypeEscrowCreation:  &EscrowCreation{},
		},
	)
	if err != nil {
		return nil, err
	}
	attachment, ok := ret.(Attachment)
	if !ok {
		return nil, fmt.Errorf("decoded type is not an attachment: %T", ret)
	}
	return attachment, nil
}

func checkAttachmentType(got uint, want uint) error {
	if got != want {
		return fmt.Errorf(
			"attachment type mismatch: got %d, want %d",
			got,
			want,
		)
	}
	return nil
}

// OrdinaryPayment is the empty attachment of a plain coin transfer
type OrdinaryPayment struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	AttachmentType uint
}

func (OrdinaryPayment) isAttachment() {}

func (a *OrdinaryPayment) Type() uint {
	return AttachmentTypeOrdinaryPayment
}

func (a *OrdinaryPayment) Name() string {
	return "OrdinaryPayment"
}

func (a *OrdinaryPayment) JSON() map[string]any {
	return map[string]any{}
}

func (a *OrdinaryPayment) MarshalCBOR() ([]byte, error) {
	tmp := OrdinaryPayment{AttachmentType: AttachmentTypeOrdinaryPayment}
	return cbor.EncodeGeneric(&tmp)
}

func (a *OrdinaryPayment) UnmarshalCBOR(data []byte) error {
	type tOrdinaryPayment OrdinaryPayment
	var tmp tOrdinaryPayment
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if err := checkAttachmentType(tmp.AttachmentType, AttachmentTypeOrdinaryPayment); err != nil {
		return err
	}
	*a = OrdinaryPayment(tmp)
	a.SetCbor(data)
	return nil
}

// GoodsDelisting removes a listing from the digital goods store
type GoodsDelisting struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	AttachmentType uint
	GoodsId        uint64
}

func NewGoodsDelisting(goodsId uint64) *GoodsDelisting {
	return &GoodsDelisting{
		AttachmentType: AttachmentTypeGoodsDelisting,
		GoodsId:        goodsId,
	}
}

func (GoodsDelisting) isAttachment() {}

func (a *GoodsDelisting) Type() uint {
	return AttachmentTypeGoodsDelisting
}

func (a *GoodsDelisting) Name() string {
	return "DigitalGoodsDelisting"
}

func (a *GoodsDelisting) JSON() map[string]any {
	return map[string]any{
		"goods": strconv.FormatUint(a.GoodsId, 10),
	}
}

func (a *GoodsDelisting) MarshalCBOR() ([]byte, error) {
	tmp := GoodsDelisting{
		AttachmentType: AttachmentTypeGoodsDelisting,
		GoodsId:        a.GoodsId,
	}
	return cbor.EncodeGeneric(&tmp)
}

func (a *GoodsDelisting) UnmarshalCBOR(data []byte) error {
	type tGoodsDelisting GoodsDelisting
	var tmp tGoodsDelisting
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if err := checkAttachmentType(tmp.AttachmentType, AttachmentTypeGoodsDelisting); err != nil {
		return err
	}
	*a = GoodsDelisting(tmp)
	a.SetCbor(data)
	return nil
}

// EscrowCreation holds an amount until enough signers agree on a decision or
// the deadline passes
type EscrowCreation struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	AttachmentType  uint
	AmountNQT       uint64
	DeadlineSeconds uint32
	DeadlineAction  EscrowDecision
	RequiredSigners uint8
	Signers         []AccountId
}

// NewEscrowCreation validates the escrow invariants and copies the signer list
func NewEscrowCreation(
	amountNQT uint64,
	deadlineSeconds uint32,
	deadlineAction EscrowDecision,
	requiredSigners uint8,
	signers []AccountId,
) (*EscrowCreation, error) {
	ret := &EscrowCreation{
		AttachmentType:  AttachmentTypeEscrowCreation,
		AmountNQT:       amountNQT,
		DeadlineSeconds: deadlineSeconds,
		DeadlineAction:  deadlineAction,
		RequiredSigners: requiredSigners,
		Signers:         append([]AccountId(nil), signers...),
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (EscrowCreation) isAttachment() {}

func (a *EscrowCreation) Type() uint {
	return AttachmentTypeEscrowCreation
}

func (a *EscrowCreation) Name() string {
	return "EscrowCreation"
}

// Validate checks the invariants every escrow creation must satisfy
func (a *EscrowCreation) Validate() error {
	if a.AmountNQT == 0 || a.AmountNQT >= MaxBalanceNQT {
		return fmt.Errorf("escrow amount out of range: %d", a.AmountNQT)
	}
	if a.RequiredSigners < 1 || a.RequiredSigners > MaxEscrowSigners {
		return fmt.Errorf(
			"required signers out of range: %d",
			a.RequiredSigners,
		)
	}
	if len(a.Signers) < 1 || len(a.Signers) > MaxEscrowSigners {
		return fmt.Errorf("signer count out of range: %d", len(a.Signers))
	}
	if len(a.Signers) < int(a.RequiredSigners) {
		return fmt.Errorf(
			"signer count %d is below required signers %d",
			len(a.Signers),
			a.RequiredSigners,
		)
	}
	if a.DeadlineSeconds < 1 ||
		a.DeadlineSeconds > MaxEscrowDeadlineSeconds {
		return fmt.Errorf(
			"escrow deadline out of range: %d",
			a.DeadlineSeconds,
		)
	}
	if !a.DeadlineAction.IsDeadlineAction() {
		return errors.New("escrow deadline action must be decided")
	}
	return nil
}

// TotalCostNQT is the escrowed amount plus the per-signer fee. The second
// return value is false on overflow.
func (a *EscrowCreation) TotalCostNQT() (uint64, bool) {
	return EscrowTotalCostNQT(a.AmountNQT, len(a.Signers))
}

// EscrowTotalCostNQT computes amount + signerCount * EscrowSignerFeeNQT,
// returning false on overflow
func EscrowTotalCostNQT(amountNQT uint64, signerCount int) (uint64, bool) {
	if signerCount < 0 {
		return 0, false
	}
	fees := uint64(signerCount) * EscrowSignerFeeNQT
	if signerCount != 0 && fees/uint64(signerCount) != EscrowSignerFeeNQT {
		return 0, false
	}
	total := amountNQT + fees
	if total < amountNQT {
		return 0, false
	}
	return total, true
}

func (a *EscrowCreation) JSON() map[string]any {
	signers := make([]string, 0, len(a.Signers))
	for _, signer := range a.Signers {
		signers = append(signers, signer.String())
	}
	return map[string]any{
		"amountNQT":       strconv.FormatUint(a.AmountNQT, 10),
		"deadline":        a.DeadlineSeconds,
		"deadlineAction":  a.DeadlineAction.String(),
		"requiredSigners": a.RequiredSigners,
		"signers":         signers,
	}
}

func (a *EscrowCreation) MarshalCBOR() ([]byte, error) {
	tmp := EscrowCreation{
		AttachmentType:  AttachmentTypeEscrowCreation,
		AmountNQT:       a.AmountNQT,
		DeadlineSeconds: a.DeadlineSeconds,
		DeadlineAction:  a.DeadlineAction,
		RequiredSigners: a.RequiredSigners,
		Signers:         a.Signers,
	}
	return cbor.EncodeGeneric(&tmp)
}

func (a *EscrowCreation) UnmarshalCBOR(data []byte) error {
	type tEscrowCreation EscrowCreation
	var tmp tEscrowCreation
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if err := checkAttachmentType(tmp.AttachmentType, AttachmentTypeEscrowCreation); err != nil {
		return err
	}
	*a = EscrowCreation(tmp)
	if err := a.Validate(); err != nil {
		return err
	}
	a.SetCbor(data)
	return nil
}
