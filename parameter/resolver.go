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

package parameter

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/request"
)

const DefaultMaxAPIRecords = 100

// State is the subset of the ledger the resolver reads from
type State interface {
	ledger.AccountState
	ledger.AliasState
	ledger.AssetState
	ledger.GoodsState
	ledger.ChainState
}

type Resolver struct {
	state         State
	logger        *slog.Logger
	rand          io.Reader
	admin         bool
	maxAPIRecords int
}

func NewResolver(state State, opts ...ResolverOptionFunc) *Resolver {
	r := &Resolver{
		state:         state,
		maxAPIRecords: DefaultMaxAPIRecords,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.rand == nil {
		r.rand = rand.Reader
	}
	if r.maxAPIRecords < 1 {
		r.maxAPIRecords = DefaultMaxAPIRecords
	}
	return r
}

// State returns the ledger state the resolver reads from
func (r *Resolver) State() State {
	return r.state
}

// lookupFailed logs a collaborator failure and maps it onto the given API error
func (r *Resolver) lookupFailed(
	apiErr *apierror.Error,
	what string,
	err error,
) *apierror.Error {
	r.logger.Debug(
		"lookup failed",
		"component", "parameter",
		"lookup", what,
		"error", err,
	)
	return apiErr.WithCause(err)
}

// Account resolves the single "account" parameter
func (r *Resolver) Account(req request.Request) (*ledger.Account, error) {
	accountValue := req.Get(request.ParamAccount)
	if accountValue == "" {
		return nil, apierror.MissingAccount
	}
	return r.accountByValue(accountValue)
}

// Accounts resolves every "account" value, skipping empty ones
func (r *Resolver) Accounts(req request.Request) ([]*ledger.Account, error) {
	accountValues := req.Values(request.ParamAccount)
	if len(accountValues) == 0 {
		return nil, apierror.MissingAccount
	}
	ret := make([]*ledger.Account, 0, len(accountValues))
	for _, accountValue := range accountValues {
		if accountValue == "" {
			continue
		}
		account, err := r.accountByValue(accountValue)
		if err != nil {
			return nil, err
		}
		ret = append(ret, account)
	}
	return ret, nil
}

func (r *Resolver) accountByValue(accountValue string) (*ledger.Account, error) {
	accountId, err := ledger.ParseAccountId(accountValue)
	if err != nil {
		return nil, apierror.IncorrectAccount.WithCause(err)
	}
	account, err := r.state.AccountById(accountId)
	if err != nil {
		return nil, r.lookupFailed(apierror.IncorrectAccount, "account", err)
	}
	if account == nil {
		return nil, apierror.UnknownAccount
	}
	return account, nil
}

// SenderAccount resolves the sending account from "secretPhrase", or failing
// that from the hex "publicKey"
func (r *Resolver) SenderAccount(req request.Request) (*ledger.Account, error) {
	secretPhrase := req.Get(request.ParamSecretPhrase)
	publicKeyValue := req.Get(request.ParamPublicKey)
	var publicKey []byte
	// Lookup failures map to the parameter the key came from
	failureErr := apierror.UnknownAccount
	switch {
	case secretPhrase != "":
		publicKey = ledger.PublicKeyFromSecretPhrase(secretPhrase)
	case publicKeyValue != "":
		var err error
		publicKey, err = hex.DecodeString(publicKeyValue)
		if err != nil {
			return nil, apierror.IncorrectPublicKey.WithCause(err)
		}
		failureErr = apierror.IncorrectPublicKey
	default:
		return nil, apierror.MissingSecretPhraseOrPublicKey
	}
	account, err := r.state.AccountById(ledger.AccountIdFromPublicKey(publicKey))
	if err != nil {
		return nil, r.lookupFailed(failureErr, "sender account", err)
	}
	if account == nil {
		return nil, apierror.UnknownAccount
	}
	// An account that has announced a different key is an ID collision
	if account.HasPublicKey() && !bytes.Equal(account.PublicKey, publicKey) {
		return nil, apierror.IncorrectPublicKey.WithCause(
			errors.New("public key does not match account"),
		)
	}
	return account, nil
}

// Alias resolves by the numeric "alias" ID first, then by "aliasName"
func (r *Resolver) Alias(req request.Request) (*ledger.Alias, error) {
	aliasId, err := ledger.ParseUnsignedId(req.Get(request.ParamAlias))
	if err != nil {
		return nil, apierror.IncorrectAlias.WithCause(err)
	}
	aliasName := req.Get(request.ParamAliasName)
	var alias *ledger.Alias
	switch {
	case aliasId != 0:
		alias, err = r.state.AliasById(aliasId)
	case aliasName != "":
		alias, err = r.state.AliasByName(aliasName)
	default:
		return nil, apierror.MissingAliasOrAliasName
	}
	if err != nil {
		return nil, r.lookupFailed(apierror.IncorrectAlias, "alias", err)
	}
	if alias == nil {
		return nil, apierror.UnknownAlias
	}
	return alias, nil
}

// AmountNQT resolves "amountNQT", which must be in (0, MaxBalanceNQT)
func (r *Resolver) AmountNQT(req request.Request) (uint64, error) {
	amountValue := req.Get(request.ParamAmountNQT)
	if amountValue == "" {
		return 0, apierror.MissingAmount
	}
	amountNQT, err := strconv.ParseInt(amountValue, 10, 64)
	if err != nil {
		return 0, apierror.IncorrectAmount.WithCause(err)
	}
	if amountNQT <= 0 || uint64(amountNQT) >= ledger.MaxBalanceNQT {
		return 0, apierror.IncorrectAmount
	}
	return uint64(amountNQT), nil
}

// Asset resolves the "asset" ID
func (r *Resolver) Asset(req request.Request) (*ledger.Asset, error) {
	assetValue := req.Get(request.ParamAsset)
	if assetValue == "" {
		return nil, apierror.MissingAsset
	}
	assetId, err := ledger.ParseUnsignedId(assetValue)
	if err != nil {
		return nil, apierror.IncorrectAsset.WithCause(err)
	}
	asset, err := r.state.AssetById(assetId)
	if err != nil {
		return nil, r.lookupFailed(apierror.IncorrectAsset, "asset", err)
	}
	if asset == nil {
		return nil, apierror.UnknownAsset
	}
	return asset, nil
}

// Goods resolves the "goods" listing ID
func (r *Resolver) Goods(req request.Request) (*ledger.Goods, error) {
	goodsValue := req.Get(request.ParamGoods)
	if goodsValue == "" {
		return nil, apierror.MissingGoods
	}
	goodsId, err := ledger.ParseUnsignedId(goodsValue)
	if err != nil {
		return nil, apierror.IncorrectGoods.WithCause(err)
	}
	goods, err := r.state.GoodsById(goodsId)
	if err != nil {
		return nil, r.lookupFailed(apierror.IncorrectGoods, "goods", err)
	}
	if goods == nil {
		return nil, apierror.UnknownGoods
	}
	return goods, nil
}

// SecretPhrase returns the "secretPhrase" parameter
func (r *Resolver) SecretPhrase(req request.Request) (string, error) {
	secretPhrase := req.Get(request.ParamSecretPhrase)
	if secretPhrase == "" {
		return "", apierror.MissingSecretPhrase
	}
	return secretPhrase, nil
}
