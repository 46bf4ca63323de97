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

package parameter_test

import (
	"encoding/hex"
	"math"
	"strconv"
	"testing"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/internal/test"
	test_ledger "github.com/blinklabs-io/nodeapi/internal/test/ledger"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/parameter"
	"github.com/blinklabs-io/nodeapi/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceSecret = "alice secret phrase"
	bobSecret   = "bob secret phrase"
)

func newState() *test_ledger.MockLedgerState {
	state := &test_ledger.MockLedgerState{
		HeightVal:            1000,
		MinRollbackHeightVal: 200,
	}
	state.AddAccount(aliceSecret, 50*ledger.OneCoinNQT)
	state.AddAccount(bobSecret, 0)
	state.Aliases = map[uint64]*ledger.Alias{
		77: {Id: 77, Name: "bobsalias", URI: "https://example.org"},
	}
	state.Assets = map[uint64]*ledger.Asset{
		12: {Id: 12, Name: "widget"},
	}
	state.Goods = map[uint64]*ledger.Goods{
		5: {Id: 5, Name: "teapot", Quantity: 1},
	}
	return state
}

func accountIdOf(secretPhrase string) ledger.AccountId {
	return ledger.AccountIdFromPublicKey(
		ledger.PublicKeyFromSecretPhrase(secretPhrase),
	)
}

func TestAccount(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)
	aliceId := accountIdOf(aliceSecret)
	testDefs := []struct {
		name        string
		params      map[string]string
		expectedId  ledger.AccountId
		expectedErr *apierror.Error
	}{
		{
			name:       "decimal",
			params:     map[string]string{"account": aliceId.String()},
			expectedId: aliceId,
		},
		{
			name:       "address",
			params:     map[string]string{"account": aliceId.Address()},
			expectedId: aliceId,
		},
		{
			name:        "absent",
			params:      map[string]string{},
			expectedErr: apierror.MissingAccount,
		},
		{
			name:        "empty",
			params:      map[string]string{"account": ""},
			expectedErr: apierror.MissingAccount,
		},
		{
			name:        "blank",
			params:      map[string]string{"account": "   "},
			expectedErr: apierror.IncorrectAccount,
		},
		{
			name:        "padded",
			params:      map[string]string{"account": " " + aliceId.String()},
			expectedErr: apierror.IncorrectAccount,
		},
		{
			name:        "unparsable",
			params:      map[string]string{"account": "not-an-id"},
			expectedErr: apierror.IncorrectAccount,
		},
		{
			name:        "unknown",
			params:      map[string]string{"account": "42"},
			expectedErr: apierror.UnknownAccount,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			account, err := r.Account(request.FromMap(testDef.params))
			if testDef.expectedErr != nil {
				require.ErrorIs(t, err, testDef.expectedErr)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedId, account.Id)
		})
	}
}

func TestAccountIdempotent(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)
	req := request.FromMap(
		map[string]string{"account": accountIdOf(aliceSecret).String()},
	)
	first, err := r.Account(req)
	require.NoError(t, err)
	second, err := r.Account(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(2), state.AccountLookups())
	assert.Equal(t, 50*ledger.OneCoinNQT, state.Accounts[first.Id].BalanceNQT)
}

func TestAccountLookupFailure(t *testing.T) {
	state := newState()
	state.AccountByIdFunc = func(ledger.AccountId) (*ledger.Account, error) {
		return nil, test_ledger.ErrLookupFailed
	}
	r := parameter.NewResolver(state)
	_, err := r.Account(request.FromMap(map[string]string{"account": "1"}))
	require.ErrorIs(t, err, apierror.IncorrectAccount)
	assert.ErrorIs(t, err, test_ledger.ErrLookupFailed)
}

func TestAccounts(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)
	aliceId := accountIdOf(aliceSecret)
	bobId := accountIdOf(bobSecret)

	accounts, err := r.Accounts(request.New(map[string][]string{
		"account": {aliceId.String(), "", bobId.Address()},
	}))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, aliceId, accounts[0].Id)
	assert.Equal(t, bobId, accounts[1].Id)

	_, err = r.Accounts(request.New(nil))
	assert.ErrorIs(t, err, apierror.MissingAccount)

	_, err = r.Accounts(request.New(map[string][]string{
		"account": {aliceId.String(), "99"},
	}))
	assert.ErrorIs(t, err, apierror.UnknownAccount)

	// Only empty entries are skipped
	_, err = r.Accounts(request.New(map[string][]string{
		"account": {aliceId.String(), " "},
	}))
	assert.ErrorIs(t, err, apierror.IncorrectAccount)
}

func TestSenderAccount(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)
	alicePub := ledger.PublicKeyFromSecretPhrase(aliceSecret)
	bobPub := ledger.PublicKeyFromSecretPhrase(bobSecret)
	testDefs := []struct {
		name        string
		params      map[string]string
		expectedId  ledger.AccountId
		expectedErr *apierror.Error
	}{
		{
			name:       "secret phrase",
			params:     map[string]string{"secretPhrase": aliceSecret},
			expectedId: accountIdOf(aliceSecret),
		},
		{
			name: "public key",
			params: map[string]string{
				"publicKey": hex.EncodeToString(alicePub),
			},
			expectedId: accountIdOf(aliceSecret),
		},
		{
			name: "secret phrase takes precedence",
			params: map[string]string{
				"secretPhrase": aliceSecret,
				"publicKey":    hex.EncodeToString(bobPub),
			},
			expectedId: accountIdOf(aliceSecret),
		},
		{
			name:        "neither",
			params:      map[string]string{},
			expectedErr: apierror.MissingSecretPhraseOrPublicKey,
		},
		{
			name:        "bad hex",
			params:      map[string]string{"publicKey": "zz"},
			expectedErr: apierror.IncorrectPublicKey,
		},
		{
			name:        "unknown",
			params:      map[string]string{"secretPhrase": "nobody"},
			expectedErr: apierror.UnknownAccount,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			account, err := r.SenderAccount(request.FromMap(testDef.params))
			if testDef.expectedErr != nil {
				require.ErrorIs(t, err, testDef.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedId, account.Id)
		})
	}
}

func TestSenderAccountKeyMismatch(t *testing.T) {
	state := newState()
	alicePub := ledger.PublicKeyFromSecretPhrase(aliceSecret)
	state.PutAccount(&ledger.Account{
		Id:        ledger.AccountIdFromPublicKey(alicePub),
		PublicKey: ledger.PublicKeyFromSecretPhrase(bobSecret),
	})
	r := parameter.NewResolver(state)
	_, err := r.SenderAccount(
		request.FromMap(map[string]string{"secretPhrase": aliceSecret}),
	)
	assert.ErrorIs(t, err, apierror.IncorrectPublicKey)
}

func TestAlias(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)
	testDefs := []struct {
		name        string
		params      map[string]string
		expectedId  uint64
		expectedErr *apierror.Error
	}{
		{
			name:       "by id",
			params:     map[string]string{"alias": "77"},
			expectedId: 77,
		},
		{
			name:       "by name",
			params:     map[string]string{"aliasName": "bobsalias"},
			expectedId: 77,
		},
		{
			name:       "empty id falls through to name",
			params:     map[string]string{"alias": "", "aliasName": "bobsalias"},
			expectedId: 77,
		},
		{
			name:       "zero id falls through to name",
			params:     map[string]string{"alias": "0", "aliasName": "bobsalias"},
			expectedId: 77,
		},
		{
			name:        "id wins over name",
			params:      map[string]string{"alias": "78", "aliasName": "bobsalias"},
			expectedErr: apierror.UnknownAlias,
		},
		{
			name:        "neither",
			params:      map[string]string{},
			expectedErr: apierror.MissingAliasOrAliasName,
		},
		{
			name:        "unparsable id",
			params:      map[string]string{"alias": "x1"},
			expectedErr: apierror.IncorrectAlias,
		},
		{
			name:        "unknown name",
			params:      map[string]string{"aliasName": "nope"},
			expectedErr: apierror.UnknownAlias,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			alias, err := r.Alias(request.FromMap(testDef.params))
			if testDef.expectedErr != nil {
				require.ErrorIs(t, err, testDef.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedId, alias.Id)
		})
	}
}

func TestAmountNQT(t *testing.T) {
	r := parameter.NewResolver(newState())
	testDefs := []struct {
		input       string
		expected    uint64
		expectedErr *apierror.Error
	}{
		{input: "1", expected: 1},
		{
			input:    strconv.FormatUint(ledger.MaxBalanceNQT-1, 10),
			expected: ledger.MaxBalanceNQT - 1,
		},
		{
			input:       strconv.FormatUint(ledger.MaxBalanceNQT, 10),
			expectedErr: apierror.IncorrectAmount,
		},
		{input: "0", expectedErr: apierror.IncorrectAmount},
		{input: "-5", expectedErr: apierror.IncorrectAmount},
		{input: "1.5", expectedErr: apierror.IncorrectAmount},
		{input: "99999999999999999999", expectedErr: apierror.IncorrectAmount},
		{input: "", expectedErr: apierror.MissingAmount},
		{input: " ", expectedErr: apierror.IncorrectAmount},
		{input: " 1", expectedErr: apierror.IncorrectAmount},
	}
	for _, testDef := range testDefs {
		amount, err := r.AmountNQT(
			request.FromMap(map[string]string{"amountNQT": testDef.input}),
		)
		if testDef.expectedErr != nil {
			assert.ErrorIs(t, err, testDef.expectedErr, "input %q", testDef.input)
			continue
		}
		require.NoError(t, err, "input %q", testDef.input)
		assert.Equal(t, testDef.expected, amount)
	}
}

func TestAssetAndGoods(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(state)

	asset, err := r.Asset(request.FromMap(map[string]string{"asset": "12"}))
	require.NoError(t, err)
	assert.Equal(t, "widget", asset.Name)
	_, err = r.Asset(request.FromMap(map[string]string{}))
	assert.ErrorIs(t, err, apierror.MissingAsset)
	_, err = r.Asset(request.FromMap(map[string]string{"asset": "-1"}))
	assert.ErrorIs(t, err, apierror.IncorrectAsset)
	_, err = r.Asset(request.FromMap(map[string]string{"asset": "13"}))
	assert.ErrorIs(t, err, apierror.UnknownAsset)

	goods, err := r.Goods(request.FromMap(map[string]string{"goods": "5"}))
	require.NoError(t, err)
	assert.Equal(t, "teapot", goods.Name)
	_, err = r.Goods(request.FromMap(map[string]string{}))
	assert.ErrorIs(t, err, apierror.MissingGoods)
	_, err = r.Goods(request.FromMap(map[string]string{"goods": "five"}))
	assert.ErrorIs(t, err, apierror.IncorrectGoods)
	_, err = r.Goods(request.FromMap(map[string]string{"goods": "6"}))
	assert.ErrorIs(t, err, apierror.UnknownGoods)

	state.GoodsByIdFunc = func(uint64) (*ledger.Goods, error) {
		return nil, test_ledger.ErrLookupFailed
	}
	_, err = r.Goods(request.FromMap(map[string]string{"goods": "5"}))
	assert.ErrorIs(t, err, apierror.IncorrectGoods)
}

func TestSecretPhrase(t *testing.T) {
	r := parameter.NewResolver(newState())
	secret, err := r.SecretPhrase(
		request.FromMap(map[string]string{"secretPhrase": " padded "}),
	)
	require.NoError(t, err)
	assert.Equal(t, " padded ", secret)
	_, err = r.SecretPhrase(request.FromMap(map[string]string{}))
	assert.ErrorIs(t, err, apierror.MissingSecretPhrase)
}

func TestEncryptedMessage(t *testing.T) {
	state := newState()
	r := parameter.NewResolver(
		state,
		parameter.WithEncryptionRand(test.RepeatReader(0x01, 1024)),
	)
	bob := state.Accounts[accountIdOf(bobSecret)]

	// Pre-encrypted data takes precedence
	data, err := r.EncryptedMessage(request.FromMap(map[string]string{
		"encryptedMessageData":  "0a0b",
		"encryptedMessageNonce": "0c",
		"messageToEncrypt":      "ignored",
	}), bob)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, data.Data)
	assert.Equal(t, []byte{0x0c}, data.Nonce)

	_, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"encryptedMessageData":  "0a0b",
		"encryptedMessageNonce": "zz",
	}), bob)
	assert.ErrorIs(t, err, apierror.IncorrectEncryptedMessage)

	// No message at all
	data, err = r.EncryptedMessage(request.FromMap(map[string]string{}), bob)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Text encrypted on the fly
	data, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt": "hello bob",
		"secretPhrase":     aliceSecret,
	}), bob)
	require.NoError(t, err)
	plaintext, err := data.Decrypt(
		bobSecret,
		ledger.PublicKeyFromSecretPhrase(aliceSecret),
	)
	require.NoError(t, err)
	assert.Equal(t, "hello bob", string(plaintext))

	// Hex plaintext
	data, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt":       "cafe",
		"messageToEncryptIsText": "FALSE",
		"secretPhrase":           aliceSecret,
	}), bob)
	require.NoError(t, err)
	plaintext, err = data.Decrypt(
		bobSecret,
		ledger.PublicKeyFromSecretPhrase(aliceSecret),
	)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, plaintext)

	_, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt":       "xyz",
		"messageToEncryptIsText": "false",
		"secretPhrase":           aliceSecret,
	}), bob)
	assert.ErrorIs(t, err, apierror.IncorrectPlainMessage)

	_, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt": "hello",
		"secretPhrase":     aliceSecret,
	}), nil)
	assert.ErrorIs(t, err, apierror.IncorrectRecipient)

	_, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt": "hello",
	}), bob)
	assert.ErrorIs(t, err, apierror.MissingSecretPhrase)

	// Recipient without an announced public key
	_, err = r.EncryptedMessage(request.FromMap(map[string]string{
		"messageToEncrypt": "hello",
		"secretPhrase":     aliceSecret,
	}), &ledger.Account{Id: 9})
	assert.ErrorIs(t, err, apierror.IncorrectPlainMessage)
}

func TestEncryptToSelfMessage(t *testing.T) {
	r := parameter.NewResolver(
		newState(),
		parameter.WithEncryptionRand(test.RepeatReader(0x02, 1024)),
	)
	data, err := r.EncryptToSelfMessage(request.FromMap(map[string]string{
		"messageToEncryptToSelf": "note to self",
		"secretPhrase":           aliceSecret,
	}))
	require.NoError(t, err)
	plaintext, err := data.Decrypt(
		aliceSecret,
		ledger.PublicKeyFromSecretPhrase(aliceSecret),
	)
	require.NoError(t, err)
	assert.Equal(t, "note to self", string(plaintext))

	data, err = r.EncryptToSelfMessage(request.FromMap(map[string]string{
		"encryptToSelfMessageData":  "01",
		"encryptToSelfMessageNonce": "02",
	}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data.Data)
}

func TestChainParameters(t *testing.T) {
	r := parameter.NewResolver(newState())
	testDefs := []struct {
		name        string
		param       string
		resolve     func(request.Request) (int, error)
		input       string
		expected    int
		expectedErr *apierror.Error
	}{
		{name: "confirmations default", param: "numberOfConfirmations", resolve: r.NumberOfConfirmations, input: "", expected: 0},
		{name: "confirmations at height", param: "numberOfConfirmations", resolve: r.NumberOfConfirmations, input: "1000", expected: 1000},
		{name: "confirmations above height", param: "numberOfConfirmations", resolve: r.NumberOfConfirmations, input: "1001", expectedErr: apierror.IncorrectNumberOfConfirmations},
		{name: "confirmations negative", param: "numberOfConfirmations", resolve: r.NumberOfConfirmations, input: "-1", expectedErr: apierror.IncorrectNumberOfConfirmations},
		{name: "confirmations garbage", param: "numberOfConfirmations", resolve: r.NumberOfConfirmations, input: "ten", expectedErr: apierror.IncorrectNumberOfConfirmations},
		{name: "height default", param: "height", resolve: r.Height, input: "", expected: -1},
		{name: "height at tip", param: "height", resolve: r.Height, input: "1000", expected: 1000},
		{name: "height at horizon", param: "height", resolve: r.Height, input: "200", expected: 200},
		{name: "height below horizon", param: "height", resolve: r.Height, input: "199", expectedErr: apierror.HeightNotAvailable},
		{name: "height above tip", param: "height", resolve: r.Height, input: "1001", expectedErr: apierror.IncorrectHeight},
		{name: "height negative", param: "height", resolve: r.Height, input: "-2", expectedErr: apierror.IncorrectHeight},
		{name: "timestamp default", param: "timestamp", resolve: r.Timestamp, input: "", expected: 0},
		{name: "timestamp", param: "timestamp", resolve: r.Timestamp, input: "12345", expected: 12345},
		{name: "timestamp negative", param: "timestamp", resolve: r.Timestamp, input: "-1", expectedErr: apierror.IncorrectTimestamp},
		{name: "timestamp garbage", param: "timestamp", resolve: r.Timestamp, input: "now", expectedErr: apierror.IncorrectTimestamp},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			val, err := testDef.resolve(
				request.FromMap(map[string]string{testDef.param: testDef.input}),
			)
			if testDef.expectedErr != nil {
				require.ErrorIs(t, err, testDef.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, val)
		})
	}
}

func TestRecipientId(t *testing.T) {
	r := parameter.NewResolver(newState())
	bobId := accountIdOf(bobSecret)

	id, err := r.RecipientId(
		request.FromMap(map[string]string{"recipient": bobId.Address()}),
	)
	require.NoError(t, err)
	assert.Equal(t, bobId, id)

	for _, input := range []string{"", "0"} {
		_, err = r.RecipientId(
			request.FromMap(map[string]string{"recipient": input}),
		)
		assert.ErrorIs(t, err, apierror.MissingRecipient)
	}
	for _, input := range []string{"00", "bob"} {
		_, err = r.RecipientId(
			request.FromMap(map[string]string{"recipient": input}),
		)
		assert.ErrorIs(t, err, apierror.IncorrectRecipient)
	}
}

func TestPaging(t *testing.T) {
	r := parameter.NewResolver(newState(), parameter.WithMaxAPIRecords(10))
	admin := parameter.NewResolver(newState(), parameter.WithAdmin(true))
	testDefs := []struct {
		first         string
		last          string
		expectedFirst int
		expectedLast  int
		adminLast     int
	}{
		{first: "", last: "", expectedFirst: 0, expectedLast: 9, adminLast: math.MaxInt32},
		{first: "5", last: "7", expectedFirst: 5, expectedLast: 7, adminLast: 7},
		{first: "5", last: "100", expectedFirst: 5, expectedLast: 14, adminLast: 100},
		{first: "-3", last: "-1", expectedFirst: 0, expectedLast: 9, adminLast: math.MaxInt32},
		{first: "x", last: "y", expectedFirst: 0, expectedLast: 9, adminLast: math.MaxInt32},
		{
			first:         strconv.Itoa(math.MaxInt32),
			last:          "",
			expectedFirst: math.MaxInt32,
			expectedLast:  math.MaxInt32,
			adminLast:     math.MaxInt32,
		},
	}
	for _, testDef := range testDefs {
		req := request.FromMap(map[string]string{
			"firstIndex": testDef.first,
			"lastIndex":  testDef.last,
		})
		assert.Equal(t, testDef.expectedFirst, r.FirstIndex(req))
		assert.Equal(t, testDef.expectedLast, r.LastIndex(req))
		assert.Equal(t, testDef.adminLast, admin.LastIndex(req))
	}
}
