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
	"encoding/hex"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/request"
)

type messageParams struct {
	data      string
	nonce     string
	plaintext string
	isText    string
}

var (
	encryptedMessageParams = messageParams{
		data:      request.ParamEncryptedMessageData,
		nonce:     request.ParamEncryptedMessageNonce,
		plaintext: request.ParamMessageToEncrypt,
		isText:    request.ParamMessageToEncryptIsText,
	}
	encryptToSelfMessageParams = messageParams{
		data:      request.ParamEncryptToSelfMessageData,
		nonce:     request.ParamEncryptToSelfMessageNonce,
		plaintext: request.ParamMessageToEncryptToSelf,
		isText:    request.ParamMessageToEncryptToSelfIsText,
	}
)

// EncryptedMessage resolves the message encrypted for the recipient. A
// pre-encrypted data/nonce pair takes precedence over a plaintext, which is
// sealed on the fly with the sender's secret phrase. No message yields (nil, nil).
func (r *Resolver) EncryptedMessage(
	req request.Request,
	recipient *ledger.Account,
) (*ledger.EncryptedData, error) {
	if data, ok, err := preEncrypted(req, encryptedMessageParams); ok || err != nil {
		return data, err
	}
	plaintext, ok, err := r.plaintext(req, encryptedMessageParams)
	if !ok || err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apierror.IncorrectRecipient
	}
	secretPhrase, err := r.SecretPhrase(req)
	if err != nil {
		return nil, err
	}
	encrypted, err := recipient.EncryptTo(plaintext, secretPhrase, r.rand)
	if err != nil {
		return nil, apierror.IncorrectPlainMessage.WithCause(err)
	}
	return encrypted, nil
}

// EncryptToSelfMessage resolves the message the sender encrypts for itself
func (r *Resolver) EncryptToSelfMessage(
	req request.Request,
) (*ledger.EncryptedData, error) {
	if data, ok, err := preEncrypted(req, encryptToSelfMessageParams); ok || err != nil {
		return data, err
	}
	plaintext, ok, err := r.plaintext(req, encryptToSelfMessageParams)
	if !ok || err != nil {
		return nil, err
	}
	secretPhrase, err := r.SecretPhrase(req)
	if err != nil {
		return nil, err
	}
	encrypted, err := ledger.EncryptData(
		plaintext,
		secretPhrase,
		ledger.PublicKeyFromSecretPhrase(secretPhrase),
		r.rand,
	)
	if err != nil {
		return nil, apierror.IncorrectPlainMessage.WithCause(err)
	}
	return encrypted, nil
}

func preEncrypted(
	req request.Request,
	params messageParams,
) (*ledger.EncryptedData, bool, error) {
	dataValue := req.Get(params.data)
	nonceValue := req.Get(params.nonce)
	if dataValue == "" || nonceValue == "" {
		return nil, false, nil
	}
	data, err := hex.DecodeString(dataValue)
	if err != nil {
		return nil, false, apierror.IncorrectEncryptedMessage.WithCause(err)
	}
	nonce, err := hex.DecodeString(nonceValue)
	if err != nil {
		return nil, false, apierror.IncorrectEncryptedMessage.WithCause(err)
	}
	return &ledger.EncryptedData{Data: data, Nonce: nonce}, true, nil
}

// plaintext reads the message to encrypt. Messages are text unless the isText
// parameter is explicitly "false", in which case they are hex.
func (r *Resolver) plaintext(
	req request.Request,
	params messageParams,
) ([]byte, bool, error) {
	plainValue := req.Get(params.plaintext)
	if plainValue == "" {
		return nil, false, nil
	}
	if !request.IsFalse(req.Get(params.isText)) {
		return []byte(plainValue), true, nil
	}
	plaintext, err := hex.DecodeString(plainValue)
	if err != nil {
		return nil, false, apierror.IncorrectPlainMessage.WithCause(err)
	}
	return plaintext, true, nil
}
