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
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
)

var (
	ErrMissingPublicKey = errors.New("account has no public key")
	ErrMessageTooLong   = fmt.Errorf(
		"message exceeds %d bytes",
		MaxEncryptedMessageLength,
	)
)

// EncryptedData is a message sealed for a single recipient
type EncryptedData struct {
	Data  []byte
	Nonce []byte
}

func seedFromSecretPhrase(secretPhrase string) []byte {
	seed := blake2b.Sum256([]byte(secretPhrase))
	return seed[:]
}

// PrivateKeyFromSecretPhrase derives the ed25519 signing key for a secret phrase
func PrivateKeyFromSecretPhrase(secretPhrase string) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seedFromSecretPhrase(secretPhrase))
}

// PublicKeyFromSecretPhrase derives the ed25519 public key for a secret phrase
func PublicKeyFromSecretPhrase(secretPhrase string) []byte {
	privKey := PrivateKeyFromSecretPhrase(secretPhrase)
	return []byte(privKey.Public().(ed25519.PublicKey))
}

// x25519Scalar returns the Montgomery private scalar matching the ed25519 key.
// X25519 clamps the scalar itself.
func x25519Scalar(secretPhrase string) []byte {
	hash := sha512.Sum512(seedFromSecretPhrase(secretPhrase))
	return hash[:curve25519.ScalarSize]
}

// x25519PublicKey converts an ed25519 public key to its Montgomery form
func x25519PublicKey(publicKey []byte) ([]byte, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf(
			"invalid public key length: got %d, want %d",
			len(publicKey),
			ed25519.PublicKeySize,
		)
	}
	point, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return point.BytesMontgomery(), nil
}

func sharedKey(secretPhrase string, theirPublicKey []byte) ([]byte, error) {
	montPub, err := x25519PublicKey(theirPublicKey)
	if err != nil {
		return nil, err
	}
	shared, err := curve25519.X25519(x25519Scalar(secretPhrase), montPub)
	if err != nil {
		return nil, err
	}
	key := blake2b.Sum256(shared)
	return key[:], nil
}

// EncryptTo seals the plaintext for this account using the sender's secret
// phrase. The nonce is read from rand.
func (a *Account) EncryptTo(
	plaintext []byte,
	senderSecretPhrase string,
	rand io.Reader,
) (*EncryptedData, error) {
	if !a.HasPublicKey() {
		return nil, ErrMissingPublicKey
	}
	return EncryptData(plaintext, senderSecretPhrase, a.PublicKey, rand)
}

// EncryptData seals the plaintext for the holder of the recipient public key
func EncryptData(
	plaintext []byte,
	senderSecretPhrase string,
	recipientPublicKey []byte,
	rand io.Reader,
) (*EncryptedData, error) {
	if len(plaintext) > MaxEncryptedMessageLength {
		return nil, ErrMessageTooLong
	}
	key, err := sharedKey(senderSecretPhrase, recipientPublicKey)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}
	return &EncryptedData{
		Data:  aead.Seal(nil, nonce, plaintext, nil),
		Nonce: nonce,
	}, nil
}

// Decrypt opens the message using the recipient's secret phrase and the sender's public key
func (e *EncryptedData) Decrypt(
	recipientSecretPhrase string,
	senderPublicKey []byte,
) ([]byte, error) {
	key, err := sharedKey(recipientSecretPhrase, senderPublicKey)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(e.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf(
			"invalid nonce length: got %d, want %d",
			len(e.Nonce),
			aead.NonceSize(),
		)
	}
	return aead.Open(nil, e.Nonce, e.Data, nil)
}
