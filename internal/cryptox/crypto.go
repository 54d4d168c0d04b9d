// Package cryptox implements the symmetric codec applied to vault entry
// fields. Fields travel over the wire and rest in the store as opaque
// base64 strings; only holders of the configured secret can read them.
//
// The AES key is derived from a single application-wide secret shared by
// every account. A per-user key derived from the account password would
// make the vault opaque to the server operator as well, but it would also
// close off any password-reset path.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// Codec encrypts and decrypts individual text fields with AES-256-GCM.
// A Codec is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives a 32-byte AES key from secret and returns a ready codec.
// The secret is injected by the caller (normally from configuration); the
// package keeps no ambient key state.
func NewCodec(secret string) (*Codec, error) {
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// base64(nonce || ciphertext). Encrypting the same plaintext twice yields
// different outputs.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("error generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It fails on anything that was not produced by
// Encrypt under the same secret: wrong key, truncation, bit flips, or
// input that is not base64.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("error decoding ciphertext: %w", err)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("error decrypting: %w", err)
	}

	return string(plaintext), nil
}
