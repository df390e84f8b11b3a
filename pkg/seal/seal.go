// Package seal implements the content cipher for confidential process
// bodies: AES-256-GCM with a fresh random nonce per encryption, packaged
// as base64(nonce || ciphertext) so the blob can live in a text column.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	keySize   = 32
	nonceSize = 12
)

var (
	ErrBadKey         = errors.New("encryption key is not a valid sealed-content key")
	ErrMalformedBlob  = errors.New("sealed blob is malformed")
	ErrAuthentication = errors.New("sealed blob failed authentication")
	ErrInvalidText    = errors.New("decrypted content is not valid UTF-8 text")
)

// GenerateKey returns a fresh 256-bit key encoded as base64 text.
// Keys are independent across calls.
func GenerateKey() (string, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generating content key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt seals plaintext under key. The nonce is drawn fresh on every
// call, so encrypting the same content twice never yields the same blob.
func Encrypt(plaintext, key string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. It fails with
// ErrMalformedBlob when the blob cannot contain a nonce, with
// ErrAuthentication when the tag check fails (wrong key or tampered
// data), and with ErrInvalidText when the recovered bytes are not UTF-8.
func Decrypt(blob, key string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	if len(sealed) < nonceSize {
		return "", fmt.Errorf("%w: %d bytes is too short to hold a nonce", ErrMalformedBlob, len(sealed))
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrAuthentication
	}

	if !utf8.Valid(plaintext) {
		return "", ErrInvalidText
	}
	return string(plaintext), nil
}

func newGCM(key string) (cipher.AEAD, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadKey, len(raw), keySize)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	return gcm, nil
}
