package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrInvalidToken = errors.New("invalid sealed token")

const nonceSize = 24

// SecretboxSealer encrypts tokens with NaCl secretbox under a key derived from the configured secret.
type SecretboxSealer struct {
	key [32]byte
}

// NewSecretboxSealer builds SecretboxSealer from the provided secret.
func NewSecretboxSealer(secret string) *SecretboxSealer {
	return &SecretboxSealer{key: sha256.Sum256([]byte(secret))}
}

// Seal encrypts token and returns base64 encoded nonce and ciphertext.
func (s *SecretboxSealer) Seal(token string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

// Open reverses Seal.
func (s *SecretboxSealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidToken
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrInvalidToken
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrInvalidToken
	}
	return string(plain), nil
}

func (s *SecretboxSealer) Name() string {
	return "secretbox"
}
