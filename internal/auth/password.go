package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const saltBytes = 64

// Hasher derives password digests with PBKDF2-SHA512. Iterations and key
// length come from configuration so they can be tuned without a code
// change.
type Hasher struct {
	iterations int
	keyLength  int
}

// NewHasher creates a Hasher.
func NewHasher(iterations, keyLength int) (*Hasher, error) {
	if iterations <= 0 {
		return nil, errors.New("pbkdf2 iterations must be positive")
	}
	if keyLength <= 0 {
		return nil, errors.New("pbkdf2 key length must be positive")
	}
	return &Hasher{iterations: iterations, keyLength: keyLength}, nil
}

// GenerateSalt returns a fresh random salt, base64 encoded.
func (h *Hasher) GenerateSalt() (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Hash derives the stored digest for a password and salt, base64 encoded.
func (h *Hasher) Hash(password, salt string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	if salt == "" {
		return "", errors.New("salt must not be empty")
	}
	derived := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, h.keyLength, sha512.New)
	return base64.StdEncoding.EncodeToString(derived), nil
}

// Verify recomputes the digest with the stored salt and compares it to the
// stored value in constant time.
func (h *Hasher) Verify(storedHash, salt, candidate string) (bool, error) {
	if storedHash == "" {
		return false, errors.New("stored password hash is empty")
	}
	computed, err := h.Hash(candidate, salt)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(storedHash), []byte(computed)), nil
}
