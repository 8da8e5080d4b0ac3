package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const (
	screenIDLength     = 14
	confirmTokenLength = 24
	resetTokenBytes    = 24
)

// DeriveScreenID produces the user-facing handle from the signup email:
// the sha256 digest in hex, truncated. Collisions between distinct emails
// are possible and not checked against existing records.
func DeriveScreenID(email string) string {
	digest := sha256.Sum256([]byte(email))
	return hex.EncodeToString(digest[:])[:screenIDLength]
}

// DeriveConfirmToken produces the mail-confirmation token from the base64
// password digest: its raw bytes in hex, truncated.
func DeriveConfirmToken(passwordHash string) string {
	raw, err := base64.StdEncoding.DecodeString(passwordHash)
	if err != nil {
		raw = []byte(passwordHash)
	}
	encoded := hex.EncodeToString(raw)
	if len(encoded) < confirmTokenLength {
		return encoded
	}
	return encoded[:confirmTokenLength]
}

// NewResetToken returns a random hex token for the password-reset mail.
func NewResetToken() (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
