package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CredentialVerifier maps a presented password to the form stored in the
// users table. The store comparison itself stays in the Authenticator;
// swapping the verifier never touches callers.
type CredentialVerifier interface {
	Transform(password string) string
}

// PlainVerifier compares credentials as stored, unhashed.
type PlainVerifier struct{}

func (PlainVerifier) Transform(password string) string { return password }

// SHA256Verifier compares against hex-encoded SHA-256 digests.
type SHA256Verifier struct{}

func (SHA256Verifier) Transform(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func VerifierFor(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "sha256":
		return SHA256Verifier{}, nil
	default:
		return nil, fmt.Errorf("unknown auth scheme %q", scheme)
	}
}
