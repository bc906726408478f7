package common

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

var (
	ErrInvalidSecretKey = errors.New("invalid secret key")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Sign produces a detached ed25519 signature over message. The secret must
// be 64 bytes: a seed followed by the public key it derives.
func Sign(message, secret []byte) (solana.Signature, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return solana.Signature{}, ErrInvalidSecretKey
	}

	account, err := NewAccountFromPrivateKeyBytes(secret)
	if err != nil {
		return solana.Signature{}, ErrInvalidSecretKey
	}

	return account.Sign(message)
}

// Verify checks a detached signature. Mismatches report false; only inputs
// of the wrong length are errors.
func Verify(message, signature, publicKey []byte) (bool, error) {
	sig, err := solana.SignatureFromBytes(signature)
	if err != nil {
		return false, err
	}

	if len(publicKey) != ed25519.PublicKeySize {
		return false, ErrInvalidPublicKey
	}

	return ed25519.Verify(publicKey, message, sig[:]), nil
}
