package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signature is a detached ed25519 signature.
type Signature [ed25519.SignatureSize]byte

// SignatureFromBase58 decodes a base58 signature, which must be exactly 64 bytes.
func SignatureFromBase58(value string) (Signature, error) {
	var sig Signature

	decoded, err := base58.Decode(value)
	if err != nil || len(value) == 0 {
		return sig, ErrInvalidSignature
	}

	return SignatureFromBytes(decoded)
}

// SignatureFromBytes copies a raw 64 byte signature.
func SignatureFromBytes(value []byte) (Signature, error) {
	var sig Signature
	if len(value) != len(sig) {
		return sig, ErrInvalidSignature
	}

	copy(sig[:], value)
	return sig, nil
}

func (s Signature) ToBase58() string {
	return base58.Encode(s[:])
}

func (s Signature) String() string {
	return s.ToBase58()
}
