package solana

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
)

// PublicKey is the 32 byte address of an account on the ledger. It is a value
// type, so copies never alias the underlying bytes.
type PublicKey [ed25519.PublicKeySize]byte

// PublicKeyFromBase58 decodes a base58 address. Anything that is not valid
// base58 or does not decode to exactly 32 bytes returns ErrInvalidAddress.
func PublicKeyFromBase58(value string) (PublicKey, error) {
	var pub PublicKey

	if len(value) == 0 {
		return pub, ErrInvalidAddress
	}

	decoded, err := base58.Decode(value)
	if err != nil {
		return pub, ErrInvalidAddress
	}

	return PublicKeyFromBytes(decoded)
}

// PublicKeyFromBytes copies a raw 32 byte address.
func PublicKeyFromBytes(value []byte) (PublicKey, error) {
	var pub PublicKey
	if len(value) != len(pub) {
		return pub, ErrInvalidAddress
	}

	copy(pub[:], value)
	return pub, nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for well known constants.
func MustPublicKeyFromBase58(value string) PublicKey {
	pub, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(errors.Wrapf(err, "invalid address constant %q", value))
	}
	return pub
}

// Bytes returns a copy of the address bytes.
func (p PublicKey) Bytes() []byte {
	b := make([]byte, len(p))
	copy(b, p[:])
	return b
}

// ToEd25519 returns a copy of the address as an ed25519.PublicKey.
func (p PublicKey) ToEd25519() ed25519.PublicKey {
	return ed25519.PublicKey(p.Bytes())
}

func (p PublicKey) ToBase58() string {
	return base58.Encode(p[:])
}

func (p PublicKey) String() string {
	return p.ToBase58()
}

func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

func (p PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(p[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.ToBase58()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PublicKey) UnmarshalText(text []byte) error {
	decoded, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}

	*p = decoded
	return nil
}
