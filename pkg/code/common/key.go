package common

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

// Key is either a 32 byte ed25519 public key or 64 byte ed25519 secret key
// (seed followed by public key), kept together with its base58 form.
type Key struct {
	bytesValue  []byte
	stringValue string
}

func NewKeyFromBytes(value []byte) (*Key, error) {
	copied := make([]byte, len(value))
	copy(copied, value)

	k := &Key{
		bytesValue:  copied,
		stringValue: base58.Encode(copied),
	}

	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

func NewKeyFromString(value string) (*Key, error) {
	if len(value) == 0 {
		return nil, errors.New("key is empty")
	}

	bytesValue, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding string as base58")
	}

	k := &Key{
		bytesValue:  bytesValue,
		stringValue: value,
	}

	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Key) ToBytes() []byte {
	return k.bytesValue
}

func (k *Key) ToBase58() string {
	return k.stringValue
}

// ToPublicKey returns the key as a solana.PublicKey. It fails for secret keys.
func (k *Key) ToPublicKey() (solana.PublicKey, error) {
	if !k.IsPublic() {
		return solana.PublicKey{}, errors.New("key isn't public")
	}
	return solana.PublicKeyFromBytes(k.bytesValue)
}

func (k *Key) IsPublic() bool {
	return len(k.bytesValue) != ed25519.PrivateKeySize
}

func (k *Key) Validate() error {
	if k == nil {
		return errors.New("key is nil")
	}

	if len(k.bytesValue) != ed25519.PublicKeySize && len(k.bytesValue) != ed25519.PrivateKeySize {
		return errors.New("key must be an ed25519 public or private key")
	}

	if base58.Encode(k.bytesValue) != k.stringValue {
		return errors.New("bytes and string representation don't match")
	}

	return nil
}
