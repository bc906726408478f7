package instruction

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

// ParseAddress decodes a required base58 address. The field name is attached
// to any error so it can be reported to the caller.
func ParseAddress(field, value string) (solana.PublicKey, error) {
	if len(value) == 0 {
		return solana.PublicKey{}, MissingFieldError{Field: field}
	}

	pub, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, field)
	}
	return pub, nil
}

// ParseOptionalAddress is ParseAddress for fields that may be omitted.
func ParseOptionalAddress(field, value string) (*solana.PublicKey, error) {
	if len(value) == 0 {
		return nil, nil
	}

	pub, err := ParseAddress(field, value)
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// ParseSecretKey decodes a required base58 ed25519 secret key.
func ParseSecretKey(field, value string) ([]byte, error) {
	if len(value) == 0 {
		return nil, MissingFieldError{Field: field}
	}

	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSecretKey, field)
	}
	return decoded, nil
}

// ParseSignature decodes a required base58 detached signature.
func ParseSignature(field, value string) ([]byte, error) {
	if len(value) == 0 {
		return nil, MissingFieldError{Field: field}
	}

	sig, err := solana.SignatureFromBase58(value)
	if err != nil {
		return nil, errors.Wrap(err, field)
	}
	return sig[:], nil
}

// ParsePublicKey decodes a required base58 public key used for verification.
// Unlike ParseAddress, failures are reported as invalid public keys.
func ParsePublicKey(field, value string) ([]byte, error) {
	if len(value) == 0 {
		return nil, MissingFieldError{Field: field}
	}

	pub, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, field)
	}
	return pub[:], nil
}

// ParseDecimals range checks a decimals value supplied as a wider integer.
func ParseDecimals(value int64) (uint8, error) {
	if value < 0 || value > 255 {
		return 0, ErrInvalidDecimals
	}
	return uint8(value), nil
}
