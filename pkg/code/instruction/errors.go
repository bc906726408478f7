package instruction

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidDecimals = errors.New("decimals must be between 0 and 255")

	// Re-exported so callers can classify every validation failure from one
	// package.
	ErrInvalidAddress             = solana.ErrInvalidAddress
	ErrInvalidSignature           = solana.ErrInvalidSignature
	ErrAddressDerivationExhausted = solana.ErrAddressDerivationExhausted
	ErrInvalidSecretKey           = common.ErrInvalidSecretKey
	ErrInvalidPublicKey           = common.ErrInvalidPublicKey
	ErrEntropyUnavailable         = common.ErrEntropyUnavailable
)

// MissingFieldError is returned when a required input is absent.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsValidationError reports whether err is a caller input problem, as opposed
// to a failure of the environment.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := errors.Cause(err).(MissingFieldError); ok {
		return true
	}

	switch errors.Cause(err) {
	case ErrInvalidAmount,
		ErrInvalidDecimals,
		ErrInvalidAddress,
		ErrInvalidSignature,
		ErrInvalidSecretKey,
		ErrInvalidPublicKey,
		ErrAddressDerivationExhausted:
		return true
	}
	return false
}
