package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

// GenerateSolanaKeys returns n random ed25519 public keys.
func GenerateSolanaKeys(t *testing.T, n int) []solana.PublicKey {
	keys := make([]solana.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		keys[i], err = solana.PublicKeyFromBytes(p)
		require.NoError(t, err)
	}
	return keys
}

// NewRandomAccount returns an account that holds its secret key.
func NewRandomAccount(t *testing.T) *common.Account {
	account, err := common.NewRandomAccount()
	require.NoError(t, err)

	return account
}
