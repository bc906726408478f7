package token

import (
	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

// AssociatedTokenAccountProgramKey is the address of the associated token account program that should be used.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

// GetAssociatedAccount returns the associated account address for an SPL token
// owned by wallet.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	return GetAssociatedAccountForProgram(wallet, mint, ProgramKey, AssociatedTokenAccountProgramKey)
}

// GetAssociatedAccountForProgram derives the associated account address with
// the seeds [wallet, tokenProgram, mint] under associatedProgram.
func GetAssociatedAccountForProgram(wallet, mint, tokenProgram, associatedProgram solana.PublicKey) (solana.PublicKey, error) {
	return solana.FindProgramAddress(
		associatedProgram,
		wallet[:],
		tokenProgram[:],
		mint[:],
	)
}
