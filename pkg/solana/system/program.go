package system

import (
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
	"github.com/code-payments/solana-instruction-api/pkg/solana/binary"
)

const (
	// nolint:varcheck,deadcode,unused
	commandCreateAccount uint32 = iota
	// nolint:varcheck,deadcode,unused
	commandAssign
	commandTransfer
)

const transferDataSize = 4 + 8

// Transfer returns an instruction that moves lamports between two system accounts.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L86-L92
func Transfer(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	//
	// Transfer {
	//   lamports: u64,
	// }
	data := make([]byte, transferDataSize)

	var offset int
	binary.PutUint32(data[offset:], commandTransfer, &offset)
	binary.PutUint64(data[offset:], lamports, &offset)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

type DecompiledTransfer struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Lamports uint64
}

func DecompileTransfer(i solana.Instruction) (*DecompiledTransfer, error) {
	if i.Program != ProgramKey {
		return nil, solana.ErrIncorrectProgram
	}

	if len(i.Data) < 4 {
		return nil, solana.ErrIncorrectInstruction
	}

	var command uint32
	var offset int
	binary.GetUint32(i.Data[offset:], &command, &offset)
	if command != commandTransfer {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != transferDataSize {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	v := &DecompiledTransfer{
		From: i.Accounts[0].PublicKey,
		To:   i.Accounts[1].PublicKey,
	}
	binary.GetUint64(i.Data[offset:], &v.Lamports, &offset)
	return v, nil
}
