package token

import (
	"math"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
	"github.com/code-payments/solana-instruction-api/pkg/solana/binary"
	"github.com/code-payments/solana-instruction-api/pkg/solana/system"
)

// ProgramKey is the address of the token program that should be used.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

type Command byte

const (
	CommandInitializeMint Command = iota
	// nolint:varcheck,deadcode,unused
	CommandInitializeAccount
	// nolint:varcheck,deadcode,unused
	CommandInitializeMultisig
	CommandTransfer
	// nolint:varcheck,deadcode,unused
	CommandApprove
	// nolint:varcheck,deadcode,unused
	CommandRevoke
	// nolint:varcheck,deadcode,unused
	CommandSetAuthority
	CommandMintTo

	CommandUnknown = Command(math.MaxUint8)
)

const (
	amountDataSize = 1 + 8

	initializeMintBaseDataSize = 1 + 1 + 32
)

// GetCommand returns the token program command encoded in the instruction.
func GetCommand(i solana.Instruction) (Command, error) {
	if i.Program != ProgramKey {
		return CommandUnknown, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 {
		return CommandUnknown, errors.New("token instruction missing data")
	}

	return Command(i.Data[0]), nil
}

// InitializeMint returns an instruction that initializes a new mint. The
// freeze authority is optional.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L24-L40
func InitializeMint(mint, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey, decimals byte) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	//   1. `[]` Rent sysvar
	//
	// InitializeMint {
	//   decimals: u8,
	//   mint_authority: Pubkey,
	//   freeze_authority: COption<Pubkey>,
	// }
	data := make([]byte, initializeMintBaseDataSize+binary.OptionalKey32Size(freezeAuthority))

	var offset int
	binary.PutUint8(data[offset:], byte(CommandInitializeMint), &offset)
	binary.PutUint8(data[offset:], decimals, &offset)
	binary.PutKey32(data[offset:], mintAuthority, &offset)
	binary.PutOptionalKey32(data[offset:], freezeAuthority, &offset)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

type DecompiledInitializeMint struct {
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Decimals        byte
}

func DecompileInitializeMint(i solana.Instruction) (*DecompiledInitializeMint, error) {
	if i.Program != ProgramKey {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || Command(i.Data[0]) != CommandInitializeMint {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if i.Accounts[1].PublicKey != system.RentSysVar {
		return nil, errors.New("invalid rent sysvar")
	}
	if len(i.Data) != initializeMintBaseDataSize+1 && len(i.Data) != initializeMintBaseDataSize+1+32 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	v := &DecompiledInitializeMint{
		Mint: i.Accounts[0].PublicKey,
	}

	offset := 1
	binary.GetUint8(i.Data[offset:], &v.Decimals, &offset)
	binary.GetKey32(i.Data[offset:], &v.MintAuthority, &offset)
	binary.GetOptionalKey32(i.Data[offset:], &v.FreezeAuthority, &offset)

	if offset != len(i.Data) {
		return nil, errors.Errorf("invalid freeze authority option for data size %d", len(i.Data))
	}

	return v, nil
}

// MintTo returns an instruction that mints new tokens to an account. The
// mint authority must sign.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L141-L155
func MintTo(mint, dest, authority solana.PublicKey, amount uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The mint.
	//   1. `[writable]` The account to mint tokens to.
	//   2. `[signer]` The mint's minting authority.
	//
	//   * Multisignature authority
	//   0. `[writable]` The mint.
	//   1. `[writable]` The account to mint tokens to.
	//   2. `[]` The mint's multisignature mint-tokens authority.
	//   3. ..3+M `[signer]` M signer accounts.
	return solana.NewInstruction(
		ProgramKey,
		encodeAmount(CommandMintTo, amount),
		solana.NewAccountMeta(mint, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

type DecompiledMintTo struct {
	Mint        solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
}

func DecompileMintTo(i solana.Instruction) (*DecompiledMintTo, error) {
	amount, err := decompileAmount(i, CommandMintTo)
	if err != nil {
		return nil, err
	}

	return &DecompiledMintTo{
		Mint:        i.Accounts[0].PublicKey,
		Destination: i.Accounts[1].PublicKey,
		Authority:   i.Accounts[2].PublicKey,
		Amount:      amount,
	}, nil
}

// Transfer returns an instruction that moves tokens between two token accounts
// of the same mint. The owner of the source account must sign.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L76-L91
func Transfer(source, dest, owner solana.PublicKey, amount uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   * Single owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The source account's owner/delegate.
	//
	//   * Multisignature owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[writable]` The destination account.
	//   2. `[]` The source account's multisignature owner/delegate.
	//   3. ..3+M `[signer]` M signer accounts.
	return solana.NewInstruction(
		ProgramKey,
		encodeAmount(CommandTransfer, amount),
		solana.NewAccountMeta(source, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

type DecompiledTransfer struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Owner       solana.PublicKey
	Amount      uint64
}

func DecompileTransfer(i solana.Instruction) (*DecompiledTransfer, error) {
	amount, err := decompileAmount(i, CommandTransfer)
	if err != nil {
		return nil, err
	}

	return &DecompiledTransfer{
		Source:      i.Accounts[0].PublicKey,
		Destination: i.Accounts[1].PublicKey,
		Owner:       i.Accounts[2].PublicKey,
		Amount:      amount,
	}, nil
}

func encodeAmount(command Command, amount uint64) []byte {
	data := make([]byte, amountDataSize)

	var offset int
	binary.PutUint8(data[offset:], byte(command), &offset)
	binary.PutUint64(data[offset:], amount, &offset)

	return data
}

func decompileAmount(i solana.Instruction, command Command) (uint64, error) {
	if i.Program != ProgramKey {
		return 0, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || Command(i.Data[0]) != command {
		return 0, solana.ErrIncorrectInstruction
	}
	// note: we do < 3 instead of != 3 in order to support multisig cases.
	if len(i.Accounts) < 3 {
		return 0, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != amountDataSize {
		return 0, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	var amount uint64
	offset := 1
	binary.GetUint64(i.Data[offset:], &amount, &offset)
	return amount, nil
}
