package instruction

import (
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
	"github.com/code-payments/solana-instruction-api/pkg/solana/system"
	"github.com/code-payments/solana-instruction-api/pkg/solana/token"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindSendSol
	KindCreateToken
	KindMintTo
	KindSendToken
)

func (k Kind) String() string {
	switch k {
	case KindSendSol:
		return "send_sol"
	case KindCreateToken:
		return "create_token"
	case KindMintTo:
		return "mint_to"
	case KindSendToken:
		return "send_token"
	}
	return "unknown"
}

// Result is implemented by every builder output.
type Result interface {
	Kind() Kind
	GetInstruction() solana.Instruction
}

type SendSolArgs struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Lamports uint64
}

type SendSolResult struct {
	Instruction solana.Instruction
	From        solana.PublicKey
	To          solana.PublicKey
	Lamports    uint64
}

func (r *SendSolResult) Kind() Kind                        { return KindSendSol }
func (r *SendSolResult) GetInstruction() solana.Instruction { return r.Instruction }

type CreateTokenArgs struct {
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Decimals        uint8
}

type CreateTokenResult struct {
	Instruction     solana.Instruction
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Decimals        uint8
}

func (r *CreateTokenResult) Kind() Kind                        { return KindCreateToken }
func (r *CreateTokenResult) GetInstruction() solana.Instruction { return r.Instruction }

type MintToArgs struct {
	Mint        solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
}

type MintToResult struct {
	Instruction solana.Instruction
	Mint        solana.PublicKey
	// Destination is the wallet that owns DestinationAccount
	Destination        solana.PublicKey
	DestinationAccount solana.PublicKey
	Authority          solana.PublicKey
	Amount             uint64
}

func (r *MintToResult) Kind() Kind                        { return KindMintTo }
func (r *MintToResult) GetInstruction() solana.Instruction { return r.Instruction }

type SendTokenArgs struct {
	Destination solana.PublicKey
	Mint        solana.PublicKey
	Owner       solana.PublicKey
	Amount      uint64
}

type SendTokenResult struct {
	Instruction solana.Instruction
	Owner       solana.PublicKey
	Mint        solana.PublicKey
	// Destination is the wallet that owns DestinationAccount
	Destination        solana.PublicKey
	SourceAccount      solana.PublicKey
	DestinationAccount solana.PublicKey
	Amount             uint64
}

func (r *SendTokenResult) Kind() Kind                        { return KindSendToken }
func (r *SendTokenResult) GetInstruction() solana.Instruction { return r.Instruction }

// Builder validates typed arguments and produces unsigned instructions. It
// holds no state and is safe for concurrent use.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// SendSol builds a native system program transfer.
func (b *Builder) SendSol(args SendSolArgs) (*SendSolResult, error) {
	if args.Lamports == 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "lamports")
	}

	return &SendSolResult{
		Instruction: system.Transfer(args.From, args.To, args.Lamports),
		From:        args.From,
		To:          args.To,
		Lamports:    args.Lamports,
	}, nil
}

// CreateToken builds the token program's mint initialization.
func (b *Builder) CreateToken(args CreateTokenArgs) (*CreateTokenResult, error) {
	var freezeAuthority *solana.PublicKey
	if args.FreezeAuthority != nil {
		copied := *args.FreezeAuthority
		freezeAuthority = &copied
	}

	return &CreateTokenResult{
		Instruction:     token.InitializeMint(args.Mint, args.MintAuthority, freezeAuthority, args.Decimals),
		Mint:            args.Mint,
		MintAuthority:   args.MintAuthority,
		FreezeAuthority: freezeAuthority,
		Decimals:        args.Decimals,
	}, nil
}

// MintTo mints into the destination wallet's associated token account.
func (b *Builder) MintTo(args MintToArgs) (*MintToResult, error) {
	if args.Amount == 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "amount")
	}

	destinationAccount, err := token.GetAssociatedAccount(args.Destination, args.Mint)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving destination token account")
	}

	return &MintToResult{
		Instruction:        token.MintTo(args.Mint, destinationAccount, args.Authority, args.Amount),
		Mint:               args.Mint,
		Destination:        args.Destination,
		DestinationAccount: destinationAccount,
		Authority:          args.Authority,
		Amount:             args.Amount,
	}, nil
}

// SendToken transfers between the owner's and destination's associated token
// accounts for the mint.
func (b *Builder) SendToken(args SendTokenArgs) (*SendTokenResult, error) {
	if args.Amount == 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "amount")
	}

	sourceAccount, err := token.GetAssociatedAccount(args.Owner, args.Mint)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving source token account")
	}

	destinationAccount, err := token.GetAssociatedAccount(args.Destination, args.Mint)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving destination token account")
	}

	return &SendTokenResult{
		Instruction:        token.Transfer(sourceAccount, destinationAccount, args.Owner, args.Amount),
		Owner:              args.Owner,
		Mint:               args.Mint,
		Destination:        args.Destination,
		SourceAccount:      sourceAccount,
		DestinationAccount: destinationAccount,
		Amount:             args.Amount,
	}, nil
}
