package solana

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana/shortvec"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

const (
	accountMetaSignerFlag   byte = 1 << 0
	accountMetaWritableFlag byte = 1 << 1
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Instruction represents a transaction instruction.
//
// The order of Accounts is defined by the target program and is part of the
// instruction's meaning.
type Instruction struct {
	Program  PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction. The account list and data are
// copied, so callers may reuse their buffers.
func NewInstruction(program PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	copiedAccounts := make([]AccountMeta, len(accounts))
	copy(copiedAccounts, accounts)

	copiedData := make([]byte, len(data))
	copy(copiedData, data)

	return Instruction{
		Program:  program,
		Data:     copiedData,
		Accounts: copiedAccounts,
	}
}

// Marshal returns the canonical binary form of the instruction:
//
//	program (32) | shortvec(len(accounts)) | [pubkey (32) | flags (1)]... | shortvec(len(data)) | data
//
// Flags use bit 0 for signer and bit 1 for writable.
func (i Instruction) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_, _ = b.Write(i.Program[:])

	_, _ = shortvec.EncodeLen(b, len(i.Accounts))
	for _, a := range i.Accounts {
		_, _ = b.Write(a.PublicKey[:])

		var flags byte
		if a.IsSigner {
			flags |= accountMetaSignerFlag
		}
		if a.IsWritable {
			flags |= accountMetaWritableFlag
		}
		_ = b.WriteByte(flags)
	}

	_, _ = shortvec.EncodeLen(b, len(i.Data))
	_, _ = b.Write(i.Data)

	return b.Bytes()
}

// Unmarshal decodes the output of Marshal.
func (i *Instruction) Unmarshal(b []byte) error {
	buf := bytes.NewBuffer(b)

	if _, err := io.ReadFull(buf, i.Program[:]); err != nil {
		return errors.Wrap(err, "failed to read program")
	}

	accountLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}

	i.Accounts = make([]AccountMeta, accountLen)
	for j := 0; j < accountLen; j++ {
		if _, err := io.ReadFull(buf, i.Accounts[j].PublicKey[:]); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", j)
		}

		flags, err := buf.ReadByte()
		if err != nil {
			return errors.Wrapf(err, "failed to read account flags at index %d", j)
		}
		if flags&^(accountMetaSignerFlag|accountMetaWritableFlag) != 0 {
			return errors.Errorf("invalid account flags at index %d: %x", j, flags)
		}

		i.Accounts[j].IsSigner = flags&accountMetaSignerFlag != 0
		i.Accounts[j].IsWritable = flags&accountMetaWritableFlag != 0
	}

	dataLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read data len")
	}

	i.Data = make([]byte, dataLen)
	if _, err := io.ReadFull(buf, i.Data); err != nil {
		return errors.Wrap(err, "failed to read data")
	}

	if buf.Len() != 0 {
		return errors.Errorf("unexpected trailing bytes: %d", buf.Len())
	}

	return nil
}

// Equal reports whether two instructions are byte-for-byte identical, including
// account order and flags.
func (i Instruction) Equal(other Instruction) bool {
	return bytes.Equal(i.Marshal(), other.Marshal())
}
