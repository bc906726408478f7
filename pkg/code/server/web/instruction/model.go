package instruction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/code/instruction"
	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

var (
	ErrMalformedBody = errors.New("request body must be a json object")
)

// UnknownFieldError is returned for request fields the endpoint doesn't accept
type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}

// InvalidFieldTypeError is returned when a field holds the wrong JSON type
type InvalidFieldTypeError struct {
	Field    string
	Expected string
}

func (e InvalidFieldTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s", e.Field, e.Expected)
}

func isRequestFormatError(err error) bool {
	switch errors.Cause(err).(type) {
	case UnknownFieldError, InvalidFieldTypeError:
		return true
	}
	return errors.Cause(err) == ErrMalformedBody
}

// requestFields is the loosely typed request body. Accessors coerce values into
// the typed arguments the instruction package expects.
type requestFields map[string]any

// decodeRequestFields reads a JSON object from the request body, rejecting any
// field not in allowed.
func decodeRequestFields(r *http.Request, allowed ...string) (requestFields, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrMalformedBody
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var fields requestFields
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return nil, ErrMalformedBody
	}
	if decoder.More() {
		return nil, ErrMalformedBody
	}

	isAllowed := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		isAllowed[name] = struct{}{}
	}
	for name := range fields {
		if _, ok := isAllowed[name]; !ok {
			return nil, UnknownFieldError{Field: name}
		}
	}

	return fields, nil
}

func (f requestFields) optionalString(name string) (string, bool, error) {
	raw, ok := f[name]
	if !ok || raw == nil {
		return "", false, nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", false, InvalidFieldTypeError{Field: name, Expected: "string"}
	}
	return value, true, nil
}

func (f requestFields) requiredString(name string) (string, error) {
	value, ok, err := f.optionalString(name)
	if err != nil {
		return "", err
	} else if !ok {
		return "", instruction.MissingFieldError{Field: name}
	}
	return value, nil
}

func (f requestFields) address(name string) (solana.PublicKey, error) {
	value, err := f.requiredString(name)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return instruction.ParseAddress(name, value)
}

func (f requestFields) optionalAddress(name string) (*solana.PublicKey, error) {
	value, _, err := f.optionalString(name)
	if err != nil {
		return nil, err
	}
	return instruction.ParseOptionalAddress(name, value)
}

// numericText returns the decimal text of a field given as a JSON number or a
// numeric string. Booleans and other types are rejected.
func (f requestFields) numericText(name string) (string, error) {
	raw, ok := f[name]
	if !ok || raw == nil {
		return "", instruction.MissingFieldError{Field: name}
	}

	switch typed := raw.(type) {
	case json.Number:
		return typed.String(), nil
	case string:
		return typed, nil
	}
	return "", InvalidFieldTypeError{Field: name, Expected: "integer"}
}

// amount accepts any non-negative integer that fits in a u64. Zero is allowed
// here and rejected by the builders that require a positive amount.
func (f requestFields) amount(name string) (uint64, error) {
	text, err := f.numericText(name)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(instruction.ErrInvalidAmount, "%s: %q is not a u64", name, text)
	}
	return value, nil
}

// decimals parses base 10 only, like amount.
func (f requestFields) decimals(name string) (uint8, error) {
	text, err := f.numericText(name)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, errors.Wrap(instruction.ErrInvalidDecimals, name)
	}

	decimals, err := instruction.ParseDecimals(value)
	if err != nil {
		return 0, errors.Wrap(err, name)
	}
	return decimals, nil
}

type accountMetaView struct {
	PublicKey  string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type signerAccountView struct {
	PublicKey string `json:"pubkey"`
	IsSigner  bool   `json:"isSigner"`
}

type instructionView struct {
	ProgramID       string `json:"program_id"`
	Accounts        any    `json:"accounts"`
	InstructionData string `json:"instruction_data"`
}

// toInstructionView renders an instruction with fully flagged account metas
func toInstructionView(ix solana.Instruction) *instructionView {
	accounts := make([]accountMetaView, len(ix.Accounts))
	for i, account := range ix.Accounts {
		accounts[i] = accountMetaView{
			PublicKey:  account.PublicKey.ToBase58(),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}
	return newInstructionView(ix, accounts)
}

// toBareInstructionView renders accounts as plain addresses
func toBareInstructionView(ix solana.Instruction) *instructionView {
	accounts := make([]string, len(ix.Accounts))
	for i, account := range ix.Accounts {
		accounts[i] = account.PublicKey.ToBase58()
	}
	return newInstructionView(ix, accounts)
}

// toSignerInstructionView renders accounts with only their signer flag
func toSignerInstructionView(ix solana.Instruction) *instructionView {
	accounts := make([]signerAccountView, len(ix.Accounts))
	for i, account := range ix.Accounts {
		accounts[i] = signerAccountView{
			PublicKey: account.PublicKey.ToBase58(),
			IsSigner:  account.IsSigner,
		}
	}
	return newInstructionView(ix, accounts)
}

func newInstructionView(ix solana.Instruction, accounts any) *instructionView {
	return &instructionView{
		ProgramID:       ix.Program.ToBase58(),
		Accounts:        accounts,
		InstructionData: base58.Encode(ix.Data),
	}
}

type keypairView struct {
	PublicKey string `json:"pubkey"`
	Secret    string `json:"secret"`
}

type signedMessageView struct {
	Signature string `json:"signature"`
	PublicKey string `json:"pubkey"`
	Message   string `json:"message"`
}

type verifiedMessageView struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	PublicKey string `json:"pubkey"`
}

type submissionView struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type submissionReceiptView struct {
	Status string          `json:"status"`
	Echoed *submissionView `json:"echoed"`
}
