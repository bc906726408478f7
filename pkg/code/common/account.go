package common

import (
	"bytes"
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
	"github.com/code-payments/solana-instruction-api/pkg/solana/token"
)

// Account is a ledger account identified by its public key. Accounts created
// from a secret key can also sign.
type Account struct {
	publicKey  *Key
	privateKey *Key // Optional
}

func NewAccountFromPublicKey(publicKey *Key) (*Account, error) {
	account := &Account{
		publicKey: publicKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPublicKeyBytes(publicKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromPublicKeyString(publicKey string) (*Account, error) {
	key, err := NewKeyFromString(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromSolanaPublicKey(publicKey solana.PublicKey) (*Account, error) {
	return NewAccountFromPublicKeyBytes(publicKey[:])
}

func NewAccountFromPrivateKey(privateKey *Key) (*Account, error) {
	if privateKey.IsPublic() {
		return nil, errors.New("private key isn't private")
	}

	// The public half is taken as-is from the secret so Validate can catch
	// secrets whose halves don't belong together.
	publicKey, err := NewKeyFromBytes(privateKey.ToBytes()[ed25519.SeedSize:])
	if err != nil {
		return nil, errors.Wrap(err, "error creating public key from private key")
	}

	account := &Account{
		publicKey:  publicKey,
		privateKey: privateKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPrivateKeyBytes(privateKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}

func NewAccountFromPrivateKeyString(privateKey string) (*Account, error) {
	key, err := NewKeyFromString(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}

func NewRandomAccount() (*Account, error) {
	return DefaultKeypairGenerator.Generate()
}

func (a *Account) PublicKey() *Key {
	return a.publicKey
}

func (a *Account) PrivateKey() *Key {
	return a.privateKey
}

func (a *Account) ToSolanaPublicKey() solana.PublicKey {
	var pub solana.PublicKey
	copy(pub[:], a.publicKey.ToBytes())
	return pub
}

func (a *Account) Sign(message []byte) (solana.Signature, error) {
	if a.privateKey == nil {
		return solana.Signature{}, errors.New("private key not available")
	}

	var signature solana.Signature
	copy(signature[:], ed25519.Sign(a.privateKey.ToBytes(), message))
	return signature, nil
}

func (a *Account) ToAssociatedTokenAccount(mint *Account) (*Account, error) {
	ata, err := token.GetAssociatedAccount(a.ToSolanaPublicKey(), mint.ToSolanaPublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "error getting associated token account")
	}

	return NewAccountFromSolanaPublicKey(ata)
}

func (a *Account) IsOnCurve() bool {
	return isOnCurve(a.PublicKey().ToBytes())
}

func (a *Account) Validate() error {
	if a == nil {
		return errors.New("account is nil")
	}

	if err := a.PublicKey().Validate(); err != nil {
		return errors.Wrap(err, "error validating public key")
	}

	if !a.PublicKey().IsPublic() {
		return errors.New("public key isn't public")
	}

	// Private keys are optional
	if a.privateKey == nil {
		return nil
	}

	if err := a.privateKey.Validate(); err != nil {
		return errors.Wrap(err, "error validating private key")
	}

	if a.privateKey.IsPublic() {
		return errors.New("private key isn't private")
	}

	if !a.IsOnCurve() {
		return errors.New("public key isn't a valid curve point")
	}

	seed := a.privateKey.ToBytes()[:ed25519.SeedSize]
	expectedPublicKey := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if !bytes.Equal(a.PublicKey().ToBytes(), expectedPublicKey) {
		return errors.New("private key doesn't map to public key")
	}

	return nil
}

func (a *Account) String() string {
	return a.publicKey.ToBase58()
}

func isOnCurve(pubKey ed25519.PublicKey) bool {
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}

	// Try to parse the public key as a point
	_, err := new(edwards25519.Point).SetBytes(pubKey)
	return err == nil
}
