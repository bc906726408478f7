package common

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrEntropyUnavailable means the random source couldn't supply a full
	// seed. No key material is returned alongside it.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")
)

// DefaultKeypairGenerator draws seeds from the operating system's CSPRNG.
var DefaultKeypairGenerator = NewKeypairGenerator(rand.Reader)

// KeypairGenerator creates ed25519 keypairs from seeds read off an entropy
// source. The source must be safe for concurrent use if the generator is
// shared across goroutines.
type KeypairGenerator struct {
	entropy io.Reader
}

func NewKeypairGenerator(entropy io.Reader) *KeypairGenerator {
	return &KeypairGenerator{
		entropy: entropy,
	}
}

// Generate returns a new account holding both halves of the keypair. The
// secret key is the 32 byte seed followed by the 32 byte public key.
func (g *KeypairGenerator) Generate() (*Account, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(g.entropy, seed); err != nil {
		return nil, errors.Wrapf(ErrEntropyUnavailable, "reading seed: %v", err)
	}

	privateKey := ed25519.NewKeyFromSeed(seed)

	key, err := NewKeyFromBytes(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}
