package binary

import (
	"encoding/binary"

	"github.com/code-payments/solana-instruction-api/pkg/solana"
)

const keySize = len(solana.PublicKey{})

func PutKey32(dst []byte, src solana.PublicKey, offset *int) {
	copy(dst, src[:])
	*offset += keySize
}

// PutOptionalKey32 writes a one byte option flag, followed by the key only
// when src is set. This matches the packed COption<Pubkey> used by the token
// program's instruction data.
func PutOptionalKey32(dst []byte, src *solana.PublicKey, offset *int) {
	if src == nil {
		dst[0] = 0
		*offset += 1
		return
	}

	dst[0] = 1
	copy(dst[1:], src[:])
	*offset += 1 + keySize
}

// OptionalKey32Size is the number of bytes PutOptionalKey32 writes for src.
func OptionalKey32Size(src *solana.PublicKey) int {
	if src == nil {
		return 1
	}
	return 1 + keySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func GetKey32(src []byte, dst *solana.PublicKey, offset *int) {
	copy(dst[:], src)
	*offset += keySize
}

func GetOptionalKey32(src []byte, dst **solana.PublicKey, offset *int) {
	if src[0] != 1 {
		*dst = nil
		*offset += 1
		return
	}

	var key solana.PublicKey
	copy(key[:], src[1:])
	*dst = &key
	*offset += 1 + keySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}
