package testutil

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"sync"
)

type deterministicReader struct {
	mu      sync.Mutex
	seed    [32]byte
	counter uint64
	buf     []byte
}

// NewDeterministicReader returns a reproducible byte stream derived from seed.
// It is only suitable for test fixtures.
func NewDeterministicReader(seed string) io.Reader {
	return &deterministicReader{
		seed: sha256.Sum256([]byte(seed)),
	}
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for n < len(p) {
		if len(r.buf) == 0 {
			block := make([]byte, len(r.seed)+8)
			copy(block, r.seed[:])
			binary.LittleEndian.PutUint64(block[len(r.seed):], r.counter)
			r.counter++

			sum := sha256.Sum256(block)
			r.buf = sum[:]
		}

		copied := copy(p[n:], r.buf)
		r.buf = r.buf[copied:]
		n += copied
	}
	return n, nil
}
