package sample

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// SeededReader is a deterministic stream of pseudo random bytes, for reproducible runs.
//
// Anyone knowing the seed can predict every value sampled from it.
type SeededReader struct {
	cipher *chacha20.Cipher
}

// NewSeededReader returns the ChaCha20 keystream for a key derived from seed.
func NewSeededReader(seed uint64) *SeededReader {
	key := make([]byte, chacha20.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}
	return &SeededReader{cipher: c}
}

var _ io.Reader = (*SeededReader)(nil)

// Read implements io.Reader, and never fails.
func (r *SeededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
