package hash

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}

	assert.NoError(t, testFunc(new(saferith.Nat).SetUint64(35)))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader).ActOnBase()))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader)))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc("label"))

	var i *saferith.Nat
	assert.Error(t, testFunc(i))

	assert.Panics(t, func() { _ = testFunc(3.14) })
}

func TestHash_DomainSeparation(t *testing.T) {
	h1 := New()
	_ = h1.WriteAny([]byte("ab"), []byte("c"))
	h2 := New()
	_ = h2.WriteAny([]byte("a"), []byte("bc"))
	assert.False(t, bytes.Equal(h1.Sum(), h2.Sum()))

	h3 := New()
	_ = h3.WriteAny("abc")
	h4 := New()
	_ = h4.WriteAny([]byte("abc"))
	assert.False(t, bytes.Equal(h3.Sum(), h4.Sum()))
}

func TestHash_Clone(t *testing.T) {
	h := New()
	_ = h.WriteAny([]byte("prefix"))
	c := h.Clone()
	assert.Equal(t, h.Sum(), c.Sum())

	_ = c.WriteAny([]byte("suffix"))
	assert.NotEqual(t, h.Sum(), c.Sum())
	assert.Len(t, h.Sum(), DigestLengthBytes)
}
