package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x := ModN(rand.Reader, n)
	_, _, lt := x.CmpMod(n)
	if lt != 1 {
		t.Errorf("ModN generated a number >= %v: %v", x, n)
	}
}

func TestScalar_Distinct(t *testing.T) {
	a := Scalar(rand.Reader)
	b := Scalar(rand.Reader)
	assert.False(t, a.Equal(b))
	assert.False(t, ScalarUnit(rand.Reader).IsZero())
}

func TestScalar_SameSourceSameScalar(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 128)
	a := Scalar(bytes.NewReader(seed))
	b := Scalar(bytes.NewReader(seed))
	assert.True(t, a.Equal(b))
}

func TestScalarPointPair(t *testing.T) {
	x, X := ScalarPointPair(rand.Reader)
	assert.True(t, x.ActOnBase().Equal(X))
	assert.False(t, G1(rand.Reader).IsIdentity())
}

func TestScalar_ShortReaderPanics(t *testing.T) {
	assert.Panics(t, func() {
		Scalar(bytes.NewReader([]byte{1, 2, 3}))
	})
}

var resultScalar *curve.Scalar

func BenchmarkScalar(b *testing.B) {
	for i := 0; i < b.N; i++ {
		resultScalar = Scalar(rand.Reader)
	}
}
