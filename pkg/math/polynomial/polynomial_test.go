package polynomial

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/party"
)

func TestPolynomial_Constant(t *testing.T) {
	deg := 10
	secret := sample.Scalar(rand.Reader)
	poly := NewPolynomial(rand.Reader, deg, secret)
	require.True(t, poly.Constant().Equal(secret))
	require.Equal(t, deg, poly.Degree())
}

func TestPolynomial_Evaluate(t *testing.T) {
	polynomial := &Polynomial{[]*curve.Scalar{
		curve.NewScalarUint64(1),
		curve.NewScalarUint64(0),
		curve.NewScalarUint64(1),
	}}

	for index := 0; index < 100; index++ {
		x := uint64(mrand.Uint32()) + 1
		result := new(big.Int).SetUint64(x)
		result.Mul(result, result)
		result.Add(result, big.NewInt(1))
		computedResult := polynomial.Evaluate(curve.NewScalarUint64(x))
		expectedResult := curve.NewScalar().SetNat(new(saferith.Nat).SetBig(result, result.BitLen()))
		assert.True(t, expectedResult.Equal(computedResult))
	}

	assert.Panics(t, func() { polynomial.Evaluate(curve.NewScalar()) })
}

func TestLagrange(t *testing.T) {
	N := 10
	allIDs := make([]party.ID, N)
	for i := range allIDs {
		allIDs[i] = party.FromIndex(i + 1)
	}
	coefsEven := Lagrange(allIDs)
	coefsOdd := Lagrange(allIDs[:N-1])
	sumEven := curve.NewScalar()
	sumOdd := curve.NewScalar()
	for _, c := range coefsEven {
		sumEven.Add(c)
	}
	for _, c := range coefsOdd {
		sumOdd.Add(c)
	}
	one := curve.NewScalarUint64(1)
	assert.True(t, sumEven.Equal(one))
	assert.True(t, sumOdd.Equal(one))
}

func TestLagrange_Reconstruct(t *testing.T) {
	secret := sample.Scalar(rand.Reader)
	poly := NewPolynomial(rand.Reader, 2, secret)

	ids := []party.ID{party.FromIndex(2), party.FromIndex(4), party.FromIndex(5)}
	coefs := Lagrange(ids)
	reconstructed := curve.NewScalar()
	for _, id := range ids {
		share := poly.Evaluate(id.Scalar())
		reconstructed.Add(share.Mul(coefs[id]))
	}
	assert.True(t, reconstructed.Equal(secret))

	// too few shares to interpolate a degree 2 polynomial
	coefs = Lagrange(ids[:2])
	partial := curve.NewScalar()
	for _, id := range ids[:2] {
		partial.Add(poly.Evaluate(id.Scalar()).Mul(coefs[id]))
	}
	assert.False(t, partial.Equal(secret))
}
