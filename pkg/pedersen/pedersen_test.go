package pedersen

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

func TestDerive(t *testing.T) {
	p, err := Derive()
	require.NoError(t, err)
	require.NoError(t, ValidateParameters(p.G(), p.Y(), p.H()))

	q, err := Derive()
	require.NoError(t, err)
	assert.True(t, p.H().Equal(q.H()), "bases must be deterministic")
}

func TestValidateParameters(t *testing.T) {
	g := sample.G1(rand.Reader)
	assert.ErrorIs(t, ValidateParameters(nil, g, g), ErrNilFields)
	assert.ErrorIs(t, ValidateParameters(curve.NewG1(), g, sample.G1(rand.Reader)), ErrIdentity)
	assert.ErrorIs(t, ValidateParameters(g, g, sample.G1(rand.Reader)), ErrEqualBases)
}

func TestCommit_Hiding(t *testing.T) {
	p, err := Derive()
	require.NoError(t, err)
	id := curve.NewScalarUint64(7)
	prv := sample.Scalar(rand.Reader)

	c1 := p.Commit(id, prv, sample.Scalar(rand.Reader))
	c2 := p.Commit(id, prv, sample.Scalar(rand.Reader))
	assert.False(t, c1.Equal(c2))
}

func TestVerify(t *testing.T) {
	p, err := Derive()
	require.NoError(t, err)

	id, prv, r := sample.Scalar(rand.Reader), sample.Scalar(rand.Reader), sample.Scalar(rand.Reader)
	C := p.Commit(id, prv, r)

	a, b, c := sample.Scalar(rand.Reader), sample.Scalar(rand.Reader), sample.Scalar(rand.Reader)
	S := p.Commit(a, b, c)
	e := sample.Scalar(rand.Reader)

	za := curve.NewScalar().Set(e).Mul(id).Add(a)
	zb := curve.NewScalar().Set(e).Mul(prv).Add(b)
	zc := curve.NewScalar().Set(e).Mul(r).Add(c)
	assert.True(t, p.Verify(za, zb, zc, e, S, C))

	zc.Add(curve.NewScalarUint64(1))
	assert.False(t, p.Verify(za, zb, zc, e, S, C))
	assert.False(t, p.Verify(za, zb, nil, e, S, C))
}
