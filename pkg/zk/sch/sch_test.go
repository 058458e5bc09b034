package zksch

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

func TestSchPass(t *testing.T) {
	a := NewRandomness(rand.Reader, nil)
	x, X := sample.ScalarPointPair(rand.Reader)

	proof := a.Prove(hash.New(), X, x, nil)
	assert.True(t, proof.Verify(hash.New(), X, a.Commitment(), nil), "failed to verify response")

	p := NewProof(rand.Reader, hash.New(), X, x, nil)
	assert.True(t, p.Verify(hash.New(), X, nil), "failed to verify proof")
}

func TestSchFail(t *testing.T) {
	a := NewRandomness(rand.Reader, nil)
	x, X := curve.NewScalar(), curve.NewG1()

	proof := a.Prove(hash.New(), X, x, nil)
	assert.Nil(t, proof, "proof should not be created for the identity point")
	assert.False(t, proof.Verify(hash.New(), X, a.Commitment(), nil), "proof should not accept identity point")
}

func TestSchOtherGenerator(t *testing.T) {
	gen := sample.G1(rand.Reader)
	x := sample.ScalarUnit(rand.Reader)
	X := x.Act(gen)

	p := NewProof(rand.Reader, hash.New(), X, x, gen)
	assert.True(t, p.Verify(hash.New(), X, gen))
	assert.False(t, p.Verify(hash.New(), X, nil), "proof must be bound to its generator")

	h := hash.New()
	_ = h.WriteAny([]byte("context"))
	assert.False(t, p.Verify(h, X, gen), "proof must be bound to its transcript")
}

func TestSchMarshal(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	p := NewProof(rand.Reader, hash.New(), X, x, nil)

	data, err := cbor.Marshal(p)
	require.NoError(t, err)
	var p2 Proof
	require.NoError(t, cbor.Unmarshal(data, &p2))
	assert.True(t, p2.Verify(hash.New(), X, nil))
}
