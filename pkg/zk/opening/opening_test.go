package zkopening

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/pedersen"
)

func newStatement(t *testing.T) (Public, Private) {
	ped, err := pedersen.Derive()
	require.NoError(t, err)
	private := Private{
		A: sample.Scalar(rand.Reader),
		B: sample.Scalar(rand.Reader),
		C: sample.Scalar(rand.Reader),
	}
	public := Public{
		C:        ped.Commit(private.A, private.B, private.C),
		Pedersen: ped,
	}
	return public, private
}

func TestOpening(t *testing.T) {
	public, private := newStatement(t)

	proof := NewProof(rand.Reader, hash.New(), public, private)
	assert.True(t, proof.Verify(hash.New(), public))

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := Empty()
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.Verify(hash.New(), public))
}

func TestOpeningWrongWitness(t *testing.T) {
	public, private := newStatement(t)
	private.B = sample.Scalar(rand.Reader)

	proof := NewProof(rand.Reader, hash.New(), public, private)
	assert.False(t, proof.Verify(hash.New(), public))
}

func TestOpeningOtherCommitment(t *testing.T) {
	public, private := newStatement(t)
	proof := NewProof(rand.Reader, hash.New(), public, private)

	other, _ := newStatement(t)
	assert.False(t, proof.Verify(hash.New(), other))

	assert.False(t, (*Proof)(nil).Verify(hash.New(), public))
	assert.False(t, Empty().Verify(hash.New(), public))
}
