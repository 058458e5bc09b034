package zkdisclosure

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/pedersen"
	"github.com/taurusgroup/spirit/pkg/pool"
	"github.com/taurusgroup/spirit/pkg/prf"
)

func newStatement(t *testing.T, epochs ...uint64) (Public, Private) {
	ped, err := pedersen.Derive()
	require.NoError(t, err)
	private := Private{
		ID:  sample.Scalar(rand.Reader),
		Prv: sample.ScalarUnit(rand.Reader),
		R:   sample.Scalar(rand.Reader),
	}
	elids := make([]prf.ElID, len(epochs))
	for j, epoch := range epochs {
		elids[j] = prf.Evaluate(private.Prv, epoch)
	}
	public := Public{
		Pedersen:  ped,
		C:         ped.Commit(private.ID, private.Prv, private.R),
		Signature: sample.G1(rand.Reader),
		Epochs:    epochs,
		ElIDs:     elids,
	}
	return public, private
}

func TestDisclosure(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	public, private := newStatement(t, 1, 2, 5)
	proof, err := NewProof(rand.Reader, hash.New(), public, private, pl)
	require.NoError(t, err)
	assert.True(t, proof.Verify(hash.New(), public, pl))
	assert.True(t, proof.Verify(hash.New(), public, nil), "verification must not depend on the pool")

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := Empty()
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.Verify(hash.New(), public, nil))
}

func TestDisclosureRejectsWrongWitness(t *testing.T) {
	public, private := newStatement(t, 3, 4)

	other := private
	other.Prv = sample.ScalarUnit(rand.Reader)
	_, err := NewProof(rand.Reader, hash.New(), public, other, nil)
	assert.Error(t, err, "witness with another key must not open the commitment")

	// pseudonym from an unrelated key, with a valid opening
	public.ElIDs[1] = prf.Evaluate(sample.ScalarUnit(rand.Reader), 4)
	_, err = NewProof(rand.Reader, hash.New(), public, private, nil)
	assert.Error(t, err)
}

func TestDisclosureMalformedStatement(t *testing.T) {
	public, private := newStatement(t)
	_, err := NewProof(rand.Reader, hash.New(), public, private, nil)
	assert.Error(t, err, "empty disclosure")

	public, private = newStatement(t, 1, 2)
	public.Epochs = public.Epochs[:1]
	_, err = NewProof(rand.Reader, hash.New(), public, private, nil)
	assert.Error(t, err, "length mismatch")
}

func TestDisclosureBindsStatement(t *testing.T) {
	public, private := newStatement(t, 7, 8, 9)
	proof, err := NewProof(rand.Reader, hash.New(), public, private, nil)
	require.NoError(t, err)

	swapped := public
	swapped.Epochs = []uint64{7, 9, 8}
	swapped.ElIDs = []prf.ElID{public.ElIDs[0], public.ElIDs[2], public.ElIDs[1]}
	assert.False(t, proof.Verify(hash.New(), swapped, nil), "reordered disclosure")

	resigned := public
	resigned.Signature = sample.G1(rand.Reader)
	assert.False(t, proof.Verify(hash.New(), resigned, nil), "signature is part of the statement")

	other, _ := newStatement(t, 7, 8, 9)
	other.ElIDs = public.ElIDs
	assert.False(t, proof.Verify(hash.New(), other, nil), "other commitment")

	truncated := public
	truncated.Epochs = public.Epochs[:2]
	truncated.ElIDs = public.ElIDs[:2]
	assert.False(t, proof.Verify(hash.New(), truncated, nil))
}
