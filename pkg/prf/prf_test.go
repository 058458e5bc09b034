package prf

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

func TestEvaluate_Deterministic(t *testing.T) {
	prv := sample.ScalarUnit(rand.Reader)
	for epoch := uint64(0); epoch < 20; epoch++ {
		a := Evaluate(prv, epoch)
		b := Evaluate(curve.NewScalar().Set(prv), epoch)
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Key(), b.Key())
	}
}

func TestEvaluate_Distinct(t *testing.T) {
	const users, epochs = 50, 20
	seen := make(map[string]struct{}, users*epochs)
	for u := 0; u < users; u++ {
		prv := sample.ScalarUnit(rand.Reader)
		for epoch := uint64(1); epoch <= epochs; epoch++ {
			key := Evaluate(prv, epoch).Key()
			_, collision := seen[key]
			require.False(t, collision, "pseudonym collision for user %d epoch %d", u, epoch)
			seen[key] = struct{}{}
		}
	}
}

func TestEvaluate_Relation(t *testing.T) {
	prv := sample.ScalarUnit(rand.Reader)
	e := Evaluate(prv, 42)
	assert.True(t, e.Point().Equal(prv.Act(Base(42))))
	assert.False(t, Base(42).Equal(Base(43)))
}

func TestElID_Marshal(t *testing.T) {
	type wrapper struct {
		IDs []ElID
	}
	prv := sample.ScalarUnit(rand.Reader)
	w := wrapper{IDs: []ElID{Evaluate(prv, 1), Evaluate(prv, 2)}}

	data, err := cbor.Marshal(w)
	require.NoError(t, err)
	var w2 wrapper
	require.NoError(t, cbor.Unmarshal(data, &w2))
	require.Len(t, w2.IDs, 2)
	for i := range w.IDs {
		assert.True(t, w.IDs[i].Equal(w2.IDs[i]))
	}
	assert.Error(t, new(ElID).UnmarshalBinary([]byte{1, 2}))
}
