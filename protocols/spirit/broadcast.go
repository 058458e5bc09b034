package spirit

import (
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/prf"
)

func sampleSalt(rt *Runtime) *curve.Scalar {
	return sample.Scalar(rt.rand)
}

// Broadcast derives the pseudonym of epoch, stores it in table with a fresh salt
// and returns it so that it can be emitted.
func (rt *Runtime) Broadcast(epoch uint64, prv *curve.Scalar, table *ExposureTable) prf.ElID {
	elid := prf.Evaluate(prv, epoch)
	table.record(epoch, elid, sampleSalt(rt))
	rt.log.Debug().Str("phase", "broadcast").Uint64("epoch", epoch).Msg("pseudonym recorded")
	return elid
}
