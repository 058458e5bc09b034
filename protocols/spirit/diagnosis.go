package spirit

import (
	"fmt"
	"sort"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/pool"
	"github.com/taurusgroup/spirit/pkg/prf"
	"github.com/taurusgroup/spirit/pkg/tact"
	zkdisclosure "github.com/taurusgroup/spirit/pkg/zk/disclosure"
)

// Disclosure is one pseudonym revealed by a diagnosed user, with its epoch.
type Disclosure struct {
	Epoch uint64
	ElID  prf.ElID
}

// Report is sent by a diagnosed user to a verifier. It does not contain the identity
// of the user.
type Report struct {
	Token       *tact.Token
	Disclosures []Disclosure
	Proof       *zkdisclosure.Proof
}

// ElIDs returns the disclosed pseudonyms.
func (r *Report) ElIDs() []prf.ElID {
	elids := make([]prf.ElID, len(r.Disclosures))
	for i, d := range r.Disclosures {
		elids[i] = d.ElID
	}
	return elids
}

func (r *Report) statement(pp *tact.PublicParameters) zkdisclosure.Public {
	epochs := make([]uint64, len(r.Disclosures))
	for i, d := range r.Disclosures {
		epochs[i] = d.Epoch
	}
	return zkdisclosure.Public{
		Pedersen:  pp.Pedersen,
		C:         r.Token.Commitment,
		Signature: r.Token.Signature,
		Epochs:    epochs,
		ElIDs:     r.ElIDs(),
	}
}

func reportTranscript(token *tact.Token, pp *tact.PublicParameters) *hash.Hash {
	h := hash.New()
	_ = h.WriteAny("report", pp, token)
	return h
}

// Diagnose recomputes the pseudonyms of the given contact epochs and proves, in a single
// proof, that they were derived from the key inside cred.
//
// Epochs are disclosed in increasing order. An empty or repeated epoch set, or a
// credential that prv does not open, returns an error wrapping ErrProofConstruction.
func (rt *Runtime) Diagnose(cred *Credential, prv *curve.Scalar, epochs []uint64, pp *tact.PublicParameters) (*Report, error) {
	log, done := rt.phase("diagnosis")
	defer done()

	if cred == nil || cred.Token == nil || cred.Token.Commitment == nil || prv == nil {
		return nil, fmt.Errorf("%w: incomplete credential", ErrProofConstruction)
	}
	if len(epochs) == 0 {
		return nil, fmt.Errorf("%w: no contact epochs", ErrProofConstruction)
	}
	sorted := append([]uint64(nil), epochs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("%w: epoch %d repeated", ErrProofConstruction, sorted[i])
		}
	}

	elids := pool.Parallelize(rt.pool, len(sorted), func(i int) prf.ElID {
		return prf.Evaluate(prv, sorted[i])
	})
	report := &Report{
		Token:       cred.Token,
		Disclosures: make([]Disclosure, len(sorted)),
	}
	for i := range sorted {
		report.Disclosures[i] = Disclosure{Epoch: sorted[i], ElID: elids[i]}
	}

	proof, err := zkdisclosure.NewProof(rt.rand, reportTranscript(cred.Token, pp), report.statement(pp), zkdisclosure.Private{
		ID:  cred.Identity,
		Prv: prv,
		R:   cred.Opening,
	}, rt.pool)
	if err != nil {
		log.Warn().Err(err).Msg("no report produced")
		return nil, fmt.Errorf("%w: %w", ErrProofConstruction, err)
	}
	report.Proof = proof

	log.Info().Int("epochs", len(sorted)).Msg("report ready")
	return report, nil
}
