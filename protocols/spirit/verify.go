package spirit

import (
	"github.com/taurusgroup/spirit/pkg/tact"
)

// VerifyReport accepts report iff its token is in registry, carries a valid signature
// under pp, and its proof verifies against the token commitment. On acceptance every
// disclosed pseudonym is added to confirmed, otherwise confirmed is left as is.
//
// Both checks always run, and the caller only learns whether the report was accepted.
func (rt *Runtime) VerifyReport(report *Report, registry TokenSet, confirmed *ConfirmedSet, pp *tact.PublicParameters) (*ConfirmedSnapshot, bool) {
	log, done := rt.phase("verification")
	defer done()

	if report == nil || report.Token == nil || report.Token.Commitment == nil || report.Token.Signature == nil {
		rt.metrics.Report(false)
		log.Info().Bool("accepted", false).Msg("report verified")
		return confirmed.Snapshot(), false
	}

	registered := registry.Contains(report.Token)
	signed := report.Token.IsValid(pp)
	proven := report.Proof.Verify(reportTranscript(report.Token, pp), report.statement(pp), rt.pool)
	accepted := registered && signed && proven

	rt.metrics.Report(accepted)
	log.Info().Bool("accepted", accepted).Msg("report verified")
	if !accepted {
		return confirmed.Snapshot(), false
	}

	snapshot := confirmed.add(report.ElIDs())
	rt.metrics.SetConfirmed(snapshot.Len())
	return snapshot, true
}
