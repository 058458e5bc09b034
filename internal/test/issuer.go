package test

import (
	"errors"

	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/party"
	"github.com/taurusgroup/spirit/pkg/tact"
)

// ErrRefused is returned by an issuer configured to refuse every request.
var ErrRefused = errors.New("test: issuer refused the request")

// Rule alters the behaviour of an honest issuer.
type Rule interface {
	// ModifyPartial is called with the honest answer, and returns what the issuer sends instead.
	ModifyPartial(partial *tact.PartialToken) (*tact.PartialToken, error)
}

// Issuer wraps a tact.Issuer and applies a Rule to each of its answers.
type Issuer struct {
	*tact.Issuer
	Rule Rule
}

// Issue implements spirit.IssuerService.
func (i *Issuer) Issue(req *tact.BlindRequest, pp *tact.PublicParameters) (*tact.PartialToken, error) {
	partial, err := i.Issuer.Issue(req, pp)
	if err != nil || i.Rule == nil {
		return partial, err
	}
	return i.Rule.ModifyPartial(partial)
}

// Refuse makes the issuer fail every request.
type Refuse struct{}

func (Refuse) ModifyPartial(*tact.PartialToken) (*tact.PartialToken, error) {
	return nil, ErrRefused
}

// Corrupt replaces the partial signature by a different point.
type Corrupt struct{}

func (Corrupt) ModifyPartial(partial *tact.PartialToken) (*tact.PartialToken, error) {
	return &tact.PartialToken{
		ID: partial.ID,
		S:  partial.S.Add(curve.G1Generator()),
	}, nil
}

// Impersonate makes the issuer answer under the identity of another.
type Impersonate struct {
	ID party.ID
}

func (r Impersonate) ModifyPartial(partial *tact.PartialToken) (*tact.PartialToken, error) {
	return &tact.PartialToken{
		ID: r.ID,
		S:  partial.S,
	}, nil
}

// IssuerIDs returns the IDs given to n issuers by tact.Setup.
func IssuerIDs(n int) party.IDSlice {
	ids := make([]party.ID, n)
	for i := range ids {
		ids[i] = party.FromIndex(i + 1)
	}
	return party.NewIDSlice(ids)
}
