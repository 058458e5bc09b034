package tact

import (
	"fmt"

	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/party"
)

// Issuer holds one share of the signing key.
//
// Issuing is stateless, so the same Issuer may serve concurrent registrations.
type Issuer struct {
	id     party.ID
	secret *curve.Scalar
	public *curve.G2
}

// NewIssuer restores an issuer from its share.
func NewIssuer(id party.ID, secret *curve.Scalar) *Issuer {
	return &Issuer{
		id:     id,
		secret: curve.NewScalar().Set(secret),
		public: secret.ActOnBaseG2(),
	}
}

// ID returns the identifier of the issuer.
func (i *Issuer) ID() party.ID { return i.id }

// Share returns a copy of the secret share skᵢ, for backing up the issuer.
func (i *Issuer) Share() *curve.Scalar { return curve.NewScalar().Set(i.secret) }

// VerificationShare returns skᵢ•g₂.
func (i *Issuer) VerificationShare() *curve.G2 { return i.public }

// PartialToken is the contribution σᵢ' = skᵢ•M' of one issuer to a token.
type PartialToken struct {
	ID party.ID
	S  *curve.G1
}

// Issue answers a blind request with a partial token.
//
// The request is a uniformly random point to the issuer, which therefore signs without
// learning anything about the commitment it hides.
func Issue(req *BlindRequest, issuer *Issuer, pp *PublicParameters) (*PartialToken, error) {
	if issuer == nil || issuer.secret == nil {
		return nil, fmt.Errorf("%w: nil issuer", ErrUnknownIssuer)
	}
	if !pp.IssuerIDs.Contains(issuer.id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIssuer, issuer.id)
	}
	if err := req.verify(); err != nil {
		return nil, err
	}
	return &PartialToken{
		ID: issuer.id,
		S:  issuer.secret.Act(req.M),
	}, nil
}

// Issue answers req, see the Issue function.
func (i *Issuer) Issue(req *BlindRequest, pp *PublicParameters) (*PartialToken, error) {
	return Issue(req, i, pp)
}
