package tact

import (
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/polynomial"
	"github.com/taurusgroup/spirit/pkg/party"
	zkopening "github.com/taurusgroup/spirit/pkg/zk/opening"
	zksch "github.com/taurusgroup/spirit/pkg/zk/sch"
)

// Token is an anonymous credential: a commitment and the signature σ = sk•H(cm) on it.
type Token struct {
	Commitment *curve.G1
	Signature  *curve.G1
}

// Key returns the concatenated encodings of both points, equal for equal tokens.
func (t *Token) Key() string {
	return t.Commitment.Key() + t.Signature.Key()
}

// Equal compares two tokens structurally.
func (t *Token) Equal(other *Token) bool {
	return t.Commitment.Equal(other.Commitment) && t.Signature.Equal(other.Signature)
}

// IsValid returns true if e(σ, g₂) = e(H(cm), VK).
func (t *Token) IsValid(pp *PublicParameters) bool {
	if t == nil || t.Commitment == nil || t.Signature == nil {
		return false
	}
	if t.Commitment.IsIdentity() || t.Signature.IsIdentity() {
		return false
	}
	h, err := Message(t.Commitment)
	if err != nil {
		return false
	}
	return curve.PairingEqual(t.Signature, curve.G2Generator(), h, pp.VK)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (t *Token) WriteTo(w io.Writer) (int64, error) {
	if t == nil || t.Commitment == nil || t.Signature == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := t.Commitment.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := t.Signature.WriteTo(w)
	return n + m, err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Token) Domain() string {
	return "TACT Token"
}

// AggregateUnblind checks every partial token against the verification share of its
// issuer, interpolates sk•M' and removes the blinding factor β•PK.
func AggregateUnblind(partials []*PartialToken, rnd *Randomizer, pp *PublicParameters) (*Token, error) {
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil randomizer", ErrInvalidRequest)
	}
	if len(partials) < pp.Threshold {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrNotEnoughPartials, len(partials), pp.Threshold)
	}

	ids := make([]party.ID, 0, len(partials))
	seen := make(map[party.ID]bool, len(partials))
	g2 := curve.G2Generator()
	for _, partial := range partials {
		if partial == nil || partial.S == nil {
			return nil, fmt.Errorf("%w: nil partial token", ErrInvalidPartial)
		}
		if seen[partial.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIssuer, partial.ID)
		}
		seen[partial.ID] = true
		vk, ok := pp.VerificationShares[partial.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIssuer, partial.ID)
		}
		// e(σᵢ', g₂) = e(M', skᵢ•g₂)
		if !curve.PairingEqual(partial.S, g2, rnd.request, vk) {
			return nil, fmt.Errorf("%w: from issuer %s", ErrInvalidPartial, partial.ID)
		}
		ids = append(ids, partial.ID)
	}

	lagrange := polynomial.Lagrange(ids)
	blinded := curve.NewG1()
	for _, partial := range partials {
		blinded = blinded.Add(lagrange[partial.ID].Act(partial.S))
	}

	return &Token{
		Commitment: rnd.commitment,
		Signature:  blinded.Sub(rnd.beta.Act(pp.PK)),
	}, nil
}

// TokenProof shows that a token was obtained by unblinding a given request, and that
// its holder can open the commitment.
type TokenProof struct {
	// Blinding proves knowledge of β such that M' - H(cm) = β•g₁.
	Blinding *zksch.Proof
	// Opening proves knowledge of (id, prv, r) such that cm = id•G + prv•Y + r•H.
	Opening *zkopening.Proof
}

// Prove creates the proof for a token aggregated with rnd.
func Prove(rand io.Reader, token *Token, rnd *Randomizer, pp *PublicParameters) (*TokenProof, error) {
	if token == nil || rnd == nil || !token.Commitment.Equal(rnd.commitment) {
		return nil, ErrProofConstruction
	}
	public := rnd.request.Sub(rnd.message)
	blinding := zksch.NewProof(rand, tokenTranscript(token, rnd.request, pp), public, rnd.beta, nil)
	if blinding == nil {
		return nil, ErrProofConstruction
	}
	opening := zkopening.NewProof(rand, tokenTranscript(token, rnd.request, pp), zkopening.Public{
		C:        token.Commitment,
		Pedersen: pp.Pedersen,
	}, zkopening.Private{
		A: rnd.state.id,
		B: rnd.state.prv,
		C: rnd.state.r,
	})
	return &TokenProof{Blinding: blinding, Opening: opening}, nil
}

// Verify checks that the token was derived from req, and that its signature is valid.
func Verify(token *Token, proof *TokenProof, req *BlindRequest, pp *PublicParameters) error {
	if token == nil || token.Commitment == nil || proof == nil || req == nil || req.M == nil {
		return ErrInvalidTokenProof
	}
	h, err := Message(token.Commitment)
	if err != nil {
		return ErrInvalidTokenProof
	}
	if !proof.Blinding.Verify(tokenTranscript(token, req.M, pp), req.M.Sub(h), nil) {
		return ErrInvalidTokenProof
	}
	if !proof.Opening.Verify(tokenTranscript(token, req.M, pp), zkopening.Public{
		C:        token.Commitment,
		Pedersen: pp.Pedersen,
	}) {
		return ErrInvalidTokenProof
	}
	if !token.IsValid(pp) {
		return ErrInvalidSignature
	}
	return nil
}

func tokenTranscript(token *Token, request *curve.G1, pp *PublicParameters) *hash.Hash {
	h := pp.transcript("token")
	_ = h.WriteAny(token.Commitment, request)
	return h
}
