// Package tact implements a threshold anonymous credential token over BLS12-381.
//
// A trusted dealer shares a signing key sk among issuers with Shamir's scheme. A user
// commits to (id, prv) with a Pedersen commitment cm, maps it to h = H(cm) with a hash
// to G1, blinds it as M' = h + β•g₁ and collects partial signatures skᵢ•M' from t
// issuers. Lagrange interpolation gives sk•M', from which the user removes β•(sk•g₁)
// to obtain the BLS signature σ = sk•H(cm), checkable with a single pairing equation
// e(σ, g₂) = e(H(cm), sk•g₂).
//
// No issuer learns cm, and no coalition of fewer than t issuers can produce σ. Since
// the signed point is a hash of the commitment, a token cannot be shifted into a token
// for another commitment.
package tact

import (
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/polynomial"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/party"
	"github.com/taurusgroup/spirit/pkg/pedersen"
)

// Config holds the parameters of a credential deployment.
type Config struct {
	// Issuers is the number of issuers created at setup.
	Issuers int
	// N bounds the number of issuers the deployment may ever hold.
	N int
	// Threshold is the number t of partial tokens needed for a token.
	Threshold int
	// Degree of the sharing polynomial, which must be Threshold-1.
	Degree int
	// TokensPerRequest is the number of tokens obtained from one blind request.
	// Only 1 is supported.
	TokensPerRequest int
}

// Validate returns an error wrapping ErrInvalidConfig if the threshold parameters are inconsistent.
func (c Config) Validate() error {
	switch {
	case c.Threshold < 1:
		return fmt.Errorf("%w: threshold %d must be at least 1", ErrInvalidConfig, c.Threshold)
	case c.Threshold > c.N:
		return fmt.Errorf("%w: threshold %d exceeds n = %d", ErrInvalidConfig, c.Threshold, c.N)
	case c.Issuers < c.Threshold:
		return fmt.Errorf("%w: %d issuers cannot reach threshold %d", ErrInvalidConfig, c.Issuers, c.Threshold)
	case c.Issuers > c.N:
		return fmt.Errorf("%w: %d issuers exceed n = %d", ErrInvalidConfig, c.Issuers, c.N)
	case c.Degree != c.Threshold-1:
		return fmt.Errorf("%w: degree %d must be threshold-1 = %d", ErrInvalidConfig, c.Degree, c.Threshold-1)
	case c.TokensPerRequest != 1:
		return fmt.Errorf("%w: %d tokens per request, only 1 is supported", ErrInvalidConfig, c.TokensPerRequest)
	}
	return nil
}

// PublicParameters are shared by users, issuers and verifiers, and never change after Setup.
type PublicParameters struct {
	N                int
	Threshold        int
	Degree           int
	TokensPerRequest int

	// IssuerIDs are the identifiers of all issuers created at setup, sorted.
	IssuerIDs party.IDSlice

	// Pedersen holds the commitment bases G, Y, H.
	Pedersen *pedersen.Parameters

	// VK = sk•g₂ verifies token signatures.
	VK *curve.G2
	// PK = sk•g₁ lets users unblind aggregated signatures.
	PK *curve.G1
	// VerificationShares[i] = skᵢ•g₂ verifies the partial tokens of issuer i.
	VerificationShares map[party.ID]*curve.G2
}

// Setup runs the trusted dealer: it samples sk, shares it with a polynomial of degree
// cfg.Degree and hands one share to each of the issuers "1", …, "cfg.Issuers".
func Setup(rand io.Reader, cfg Config) (*PublicParameters, []*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	sk := sample.ScalarUnit(rand)
	f := polynomial.NewPolynomial(rand, cfg.Degree, sk)

	issuers := make([]*Issuer, 0, cfg.Issuers)
	for i := 1; i <= cfg.Issuers; i++ {
		id := party.FromIndex(i)
		issuers = append(issuers, NewIssuer(id, f.Evaluate(id.Scalar())))
	}
	pp, err := newParameters(cfg, sk, issuers)
	if err != nil {
		return nil, nil, err
	}
	return pp, issuers, nil
}

// Restore rebuilds the public parameters of the issuers created by Setup, restored with
// NewIssuer, after checking that their shares lie on a single polynomial of degree
// cfg.Degree.
func Restore(cfg Config, issuers []*Issuer) (*PublicParameters, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(issuers) != cfg.Issuers {
		return nil, fmt.Errorf("%w: %d shares for %d issuers", ErrInvalidConfig, len(issuers), cfg.Issuers)
	}
	shares := make(map[party.ID]*curve.Scalar, len(issuers))
	ids := make([]party.ID, 0, len(issuers))
	for _, issuer := range issuers {
		if issuer == nil || issuer.secret == nil {
			return nil, fmt.Errorf("%w: missing share", ErrInvalidConfig)
		}
		if _, ok := shares[issuer.id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIssuer, issuer.id)
		}
		shares[issuer.id] = issuer.secret
		ids = append(ids, issuer.id)
	}

	// the polynomial is fixed by sk and the first Degree shares, every other share
	// must interpolate to the same sk
	var sk *curve.Scalar
	for _, id := range ids[cfg.Degree:] {
		domain := append(append([]party.ID(nil), ids[:cfg.Degree]...), id)
		secret := curve.NewScalar()
		for j, l := range polynomial.Lagrange(domain) {
			secret.Add(l.Mul(shares[j]))
		}
		if sk == nil {
			sk = secret
		} else if !sk.Equal(secret) {
			return nil, fmt.Errorf("%w: share of issuer %s is inconsistent", ErrInvalidConfig, id)
		}
	}
	return newParameters(cfg, sk, issuers)
}

func newParameters(cfg Config, sk *curve.Scalar, issuers []*Issuer) (*PublicParameters, error) {
	ped, err := pedersen.Derive()
	if err != nil {
		return nil, fmt.Errorf("tact.Setup: %w", err)
	}

	ids := make([]party.ID, 0, len(issuers))
	for _, issuer := range issuers {
		ids = append(ids, issuer.id)
	}

	pp := &PublicParameters{
		N:                  cfg.N,
		Threshold:          cfg.Threshold,
		Degree:             cfg.Degree,
		TokensPerRequest:   cfg.TokensPerRequest,
		IssuerIDs:          party.NewIDSlice(ids),
		Pedersen:           ped,
		VK:                 sk.ActOnBaseG2(),
		PK:                 sk.ActOnBase(),
		VerificationShares: make(map[party.ID]*curve.G2, len(ids)),
	}
	for _, issuer := range issuers {
		pp.VerificationShares[issuer.id] = issuer.public
	}
	return pp, nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pp *PublicParameters) WriteTo(w io.Writer) (int64, error) {
	if pp == nil {
		return 0, io.ErrUnexpectedEOF
	}
	nAll := int64(0)
	write := func(v io.WriterTo) error {
		n, err := v.WriteTo(w)
		nAll += n
		return err
	}
	for _, x := range []int{pp.N, pp.Threshold, pp.Degree, pp.TokensPerRequest} {
		if err := write(hash.Uint64(x)); err != nil {
			return nAll, err
		}
	}
	if err := write(pp.Pedersen); err != nil {
		return nAll, err
	}
	if err := write(pp.VK); err != nil {
		return nAll, err
	}
	if err := write(pp.PK); err != nil {
		return nAll, err
	}
	for _, id := range pp.IssuerIDs {
		if err := write(id); err != nil {
			return nAll, err
		}
		share, ok := pp.VerificationShares[id]
		if !ok {
			return nAll, fmt.Errorf("tact: missing verification share for issuer %s", id)
		}
		if err := write(share); err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicParameters) Domain() string {
	return "TACT Public Parameters"
}

// transcript returns a hash bound to the parameters and to the step of the scheme using it.
func (pp *PublicParameters) transcript(step string) *hash.Hash {
	h := hash.New()
	_ = h.WriteAny(step, pp)
	return h
}
