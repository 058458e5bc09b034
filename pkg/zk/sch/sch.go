package zksch

import (
	"io"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

// Randomness = a ← ℤₚ.
type Randomness struct {
	a          *curve.Scalar
	commitment Commitment
}

// Commitment = randomness•B, where B is either a generator or its own parameter.
type Commitment struct {
	C *curve.G1
}

// Response = randomness + H(..., commitment, public)•secret (mod p).
type Response struct {
	Z *curve.Scalar
}

type Proof struct {
	C Commitment
	Z Response
}

// base returns gen, or g₁ if gen is nil.
func base(gen *curve.G1) *curve.G1 {
	if gen == nil {
		return curve.G1Generator()
	}
	return gen
}

// NewProof generates a Schnorr proof of knowledge of exponent for public, using the Fiat-Shamir transform.
//
// If gen is nil, the standard generator of G1 is used.
func NewProof(rand io.Reader, hash *hash.Hash, public *curve.G1, private *curve.Scalar, gen *curve.G1) *Proof {
	a := NewRandomness(rand, gen)
	z := a.Prove(hash, public, private, gen)
	if z == nil {
		return nil
	}
	return &Proof{
		C: *a.Commitment(),
		Z: *z,
	}
}

// NewRandomness creates a new a ∈ ℤₚ and the corresponding commitment C = a•B.
func NewRandomness(rand io.Reader, gen *curve.G1) *Randomness {
	a := sample.ScalarUnit(rand)
	return &Randomness{
		a:          a,
		commitment: Commitment{C: a.Act(base(gen))},
	}
}

func challenge(hash *hash.Hash, commitment *Commitment, public, gen *curve.G1) (e *curve.Scalar, err error) {
	err = hash.WriteAny(commitment.C, public, base(gen))
	e = sample.Scalar(hash.Digest())
	return
}

// Prove creates a Response = Randomness + H(..., Commitment, public)•secret (mod p).
func (r *Randomness) Prove(hash *hash.Hash, public *curve.G1, secret *curve.Scalar, gen *curve.G1) *Response {
	if public.IsIdentity() || secret.IsZero() {
		return nil
	}
	e, err := challenge(hash, &r.commitment, public, gen)
	if err != nil {
		return nil
	}
	return &Response{Z: e.Mul(secret).Add(r.a)}
}

// Commitment returns the commitment C = a•B for the randomness a.
func (r *Randomness) Commitment() *Commitment {
	return &r.commitment
}

// Verify checks that Response•B = Commitment + H(..., Commitment, public)•public.
func (z *Response) Verify(hash *hash.Hash, public *curve.G1, commitment *Commitment, gen *curve.G1) bool {
	if z == nil || z.Z == nil || commitment == nil || !commitment.IsValid() || public == nil || public.IsIdentity() {
		return false
	}

	e, err := challenge(hash, commitment, public, gen)
	if err != nil {
		return false
	}

	lhs := z.Z.Act(base(gen))
	rhs := e.Act(public).Add(commitment.C)

	return lhs.Equal(rhs)
}

// Verify checks a Schnorr proof created by NewProof.
func (p *Proof) Verify(hash *hash.Hash, public, gen *curve.G1) bool {
	if !p.IsValid() {
		return false
	}
	return p.Z.Verify(hash, public, &p.C, gen)
}

// IsValid returns true if the commitment is not the identity.
func (c *Commitment) IsValid() bool {
	return c.C != nil && !c.C.IsIdentity()
}

// IsValid returns true if the proof has its components set.
func (p *Proof) IsValid() bool {
	if p == nil || p.Z.Z == nil || p.Z.Z.IsZero() {
		return false
	}
	return p.C.IsValid()
}
