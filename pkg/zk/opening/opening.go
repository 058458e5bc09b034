// Package zkopening proves knowledge of an opening of a Pedersen commitment.
//
// A user attaches this proof to a token proof, showing that the commitment it obtained
// a signature on is one it can open.
package zkopening

import (
	"io"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/pedersen"
)

type Public struct {
	// C = a•G + b•Y + c•H
	C *curve.G1

	Pedersen *pedersen.Parameters
}

type Private struct {
	// A = a, committed with G
	A *curve.Scalar
	// B = b, committed with Y
	B *curve.Scalar
	// C = c, committed with H
	C *curve.Scalar
}

type Commitment struct {
	// S = α•G + β•Y + γ•H
	S *curve.G1
}

type Proof struct {
	*Commitment
	// ZA = α + e•a (mod q)
	ZA *curve.Scalar
	// ZB = β + e•b (mod q)
	ZB *curve.Scalar
	// ZC = γ + e•c (mod q)
	ZC *curve.Scalar
}

func (p *Proof) IsValid() bool {
	if p == nil || p.Commitment == nil {
		return false
	}
	if p.S == nil || p.S.IsIdentity() {
		return false
	}
	return p.ZA != nil && p.ZB != nil && p.ZC != nil
}

func NewProof(rand io.Reader, hash *hash.Hash, public Public, private Private) *Proof {
	alpha := sample.Scalar(rand)
	beta := sample.Scalar(rand)
	gamma := sample.Scalar(rand)

	commitment := &Commitment{
		S: public.Pedersen.Commit(alpha, beta, gamma),
	}
	e, _ := challenge(hash, public, commitment)

	return &Proof{
		Commitment: commitment,
		ZA:         curve.NewScalar().Set(e).Mul(private.A).Add(alpha),
		ZB:         curve.NewScalar().Set(e).Mul(private.B).Add(beta),
		ZC:         curve.NewScalar().Set(e).Mul(private.C).Add(gamma),
	}
}

func (p *Proof) Verify(hash *hash.Hash, public Public) bool {
	if !p.IsValid() || public.C == nil || public.Pedersen == nil {
		return false
	}

	e, err := challenge(hash, public, p.Commitment)
	if err != nil {
		return false
	}

	// ZA•G + ZB•Y + ZC•H = S + e•C
	return public.Pedersen.Verify(p.ZA, p.ZB, p.ZC, e, p.S, public.C)
}

func challenge(hash *hash.Hash, public Public, commitment *Commitment) (e *curve.Scalar, err error) {
	err = hash.WriteAny(public.Pedersen, public.C, commitment.S)
	e = sample.Scalar(hash.Digest())
	return
}

func Empty() *Proof {
	return &Proof{
		Commitment: &Commitment{S: curve.NewG1()},
		ZA:         curve.NewScalar(),
		ZB:         curve.NewScalar(),
		ZC:         curve.NewScalar(),
	}
}
