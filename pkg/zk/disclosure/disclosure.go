// Package zkdisclosure proves that a set of pseudonyms was derived from the key committed
// inside a credential.
//
// Given a commitment C = id•G + prv•Y + r•H and pseudonyms Eⱼ = prv•H(epochⱼ), the prover
// shows knowledge of (id, prv, r) opening C such that the same prv generated every Eⱼ.
// One proof covers all disclosed epochs.
package zkdisclosure

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/hash"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/pedersen"
	"github.com/taurusgroup/spirit/pkg/pool"
	"github.com/taurusgroup/spirit/pkg/prf"
)

type Public struct {
	Pedersen *pedersen.Parameters

	// C = id•G + prv•Y + r•H
	C *curve.G1

	// Signature is the credential signature on C, bound into the challenge.
	Signature *curve.G1

	// Epochs[j] is the epoch ElIDs[j] was broadcast in.
	Epochs []uint64
	// ElIDs[j] = prv•H(Epochs[j])
	ElIDs []prf.ElID
}

type Private struct {
	ID  *curve.Scalar
	Prv *curve.Scalar
	R   *curve.Scalar
}

type Commitment struct {
	// S = α•G + β•Y + γ•H
	S *curve.G1
	// T[j] = β•H(Epochs[j])
	T []*curve.G1
}

type Proof struct {
	*Commitment
	// ZID = α + e•id (mod q)
	ZID *curve.Scalar
	// ZPrv = β + e•prv (mod q)
	ZPrv *curve.Scalar
	// ZR = γ + e•r (mod q)
	ZR *curve.Scalar
}

func (p Public) validate() error {
	if p.Pedersen == nil || p.C == nil || p.Signature == nil {
		return errors.New("zkdisclosure: nil public field")
	}
	if len(p.Epochs) == 0 {
		return errors.New("zkdisclosure: no epochs disclosed")
	}
	if len(p.Epochs) != len(p.ElIDs) {
		return fmt.Errorf("zkdisclosure: %d epochs but %d pseudonyms", len(p.Epochs), len(p.ElIDs))
	}
	return nil
}

func (p *Proof) IsValid(public Public) bool {
	if p == nil || p.Commitment == nil {
		return false
	}
	if p.S == nil || p.S.IsIdentity() || len(p.T) != len(public.ElIDs) {
		return false
	}
	for _, t := range p.T {
		if t == nil || t.IsIdentity() {
			return false
		}
	}
	return p.ZID != nil && p.ZPrv != nil && p.ZR != nil
}

// NewProof computes the disclosure proof, hashing the epoch bases on pl.
//
// An error is returned if the witness does not satisfy the statement, since such a proof
// would never verify.
func NewProof(rand io.Reader, hash *hash.Hash, public Public, private Private, pl *pool.Pool) (*Proof, error) {
	if err := public.validate(); err != nil {
		return nil, err
	}
	if private.ID == nil || private.Prv == nil || private.R == nil {
		return nil, errors.New("zkdisclosure: nil witness")
	}
	if !public.Pedersen.Commit(private.ID, private.Prv, private.R).Equal(public.C) {
		return nil, errors.New("zkdisclosure: witness does not open the commitment")
	}

	bases := pool.Parallelize(pl, len(public.Epochs), func(j int) *curve.G1 {
		return prf.Base(public.Epochs[j])
	})
	for j, base := range bases {
		if !private.Prv.Act(base).Equal(public.ElIDs[j].Point()) {
			return nil, fmt.Errorf("zkdisclosure: pseudonym %d was not derived from the committed key", j)
		}
	}

	alpha := sample.Scalar(rand)
	beta := sample.Scalar(rand)
	gamma := sample.Scalar(rand)

	commitment := &Commitment{
		S: public.Pedersen.Commit(alpha, beta, gamma),
		T: pool.Parallelize(pl, len(bases), func(j int) *curve.G1 {
			return beta.Act(bases[j])
		}),
	}
	e, err := challenge(hash, public, commitment)
	if err != nil {
		return nil, fmt.Errorf("zkdisclosure: %w", err)
	}

	return &Proof{
		Commitment: commitment,
		ZID:        curve.NewScalar().Set(e).Mul(private.ID).Add(alpha),
		ZPrv:       curve.NewScalar().Set(e).Mul(private.Prv).Add(beta),
		ZR:         curve.NewScalar().Set(e).Mul(private.R).Add(gamma),
	}, nil
}

// Verify checks the opening equation and one derivation equation per pseudonym,
// the latter on pl.
func (p *Proof) Verify(hash *hash.Hash, public Public, pl *pool.Pool) bool {
	if public.validate() != nil || !p.IsValid(public) {
		return false
	}

	e, err := challenge(hash, public, p.Commitment)
	if err != nil {
		return false
	}

	// ZID•G + ZPrv•Y + ZR•H = S + e•C
	if !public.Pedersen.Verify(p.ZID, p.ZPrv, p.ZR, e, p.S, public.C) {
		return false
	}

	results := pool.Parallelize(pl, len(public.Epochs), func(j int) bool {
		lhs := p.ZPrv.Act(prf.Base(public.Epochs[j]))     // lhs = ZPrv•H(epochⱼ)
		rhs := e.Act(public.ElIDs[j].Point()).Add(p.T[j]) // rhs = Tⱼ + e•Eⱼ
		return lhs.Equal(rhs)
	})
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

func challenge(h *hash.Hash, public Public, commitment *Commitment) (e *curve.Scalar, err error) {
	if err = h.WriteAny(public.Pedersen, public.C, public.Signature, commitment.S); err != nil {
		return
	}
	for j := range public.Epochs {
		if err = h.WriteAny(hash.Uint64(public.Epochs[j]), public.ElIDs[j], commitment.T[j]); err != nil {
			return
		}
	}
	e = sample.Scalar(h.Digest())
	return
}

func Empty() *Proof {
	return &Proof{
		Commitment: &Commitment{S: curve.NewG1()},
		ZID:        curve.NewScalar(),
		ZPrv:       curve.NewScalar(),
		ZR:         curve.NewScalar(),
	}
}
