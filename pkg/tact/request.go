package tact

import (
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/params"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
)

// State is what a user keeps from registration: the opening (id, prv, r) of its commitment.
type State struct {
	id, prv, r *curve.Scalar
}

// ID returns the committed identity.
func (s *State) ID() *curve.Scalar { return s.id }

// Prv returns the committed PRF key.
func (s *State) Prv() *curve.Scalar { return s.prv }

// Opening returns the commitment randomness r.
func (s *State) Opening() *curve.Scalar { return s.r }

// Register samples a PRF key prv and randomness r for identity id, and commits to
// them as cm = id•G + prv•Y + r•H.
func Register(rand io.Reader, id *curve.Scalar, pp *PublicParameters) (*State, *curve.G1, error) {
	if id == nil {
		return nil, nil, fmt.Errorf("%w: nil identity", ErrInvalidState)
	}
	state := &State{
		id:  curve.NewScalar().Set(id),
		prv: sample.ScalarUnit(rand),
		r:   sample.ScalarUnit(rand),
	}
	return state, pp.Pedersen.Commit(state.id, state.prv, state.r), nil
}

// Message returns the point H(cm) signed by the issuers for the commitment cm.
func Message(cm *curve.G1) (*curve.G1, error) {
	if cm == nil {
		return nil, fmt.Errorf("%w: nil commitment", ErrInvalidState)
	}
	return curve.HashToG1(cm.Bytes(), []byte(params.TokenDomain))
}

// BlindRequest is sent to issuers: M' = H(cm) + β•g₁, uniformly distributed in G1
// whatever the commitment.
type BlindRequest struct {
	M *curve.G1
}

// Randomizer is kept by the user between the request and unblinding.
type Randomizer struct {
	beta       *curve.Scalar
	state      *State
	commitment *curve.G1
	message    *curve.G1
	request    *curve.G1
}

// TokenRequest blinds H(cm) with a fresh β.
func TokenRequest(rand io.Reader, state *State, cm *curve.G1, pp *PublicParameters) (*BlindRequest, *Randomizer, error) {
	if state == nil || cm == nil {
		return nil, nil, fmt.Errorf("%w: nil state", ErrInvalidState)
	}
	if !pp.Pedersen.Commit(state.id, state.prv, state.r).Equal(cm) {
		return nil, nil, ErrInvalidState
	}
	h, err := Message(cm)
	if err != nil {
		return nil, nil, err
	}

	beta := sample.ScalarUnit(rand)
	m := h.Add(beta.ActOnBase())

	rnd := &Randomizer{
		beta:       beta,
		state:      state,
		commitment: cm,
		message:    h,
		request:    m,
	}
	return &BlindRequest{M: m}, rnd, nil
}

func (req *BlindRequest) verify() error {
	if req == nil || req.M == nil || req.M.IsIdentity() {
		return fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	return nil
}
