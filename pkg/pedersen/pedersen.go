package pedersen

import (
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/params"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

type Error string

const (
	ErrNilFields   Error = "contains nil field"
	ErrIdentity    Error = "bases cannot be the identity"
	ErrEqualBases  Error = "bases must be pairwise distinct"
	ErrHashToBasis Error = "failed to derive basis"
)

func (e Error) Error() string {
	return fmt.Sprintf("pedersen: %s", string(e))
}

// Parameters are three independent generators G, Y, H of G1.
//
// A commitment to an identity id and secret key prv, with randomness r, is
//
//	C = id•G + prv•Y + r•H.
//
// The scheme is hiding as long as r is uniform, and binding as long as no relation
// between the generators is known.
type Parameters struct {
	g, y, h *curve.G1
}

// New returns a new set of Pedersen parameters.
// Assumes ValidateParameters(g, y, h) returns nil.
func New(g, y, h *curve.G1) *Parameters {
	return &Parameters{
		g: g,
		y: y,
		h: h,
	}
}

// Derive returns the parameters obtained by hashing fixed labels to G1.
//
// Since the bases come out of a hash, nobody knows the discrete logarithms between them.
func Derive() (*Parameters, error) {
	bases := make([]*curve.G1, 3)
	for i, label := range []string{"G", "Y", "H"} {
		p, err := curve.HashToG1([]byte(label), []byte(params.PedersenDomain))
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrHashToBasis, label, err)
		}
		bases[i] = p
	}
	return New(bases[0], bases[1], bases[2]), nil
}

// ValidateParameters check g, y and h, and returns an error if any of the following is true:
// - g, y, or h is nil.
// - g, y, or h is the identity.
// - two of them are equal.
func ValidateParameters(g, y, h *curve.G1) error {
	if g == nil || y == nil || h == nil {
		return ErrNilFields
	}
	if g.IsIdentity() || y.IsIdentity() || h.IsIdentity() {
		return ErrIdentity
	}
	if g.Equal(y) || g.Equal(h) || y.Equal(h) {
		return ErrEqualBases
	}
	return nil
}

// G is the basis for the identity.
func (p Parameters) G() *curve.G1 { return p.g }

// Y is the basis for the secret key.
func (p Parameters) Y() *curve.G1 { return p.y }

// H is the basis for the randomness.
func (p Parameters) H() *curve.G1 { return p.h }

// Commit computes id•G + prv•Y + r•H.
//
// id, prv and r are secret in general. The commitment produced, on the other hand,
// hides their values, and can be safely shared.
func (p Parameters) Commit(id, prv, r *curve.Scalar) *curve.G1 {
	return id.Act(p.g).Add(prv.Act(p.y)).Add(r.Act(p.h))
}

// Verify returns true if a•G + b•Y + c•H = S + e•C.
//
// This is the final check of a proof of knowledge of an opening of C,
// where S is the commitment of the prover and (a, b, c) its responses.
func (p Parameters) Verify(a, b, c, e *curve.Scalar, S, C *curve.G1) bool {
	if a == nil || b == nil || c == nil || e == nil || S == nil || C == nil {
		return false
	}
	lhs := p.Commit(a, b, c)
	rhs := e.Act(C).Add(S)
	return lhs.Equal(rhs)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *Parameters) WriteTo(w io.Writer) (int64, error) {
	if p == nil {
		return 0, io.ErrUnexpectedEOF
	}
	nAll := int64(0)
	for _, basis := range []*curve.G1{p.g, p.y, p.h} {
		n, err := basis.WriteTo(w)
		nAll += n
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (Parameters) Domain() string {
	return "Pedersen Parameters"
}
