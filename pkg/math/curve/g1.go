package curve

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/taurusgroup/spirit/internal/params"
)

// G1 is a point of the first source group, in affine coordinates.
//
// Unlike Scalar, group operations return a new point and leave the receiver untouched.
type G1 struct {
	p bls12381.G1Affine
}

// NewG1 returns the identity of G1.
func NewG1() *G1 {
	return new(G1)
}

// G1Generator returns the standard generator g₁.
func G1Generator() *G1 {
	return &G1{p: g1Gen}
}

// Set sets p = q, and returns p.
func (p *G1) Set(q *G1) *G1 {
	p.p.Set(&q.p)
	return p
}

// Add returns p + q.
func (p *G1) Add(q *G1) *G1 {
	var j bls12381.G1Jac
	j.FromAffine(&p.p)
	j.AddMixed(&q.p)
	out := new(G1)
	out.p.FromJacobian(&j)
	return out
}

// Sub returns p - q.
func (p *G1) Sub(q *G1) *G1 {
	return p.Add(q.Negate())
}

// Negate returns -p.
func (p *G1) Negate() *G1 {
	out := new(G1)
	out.p.Neg(&p.p)
	return out
}

// Equal returns true if p and q are the same point.
func (p *G1) Equal(q *G1) bool {
	return p.p.Equal(&q.p)
}

// IsIdentity returns true if p is the point at infinity.
func (p *G1) IsIdentity() bool {
	return p.p.IsInfinity()
}

// Bytes returns the compressed encoding of p.
func (p *G1) Bytes() []byte {
	b := p.p.Bytes()
	return b[:]
}

// Key returns a string usable as a map key, equal for equal points.
func (p *G1) Key() string {
	return string(p.Bytes())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *G1) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Points outside of the prime order subgroup are rejected.
func (p *G1) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesG1 {
		return fmt.Errorf("curve.G1.UnmarshalBinary: invalid length %d", len(data))
	}
	if _, err := p.p.SetBytes(data); err != nil {
		return fmt.Errorf("curve.G1.UnmarshalBinary: %w", err)
	}
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *G1) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*G1) Domain() string {
	return "BLS12-381 G1"
}

// String implements fmt.Stringer.
func (p *G1) String() string {
	if p == nil {
		return "nil"
	}
	if p.IsIdentity() {
		return "G1{Identity}"
	}
	return fmt.Sprintf("G1{%x}", p.Bytes())
}
