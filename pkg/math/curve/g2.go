package curve

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/taurusgroup/spirit/internal/params"
)

// G2 is a point of the second source group, in affine coordinates.
type G2 struct {
	p bls12381.G2Affine
}

// NewG2 returns the identity of G2.
func NewG2() *G2 {
	return new(G2)
}

// G2Generator returns the standard generator g₂.
func G2Generator() *G2 {
	return &G2{p: g2Gen}
}

// Add returns p + q.
func (p *G2) Add(q *G2) *G2 {
	var j bls12381.G2Jac
	j.FromAffine(&p.p)
	j.AddMixed(&q.p)
	out := new(G2)
	out.p.FromJacobian(&j)
	return out
}

// Negate returns -p.
func (p *G2) Negate() *G2 {
	out := new(G2)
	out.p.Neg(&p.p)
	return out
}

// Equal returns true if p and q are the same point.
func (p *G2) Equal(q *G2) bool {
	return p.p.Equal(&q.p)
}

// IsIdentity returns true if p is the point at infinity.
func (p *G2) IsIdentity() bool {
	return p.p.IsInfinity()
}

// Bytes returns the compressed encoding of p.
func (p *G2) Bytes() []byte {
	b := p.p.Bytes()
	return b[:]
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *G2) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *G2) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesG2 {
		return fmt.Errorf("curve.G2.UnmarshalBinary: invalid length %d", len(data))
	}
	if _, err := p.p.SetBytes(data); err != nil {
		return fmt.Errorf("curve.G2.UnmarshalBinary: %w", err)
	}
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *G2) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*G2) Domain() string {
	return "BLS12-381 G2"
}
