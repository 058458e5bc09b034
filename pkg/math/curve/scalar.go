package curve

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/spirit/internal/params"
)

// Scalar is an element of the scalar field of BLS12-381.
//
// Arithmetic methods modify the receiver and return it, so that calls can be chained:
//
//	z := curve.NewScalar().Set(x).Mul(y).Add(a)
type Scalar struct {
	value fr.Element
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return new(Scalar)
}

// NewScalarUint64 returns a new Scalar set to x.
func NewScalarUint64(x uint64) *Scalar {
	return new(Scalar).SetUint64(x)
}

// Set sets s = t, and returns s.
func (s *Scalar) Set(t *Scalar) *Scalar {
	s.value.Set(&t.value)
	return s
}

// SetUint64 sets s = x, and returns s.
func (s *Scalar) SetUint64(x uint64) *Scalar {
	s.value.SetUint64(x)
	return s
}

// SetNat sets s = x mod q, and returns s.
func (s *Scalar) SetNat(x *saferith.Nat) *Scalar {
	reduced := new(saferith.Nat).Mod(x, order)
	s.value.SetBytes(reduced.Bytes())
	return s
}

// Add sets s = s + t, and returns s.
func (s *Scalar) Add(t *Scalar) *Scalar {
	s.value.Add(&s.value, &t.value)
	return s
}

// Sub sets s = s - t, and returns s.
func (s *Scalar) Sub(t *Scalar) *Scalar {
	s.value.Sub(&s.value, &t.value)
	return s
}

// Mul sets s = s • t, and returns s.
func (s *Scalar) Mul(t *Scalar) *Scalar {
	s.value.Mul(&s.value, &t.value)
	return s
}

// Negate sets s = -s, and returns s.
func (s *Scalar) Negate() *Scalar {
	s.value.Neg(&s.value)
	return s
}

// Invert sets s = s⁻¹, and returns s.
//
// The inverse of zero is zero.
func (s *Scalar) Invert() *Scalar {
	s.value.Inverse(&s.value)
	return s
}

// Equal returns true if s and t represent the same field element.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.value.Equal(&t.value)
}

// IsZero returns true if s = 0.
func (s *Scalar) IsZero() bool {
	return s.value.IsZero()
}

// Act returns s • p in G1.
func (s *Scalar) Act(p *G1) *G1 {
	var j bls12381.G1Jac
	j.FromAffine(&p.p)
	j.ScalarMultiplication(&j, s.bigInt())
	out := new(G1)
	out.p.FromJacobian(&j)
	return out
}

// ActOnBase returns s • g₁.
func (s *Scalar) ActOnBase() *G1 {
	return s.Act(&G1{p: g1Gen})
}

// ActG2 returns s • p in G2.
func (s *Scalar) ActG2(p *G2) *G2 {
	var j bls12381.G2Jac
	j.FromAffine(&p.p)
	j.ScalarMultiplication(&j, s.bigInt())
	out := new(G2)
	out.p.FromJacobian(&j)
	return out
}

// ActOnBaseG2 returns s • g₂.
func (s *Scalar) ActOnBaseG2() *G2 {
	return s.ActG2(&G2{p: g2Gen})
}

func (s *Scalar) bigInt() *big.Int {
	return s.value.BigInt(new(big.Int))
}

// Bytes returns the canonical big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.value.Bytes()
	return b[:]
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Non canonical encodings (values ≥ q) are rejected.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesScalar {
		return fmt.Errorf("curve.Scalar.UnmarshalBinary: invalid length %d", len(data))
	}
	if new(big.Int).SetBytes(data).Cmp(fr.Modulus()) >= 0 {
		return errors.New("curve.Scalar.UnmarshalBinary: scalar was >= q")
	}
	s.value.SetBytes(data)
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (s *Scalar) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Scalar) Domain() string {
	return "BLS12-381 Scalar"
}

// String implements fmt.Stringer.
func (s *Scalar) String() string {
	if s == nil {
		return "nil"
	}
	return s.value.String()
}
