// Package sample draws uniform field and group elements from a caller supplied source.
//
// Nothing here reads a global random source: the io.Reader is always injected, so that
// callers decide between crypto/rand, a locked reader shared by workers, or a hash digest
// when sampling a Fiat-Shamir challenge.
package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/spirit/internal/params"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// ModN samples an element of ℤₙ by wide reduction.
func ModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	buf := make([]byte, (n.BitLen()+7)/8+params.StatParam/8)
	mustReadBits(rand, buf)
	out := new(saferith.Nat).SetBytes(buf)
	return out.Mod(out, n)
}

// Scalar returns a uniform element of the scalar field.
func Scalar(rand io.Reader) *curve.Scalar {
	buf := make([]byte, params.BytesSampleScalar)
	mustReadBits(rand, buf)
	return curve.NewScalar().SetNat(new(saferith.Nat).SetBytes(buf))
}

// ScalarUnit returns a uniform non-zero scalar.
func ScalarUnit(rand io.Reader) *curve.Scalar {
	for i := 0; i < maxIterations; i++ {
		s := Scalar(rand)
		if !s.IsZero() {
			return s
		}
	}
	panic(ErrMaxIterations)
}

// ScalarPointPair returns a non-zero scalar x and X = x•g₁.
func ScalarPointPair(rand io.Reader) (*curve.Scalar, *curve.G1) {
	x := ScalarUnit(rand)
	return x, x.ActOnBase()
}

// G1 returns a uniform element of G1 different from the identity.
func G1(rand io.Reader) *curve.G1 {
	_, p := ScalarPointPair(rand)
	return p
}
