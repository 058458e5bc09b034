// Package curve wraps the BLS12-381 pairing-friendly curve.
//
// Scalars live in the prime field of order q, G1 and G2 are the two source groups of
// the optimal ate pairing. All protocol values (commitments, signatures, pseudonyms)
// are expressed with the types of this package.
package curve

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/cronokirby/saferith"
)

var (
	order = saferith.ModulusFromBytes(fr.Modulus().Bytes())

	g1Gen, g2Gen = generators()
)

func generators() (bls12381.G1Affine, bls12381.G2Affine) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}

// Name returns the name of the curve.
func Name() string {
	return "BLS12-381"
}

// Order returns the order q of the scalar field.
func Order() *saferith.Modulus {
	return order
}

// HashToG1 maps msg to a point of G1 with the SSWU hash-to-curve of RFC 9380,
// using dst as domain separation tag.
func HashToG1(msg, dst []byte) (*G1, error) {
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, fmt.Errorf("curve.HashToG1: %w", err)
	}
	return &G1{p: p}, nil
}

// PairingCheck returns true if ∏ e(a[i], b[i]) = 1.
//
// Mismatched lengths or an internal failure of the pairing return false.
func PairingCheck(a []*G1, b []*G2) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	P := make([]bls12381.G1Affine, len(a))
	Q := make([]bls12381.G2Affine, len(b))
	for i := range a {
		if a[i] == nil || b[i] == nil {
			return false
		}
		P[i] = a[i].p
		Q[i] = b[i].p
	}
	ok, err := bls12381.PairingCheck(P, Q)
	return err == nil && ok
}

// PairingEqual returns true if e(a, b) = e(c, d).
func PairingEqual(a *G1, b *G2, c *G1, d *G2) bool {
	if c == nil {
		return false
	}
	return PairingCheck([]*G1{a, c.Negate()}, []*G2{b, d})
}
