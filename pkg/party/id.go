// Package party identifies the issuers taking part in threshold credential issuance.
package party

import (
	"io"
	"strconv"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

// ID represents a unique identifier for an issuer.
//
// The empty ID is not valid, since it maps to the scalar 0 and would leak the
// secret when used as an evaluation point.
type ID string

// Scalar converts this ID into a scalar.
//
// The bytes of the ID are interpreted as a big-endian integer and reduced mod q.
func (id ID) Scalar() *curve.Scalar {
	return curve.NewScalar().SetNat(new(saferith.Nat).SetBytes([]byte(id)))
}

// FromIndex returns the ID used for the i-th issuer created at setup, i.e. "i".
func FromIndex(i int) ID {
	return ID(strconv.Itoa(i))
}

// WriteTo makes ID implement the io.WriterTo interface.
//
// This writes out the content of this ID, in a domain separated way.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	if id == "" {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := io.WriteString(w, string(id))
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (ID) Domain() string {
	return "ID"
}
