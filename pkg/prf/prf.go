// Package prf implements the pseudonym function ElID = prv•H(epoch), where H hashes
// the little-endian encoding of the epoch into G1.
//
// The function is deterministic, and outputs for different keys look like independent
// random points of G1 to anyone not holding the key.
package prf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/taurusgroup/spirit/internal/params"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

// ElID is the pseudonym broadcast by one user during one epoch.
type ElID struct {
	point *curve.G1
}

// Base returns H(epoch), the point every user raises to its own key for this epoch.
func Base(epoch uint64) *curve.G1 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], epoch)
	p, err := curve.HashToG1(buf[:], []byte(params.PRFDomain))
	if err != nil {
		// only happens for an oversized domain separation tag
		panic(fmt.Sprintf("prf.Base: %v", err))
	}
	return p
}

// Evaluate returns prv•H(epoch).
func Evaluate(prv *curve.Scalar, epoch uint64) ElID {
	return ElID{point: prv.Act(Base(epoch))}
}

// FromPoint wraps p as a pseudonym.
func FromPoint(p *curve.G1) ElID {
	return ElID{point: p}
}

// Point returns the underlying point of G1.
func (e ElID) Point() *curve.G1 {
	if e.point == nil {
		return curve.NewG1()
	}
	return e.point
}

// Key returns a string identifying this pseudonym, usable as a map key.
func (e ElID) Key() string {
	return e.Point().Key()
}

// Equal returns true if both pseudonyms are the same point.
func (e ElID) Equal(other ElID) bool {
	return e.Point().Equal(other.Point())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e ElID) MarshalBinary() ([]byte, error) {
	return e.Point().MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *ElID) UnmarshalBinary(data []byte) error {
	p := curve.NewG1()
	if err := p.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("prf.ElID: %w", err)
	}
	e.point = p
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (e ElID) WriteTo(w io.Writer) (int64, error) {
	return e.Point().WriteTo(w)
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (ElID) Domain() string {
	return "ElID"
}

// String returns a short prefix of the encoding, enough to tell pseudonyms apart in traces.
func (e ElID) String() string {
	return fmt.Sprintf("ElID{%x}", e.Point().Bytes()[:6])
}
