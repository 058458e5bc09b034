package spirit

import (
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/prf"
)

type exposureEntry struct {
	elid prf.ElID
	salt *curve.Scalar
}

// ExposureTable maps the pseudonyms known to one user to a random salt.
//
// It is owned by a single user and is not safe for concurrent use. The zero value is
// an empty table.
type ExposureTable struct {
	entries map[string]exposureEntry
	// own maps each epoch the user broadcast in to the key of its pseudonym
	own map[uint64]string
}

func NewExposureTable() *ExposureTable {
	return &ExposureTable{
		entries: make(map[string]exposureEntry),
		own:     make(map[uint64]string),
	}
}

// record sets the salt of the user's own pseudonym for epoch.
//
// A later call for the same epoch replaces the salt, the table keeps one pseudonym per epoch.
func (t *ExposureTable) record(epoch uint64, elid prf.ElID, salt *curve.Scalar) {
	t.init()
	key := elid.Key()
	if previous, ok := t.own[epoch]; ok && previous != key {
		delete(t.entries, previous)
	}
	t.own[epoch] = key
	t.entries[key] = exposureEntry{elid: elid, salt: salt}
}

func (t *ExposureTable) init() {
	if t.entries == nil {
		t.entries = make(map[string]exposureEntry)
	}
	if t.own == nil {
		t.own = make(map[uint64]string)
	}
}

// Observe records a pseudonym heard from a nearby device, with a fresh salt.
func (t *ExposureTable) Observe(rt *Runtime, elid prf.ElID) {
	t.init()
	key := elid.Key()
	if _, ok := t.entries[key]; ok {
		return
	}
	t.entries[key] = exposureEntry{elid: elid, salt: sampleSalt(rt)}
}

// Contains returns true if the table holds elid.
func (t *ExposureTable) Contains(elid prf.ElID) bool {
	_, ok := t.entries[elid.Key()]
	return ok
}

// Salt returns the salt stored with elid.
func (t *ExposureTable) Salt(elid prf.ElID) (*curve.Scalar, bool) {
	e, ok := t.entries[elid.Key()]
	if !ok {
		return nil, false
	}
	return e.salt, true
}

// Len returns the number of pseudonyms in the table.
func (t *ExposureTable) Len() int {
	return len(t.entries)
}

// ElIDs returns the pseudonyms of the table, in no particular order.
func (t *ExposureTable) ElIDs() []prf.ElID {
	elids := make([]prf.ElID, 0, len(t.entries))
	for _, e := range t.entries {
		elids = append(elids, e.elid)
	}
	return elids
}
