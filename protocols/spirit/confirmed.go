package spirit

import (
	"sync"
	"sync/atomic"

	"github.com/taurusgroup/spirit/pkg/prf"
)

// ConfirmedSet holds the pseudonyms confirmed as exposed by verified reports.
//
// Writers are serialised and publish a new snapshot atomically, so readers always see
// the result of whole reports. The zero value is an empty set.
type ConfirmedSet struct {
	mtx     sync.Mutex
	current atomic.Pointer[ConfirmedSnapshot]
}

// NewConfirmedSet returns a set holding elids, for instance reloaded from storage.
func NewConfirmedSet(elids ...prf.ElID) *ConfirmedSet {
	c := new(ConfirmedSet)
	s := &ConfirmedSnapshot{elids: make(map[string]prf.ElID, len(elids))}
	for _, elid := range elids {
		s.elids[elid.Key()] = elid
	}
	c.current.Store(s)
	return c
}

// Snapshot returns the current content of the set.
func (c *ConfirmedSet) Snapshot() *ConfirmedSnapshot {
	if s := c.current.Load(); s != nil {
		return s
	}
	return &ConfirmedSnapshot{}
}

// add publishes a snapshot containing elids in addition to the current ones.
func (c *ConfirmedSet) add(elids []prf.ElID) *ConfirmedSnapshot {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	old := c.Snapshot()
	next := &ConfirmedSnapshot{
		Version: old.Version + 1,
		elids:   make(map[string]prf.ElID, len(old.elids)+len(elids)),
	}
	for k, v := range old.elids {
		next.elids[k] = v
	}
	for _, elid := range elids {
		next.elids[elid.Key()] = elid
	}
	c.current.Store(next)
	return next
}

// ConfirmedSnapshot is an immutable view of a ConfirmedSet.
type ConfirmedSnapshot struct {
	Version uint64
	elids   map[string]prf.ElID
}

// Contains returns true if elid was confirmed.
func (s *ConfirmedSnapshot) Contains(elid prf.ElID) bool {
	if s == nil {
		return false
	}
	_, ok := s.elids[elid.Key()]
	return ok
}

// Len returns the number of confirmed pseudonyms.
func (s *ConfirmedSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elids)
}

// ElIDs returns the confirmed pseudonyms, in no particular order.
func (s *ConfirmedSnapshot) ElIDs() []prf.ElID {
	if s == nil {
		return nil
	}
	elids := make([]prf.ElID, 0, len(s.elids))
	for _, elid := range s.elids {
		elids = append(elids, elid)
	}
	return elids
}
