package party

import (
	"io"
	"sort"
)

// IDSlice is a sorted list of distinct IDs.
type IDSlice []ID

// NewIDSlice returns a sorted slice from partyIDs.
func NewIDSlice(partyIDs []ID) IDSlice {
	ids := IDSlice(append([]ID(nil), partyIDs...))
	ids.sort()
	return ids
}

// Contains returns true if partyIDs contains all IDs.
func (partyIDs IDSlice) Contains(ids ...ID) bool {
	for _, id := range ids {
		if _, ok := partyIDs.search(id); !ok {
			return false
		}
	}
	return true
}

// Valid returns true if the IDSlice is sorted, contains no duplicates and no empty ID.
func (partyIDs IDSlice) Valid() bool {
	for i, id := range partyIDs {
		if id == "" {
			return false
		}
		if i > 0 && partyIDs[i-1] >= id {
			return false
		}
	}
	return true
}

// Copy returns an identical copy of the received.
func (partyIDs IDSlice) Copy() IDSlice {
	a := make(IDSlice, len(partyIDs))
	copy(a, partyIDs)
	return a
}

// search returns the index of id and whether it was found.
func (partyIDs IDSlice) search(id ID) (int, bool) {
	index := sort.Search(len(partyIDs), func(i int) bool { return partyIDs[i] >= id })
	if index >= 0 && index < len(partyIDs) && partyIDs[index] == id {
		return index, true
	}
	return 0, false
}

// sort makes sure the IDSlice is sorted.
func (partyIDs IDSlice) sort() {
	sort.Slice(partyIDs, func(i, j int) bool { return partyIDs[i] < partyIDs[j] })
}

// WriteTo implements io.WriterTo interface.
func (partyIDs IDSlice) WriteTo(w io.Writer) (int64, error) {
	nAll := int64(0)
	for _, id := range partyIDs {
		n, err := id.WriteTo(w)
		nAll += n
		if err != nil {
			return nAll, err
		}
		m, err := w.Write([]byte{0})
		nAll += int64(m)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (IDSlice) Domain() string {
	return "IDSlice"
}
