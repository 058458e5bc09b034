package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/spirit/pkg/math/curve"
)

func TestIDSlice_Valid(t *testing.T) {
	tests := []struct {
		name     string
		partyIDs IDSlice
		want     bool
	}{
		{"empty", IDSlice{}, true},
		{"sorted", IDSlice{"1", "2", "3"}, true},
		{"unsorted", IDSlice{"2", "1"}, false},
		{"duplicate", IDSlice{"1", "1"}, false},
		{"empty id", IDSlice{"", "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.partyIDs.Valid())
		})
	}
}

func TestIDSlice_Contains(t *testing.T) {
	ids := NewIDSlice([]ID{"c", "a", "b"})
	assert.True(t, ids.Valid())
	assert.True(t, ids.Contains("a", "c"))
	assert.False(t, ids.Contains("a", "d"))
	assert.True(t, ids.Contains())
}

func TestID_Scalar(t *testing.T) {
	assert.True(t, FromIndex(1).Scalar().Equal(curve.NewScalarUint64('1')))
	assert.False(t, FromIndex(1).Scalar().Equal(FromIndex(2).Scalar()))
	assert.True(t, ID("").Scalar().IsZero())
}
