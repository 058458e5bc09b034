package sample

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededReader(t *testing.T) {
	a, b, c := make([]byte, 100), make([]byte, 100), make([]byte, 100)
	_, err := io.ReadFull(NewSeededReader(1), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewSeededReader(1), b)
	require.NoError(t, err)
	_, err = io.ReadFull(NewSeededReader(2), c)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	r := NewSeededReader(1)
	first, second := make([]byte, 50), make([]byte, 50)
	_, _ = r.Read(first)
	_, _ = r.Read(second)
	assert.Equal(t, a, append(first, second...), "the stream continues across reads")

	assert.True(t, ScalarUnit(NewSeededReader(3)).Equal(ScalarUnit(NewSeededReader(3))))
}
