package pool

import (
	"bytes"
	"crypto/rand"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelize(t *testing.T) {
	square := func(i int) int { return i * i }

	expected := Parallelize[int](nil, 100, square)
	require.Len(t, expected, 100)

	pl := NewPool(4)
	defer pl.TearDown()
	assert.Equal(t, 4, pl.Workers())
	assert.Equal(t, expected, Parallelize(pl, 100, square))
	assert.Empty(t, Parallelize(pl, 0, square))
}

func TestParallelize_Concurrent(t *testing.T) {
	pl := NewPool(0)
	defer pl.TearDown()

	var wg sync.WaitGroup
	for j := 0; j < 4; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			out := Parallelize(pl, 20, func(i int) int { return i + j })
			for i, v := range out {
				assert.Equal(t, i+j, v)
			}
		}(j)
	}
	wg.Wait()
}

func TestLockedReader(t *testing.T) {
	r := NewLockedReader(rand.Reader)
	var wg sync.WaitGroup
	bufs := make([][]byte, 8)
	for i := range bufs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bufs[i] = make([]byte, 32)
			_, err := io.ReadFull(r, bufs[i])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.False(t, bytes.Equal(bufs[0], bufs[1]))
}
