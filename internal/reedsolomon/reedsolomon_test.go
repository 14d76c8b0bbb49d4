package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ashokshau/iching/internal/gf"
)

func TestEncodeZeroParityIsPassthrough(t *testing.T) {
	f := gf.Shared()
	e := NewEncoder(f)
	data := []int{1, 2, 3, 4}
	out := e.Encode(data, 0)
	assert.Equal(t, data, out)
}

func TestDecodeCorrectsUpToHalfParity(t *testing.T) {
	f := gf.Shared()
	enc := NewEncoder(f)

	rapid.Check(t, func(t *rapid.T) {
		dataLen := rapid.IntRange(1, 10).Draw(t, "dataLen")
		parity := rapid.IntRange(2, 8).Draw(t, "parity")
		maxErrors := parity / 2

		data := make([]int, dataLen)
		for i := range data {
			data[i] = rapid.IntRange(0, gf.Size-1).Draw(t, "sym")
		}
		codeword := enc.Encode(data, parity)

		numErrors := rapid.IntRange(0, maxErrors).Draw(t, "numErrors")
		corrupted := make([]int, len(codeword))
		copy(corrupted, codeword)
		used := map[int]bool{}
		for i := 0; i < numErrors; i++ {
			pos := rapid.IntRange(0, len(corrupted)-1).Draw(t, "pos")
			if used[pos] {
				continue
			}
			used[pos] = true
			delta := rapid.IntRange(1, gf.Size-1).Draw(t, "delta")
			corrupted[pos] = f.Add(corrupted[pos], delta)
		}

		dec := NewDecoder(f)
		n, err := dec.Decode(corrupted, parity)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Equal(t, codeword[:dataLen], corrupted[:dataLen])
	})
}

func TestDecodeNoErrorsIsNoop(t *testing.T) {
	f := gf.Shared()
	enc := NewEncoder(f)
	data := []int{5, 10, 15, 20}
	codeword := enc.Encode(data, 4)

	dec := NewDecoder(f)
	corrected, err := dec.Decode(codeword, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
}
