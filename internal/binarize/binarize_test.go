package binarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayImage(width, height int, gray byte) []byte {
	out := make([]byte, 4*width*height)
	for i := 0; i < width*height; i++ {
		o := i * 4
		out[o] = gray
		out[o+1] = gray
		out[o+2] = gray
		out[o+3] = 255
	}
	return out
}

func withPatch(rgba []byte, width, px, py, size int, gray byte) {
	for y := py; y < py+size; y++ {
		for x := px; x < px+size; x++ {
			o := (y*width + x) * 4
			rgba[o], rgba[o+1], rgba[o+2] = gray, gray, gray
		}
	}
}

func TestBinarizeRejectsTooSmallImage(t *testing.T) {
	_, ok := Binarize(grayImage(10, 10, 128), 10, 10)
	assert.False(t, ok)
}

func TestBinarizeDarkPatchOnMidGrayIsOne(t *testing.T) {
	const size = 120
	rgba := grayImage(size, size, 128)
	withPatch(rgba, size, 60, 60, 10, 10)

	bits, ok := Binarize(rgba, size, size)
	require.True(t, ok)
	assert.Equal(t, byte(1), bits.Get(65, 65))
}

func TestBinarizeBrightPatchOnMidGrayIsZero(t *testing.T) {
	const size = 120
	rgba := grayImage(size, size, 128)
	withPatch(rgba, size, 60, 60, 10, 250)

	bits, ok := Binarize(rgba, size, size)
	require.True(t, ok)
	assert.Equal(t, byte(0), bits.Get(65, 65))
}

func TestLumaUsesBT709Weights(t *testing.T) {
	rgba := []byte{255, 0, 0, 255} // pure red
	luma := Luma(rgba, 1, 1)
	assert.InDelta(t, 0.2126*255, float64(luma.Get(0, 0)), 1.5)
}
