package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesRequestedResolution(t *testing.T) {
	data := make([]int, 9)
	img, err := Render(3, data, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, img.Width)
	assert.Equal(t, 2000, img.Height)
}

func TestRenderRejectsTooSmallResolution(t *testing.T) {
	data := make([]int, 9)
	_, err := Render(3, data, 10)
	assert.Error(t, err)
}

func TestToRGBABlackIsZero(t *testing.T) {
	data := make([]int, 9)
	img, err := Render(3, data, 2000)
	require.NoError(t, err)

	rgba := ToRGBA(img, false)
	require.Equal(t, 4*img.Width*img.Height, len(rgba))

	// Finder centre must be black (inner disk), so its RGB channels are 0.
	cx, cy := 400, 400 // top-left finder centre: pad 4 + (FD+QZ)*scale 12
	found := false
	for dy := -5; dy <= 5; dy++ {
		for dx := -5; dx <= 5; dx++ {
			o := ((cy+dy)*img.Width + (cx + dx)) * 4
			if rgba[o] == 0 {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestToRGBAInvertedFlipsPolarity(t *testing.T) {
	data := make([]int, 9)
	img, err := Render(3, data, 500)
	require.NoError(t, err)

	normal := ToRGBA(img, false)
	inverted := ToRGBA(img, true)
	for i := 0; i < len(normal); i += 4 {
		assert.Equal(t, byte(255)-normal[i], inverted[i])
	}
}

func TestBaseDimensionGrowsWithSize(t *testing.T) {
	assert.Greater(t, BaseDimension(5), BaseDimension(2))
}
