package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashokshau/iching/internal/matrix"
)

func TestBuildIdentityForMatchingQuads(t *testing.T) {
	quad := [4]matrix.Point{
		{X: 10, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
	}
	m := Build(quad, quad)

	for _, p := range quad {
		x, y := m.Apply(p.X, p.Y)
		assert.InDelta(t, p.X, x, 1e-6)
		assert.InDelta(t, p.Y, y, 1e-6)
	}
}

func TestRectifyProducesSquareFromAxisAlignedCorners(t *testing.T) {
	src := matrix.NewBit(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if (x/10+y/10)%2 == 0 {
				src.Set(x, y, 1)
			}
		}
	}

	out := Rectify(src, matrix.Point{X: 0, Y: 0}, matrix.Point{X: 99, Y: 0}, matrix.Point{X: 0, Y: 99}, matrix.Point{X: 99, Y: 99})
	assert.Equal(t, 99, out.Width)
	assert.Equal(t, 99, out.Height)
}
