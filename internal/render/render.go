// Package render draws a row-major code matrix into a bit-image and
// converts that bit-image to RGBA, implementing spec.md §4.6. The
// concentric-ring geometry has no counterpart in the teacher's QR writer
// (QR modules are plain squares), so the circle fill here follows the
// midpoint/Bresenham convention spec.md calls out directly rather than
// any one example file.
package render

import (
	"github.com/ashokshau/iching/internal/domainerr"
	"github.com/ashokshau/iching/internal/matrix"
)

// Unscaled base geometry constants from spec.md §4.6 (u=2, B=6 bits/symbol).
const (
	u  = 2
	b  = 6
	SD = (2*b - 1) * u // symbol height/width
	GD = 3 * u         // inter-symbol gap
	FD = SD / 2        // finder outer radius (unscaled)
	QZ = SD            // quiet zone
)

var (
	outerRadius  = float64(FD)
	middleRadius = 5 * float64(FD) / 7
	innerRadius  = 3 * float64(FD) / 7
)

// margin is the unscaled distance from the image edge to the start of the
// symbol grid on each side: 2*FD (finder diameter) + QZ (quiet zone).
const margin = 2*FD + QZ

// BaseDimension returns the unscaled base image side for a code of the
// given square size S, before the integer scale factor is applied.
func BaseDimension(size int) int {
	return size*SD + (size-1)*GD + 2*margin
}

// Options lists the renderer's visual-only hints; per spec.md §9(b) they
// never change the logical bit matrix. Neither Render nor ToRGBA takes an
// Options value: ToRGBA takes the inverted flag as a plain argument, and
// RoundEdges is not applied anywhere.
type Options struct {
	RoundEdges bool
	Inverted   bool
}

// Render draws a size x size code matrix (values 0-63, row-major) into a
// resolution x resolution bit matrix. Returns ErrResolutionTooSmall if no
// integer scale >= 1 fits.
func Render(size int, data []int, resolution int) (*matrix.Bit, error) {
	base := BaseDimension(size)
	scale := resolution / base
	if scale < 1 {
		return nil, domainerr.ErrResolutionTooSmall
	}
	pad := (resolution - base*scale) / 2
	s := float64(scale)

	img := matrix.NewBit(resolution, resolution)

	toPixel := func(unscaled int) int { return pad + unscaled*scale }

	topLeft := matrix.PointI{X: toPixel(margin - FD), Y: toPixel(margin - FD)}
	topRight := matrix.PointI{X: toPixel(base-(margin-FD)) - 1, Y: toPixel(margin - FD)}
	bottomLeft := matrix.PointI{X: toPixel(margin - FD), Y: toPixel(base-(margin-FD)) - 1}
	bottomRight := matrix.PointI{X: toPixel(base-(margin-FD)) - 1, Y: toPixel(base-(margin-FD)) - 1}

	drawFinder(img, topLeft, s)
	drawFinder(img, topRight, s)
	drawFinder(img, bottomLeft, s)
	drawAlignment(img, bottomRight, s)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cellX := toPixel(margin + col*(SD+GD))
			cellY := toPixel(margin + row*(SD+GD))
			drawSymbol(img, cellX, cellY, s, data[row*size+col])
		}
	}

	return img, nil
}

// drawFinder draws the three-ring bullseye: a filled black disk, a white
// annulus, and an outer black annulus, per spec.md §4.6.
func drawFinder(img *matrix.Bit, center matrix.PointI, scale float64) {
	fillRing(img, center, 0, innerRadius*scale, 1)
	fillRing(img, center, innerRadius*scale, middleRadius*scale, 0)
	fillRing(img, center, middleRadius*scale, outerRadius*scale, 1)
}

// drawAlignment draws the single black ring of the alignment pattern.
func drawAlignment(img *matrix.Bit, center matrix.PointI, scale float64) {
	fillRing(img, center, innerRadius*scale, middleRadius*scale, 1)
}

// fillRing sets every pixel whose squared distance from center lies in
// [innerR, outerR) to value v, scanning the outer bounding box once. This
// is the midpoint-circle family of algorithm spec.md §4.6 calls for:
// integer bounding box, no trig, just squared-distance comparisons.
func fillRing(img *matrix.Bit, center matrix.PointI, innerR, outerR float64, v byte) {
	if outerR <= 0 {
		return
	}
	r := int(outerR) + 1
	innerSq := innerR * innerR
	outerSq := outerR * outerR
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := float64(dx*dx + dy*dy)
			if d >= innerSq && d < outerSq {
				img.Set(center.X+dx, center.Y+dy, v)
			}
		}
	}
}

// drawSymbol renders one 6-bit field element as six stacked horizontal
// bars, MSB first from the top: bit position b occupies rows
// [2*b*u*s, 2*b*u*s + u*s), per spec.md §4.6. A set bit draws a solid
// black bar; a clear bit draws the same bar with a white 2u*s-wide
// rectangle cut out, centred 4.5u*s from the bar's left edge.
func drawSymbol(img *matrix.Bit, cellX, cellY int, scale float64, value int) {
	width := int(SD * scale)
	barHeight := int(u * scale)
	clearWidth := 2 * u * scale
	clearCenter := 4.5 * u * scale
	clearLo := int(clearCenter - clearWidth/2)
	clearHi := int(clearCenter + clearWidth/2)

	for bit := 0; bit < b; bit++ {
		rowOffset := int(2 * float64(bit) * u * scale)
		set := (value>>(b-1-bit))&1 == 1

		for dy := 0; dy < barHeight; dy++ {
			for dx := 0; dx < width; dx++ {
				v := byte(1)
				if !set && dx >= clearLo && dx < clearHi {
					v = 0
				}
				img.Set(cellX+dx, cellY+rowOffset+dy, v)
			}
		}
	}
}
