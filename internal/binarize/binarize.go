// Package binarize turns an RGBA image buffer into a bit matrix using an
// adaptive, block-mean threshold, following spec.md §4.7. The sliding-sum
// box filter mirrors the teacher's (ashokshau/qrcode) habit of a single
// forward pass over the pixel buffer in its decoder's luma step, extended
// here with a two-dimensional running sum so the threshold table costs
// O(W*H) instead of O(W*H*BLOCK^2).
package binarize

import "github.com/ashokshau/iching/internal/matrix"

// Block size and threshold tuning from spec.md §4.7.
const (
	Block       = 80
	C           = 2
	MinVariance = 20
)

// Luma converts an RGBA buffer to a W x H grayscale byte matrix using
// BT.709 luma weights.
func Luma(rgba []byte, width, height int) *matrix.Byte {
	out := matrix.NewByte(width, height)
	for i := 0; i < width*height; i++ {
		o := i * 4
		r := float64(rgba[o])
		g := float64(rgba[o+1])
		bch := float64(rgba[o+2])
		y := 0.2126*r + 0.7152*g + 0.0722*bch
		out.Data[i] = byte(y)
	}
	return out
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Binarize converts an RGBA buffer into a bit matrix of the same
// dimensions. Returns false (no error, per the caller's contract of
// rejecting only via the image-too-small case, handled by the caller) when
// either dimension is below Block; the caller maps that to
// ErrResolutionTooSmall since no legitimate code can be rendered smaller.
func Binarize(rgba []byte, width, height int) (*matrix.Bit, bool) {
	if width < Block || height < Block {
		return nil, false
	}

	luma := Luma(rgba, width, height)
	threshold := buildThresholdTable(luma, width, height)

	out := matrix.NewBit(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bx := clamp(x+Block/2, Block-1, width-1) - Block + 1
			by := clamp(y+Block/2, Block-1, height-1) - Block + 1
			tau := threshold.Get(bx, by)
			l := luma.Get(x, y)

			var bit byte
			if absInt(int(tau)-int(l)) < MinVariance {
				bit = neighbourConsensus(out, luma, x, y)
			} else if int(l) < int(tau) {
				bit = 1
			} else {
				bit = 0
			}
			out.Set(x, y, bit)
		}
	}
	return out, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// neighbourConsensus resolves a low-contrast pixel by averaging the
// already-decided neighbours above, left, and diagonal-upper-left, per
// spec.md §4.7; at the top-left border it substitutes luma/2 - C for the
// threshold and applies the same luma < threshold rule.
func neighbourConsensus(bits *matrix.Bit, luma *matrix.Byte, x, y int) byte {
	if x == 0 || y == 0 {
		l := float64(luma.Get(x, y))
		borderThreshold := l/2 - C
		if l < borderThreshold {
			return 1
		}
		return 0
	}
	sum := int(bits.Get(x-1, y)) + int(bits.Get(x, y-1)) + int(bits.Get(x-1, y-1))
	if sum >= 2 {
		return 1
	}
	return 0
}

// buildThresholdTable computes T[x,y] = (mean of the BLOCK x BLOCK window
// whose top-left corner is (x,y)) - C, using a running row sum per y
// slid rightward across x, and a vertical slide within each column.
func buildThresholdTable(luma *matrix.Byte, width, height int) *matrix.Byte {
	out := matrix.NewByte(width-Block+1, height-Block+1)

	rowSum := make([]int, height)
	for y := 0; y < height; y++ {
		sum := 0
		for dx := 0; dx < Block; dx++ {
			sum += int(luma.Get(dx, y))
		}
		rowSum[y] = sum
	}

	for x := 0; x <= width-Block; x++ {
		if x > 0 {
			for y := 0; y < height; y++ {
				rowSum[y] += int(luma.Get(x+Block-1, y)) - int(luma.Get(x-1, y))
			}
		}

		colSum := 0
		for dy := 0; dy < Block; dy++ {
			colSum += rowSum[dy]
		}
		out.Set(x, 0, clampByte(colSum/(Block*Block)-C))

		for y := 1; y <= height-Block; y++ {
			colSum += rowSum[y+Block-1] - rowSum[y-1]
			out.Set(x, y, clampByte(colSum/(Block*Block)-C))
		}
	}
	return out
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
