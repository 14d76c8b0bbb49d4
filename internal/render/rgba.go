package render

import "github.com/ashokshau/iching/internal/matrix"

// ToRGBA converts a bit matrix to 4*W*H row-major RGBA bytes: black bit
// (1) -> (0,0,0,255), white bit (0) -> (255,255,255,255). inverted swaps
// the two; it is a rendering hint only (spec.md §9(b)) and never touches
// the logical bit matrix itself.
func ToRGBA(img *matrix.Bit, inverted bool) []byte {
	out := make([]byte, 4*img.Width*img.Height)
	for i, bit := range img.Data {
		var gray byte
		if bit == 1 {
			gray = 0
		} else {
			gray = 255
		}
		if inverted {
			gray = 255 - gray
		}
		o := i * 4
		out[o] = gray
		out[o+1] = gray
		out[o+2] = gray
		out[o+3] = 255
	}
	return out
}
