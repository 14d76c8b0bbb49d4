// Package locate scans a binarized bit matrix for finder (1:1:3:1:1) and
// alignment (1:3:1) ring patterns and assigns them to the four corners of
// the code, per spec.md §4.8. It generalises the teacher's (ashokshau/qrcode)
// single-purpose finder scan into a reusable ratio-matching PatternLocator,
// the shape zxing's finder-pattern finder uses for the same family of
// concentric-ring detection (consulted for structure only; no file from
// that project is importable here).
package locate

import (
	"math"

	"github.com/ashokshau/iching/internal/domainerr"
	"github.com/ashokshau/iching/internal/matrix"
)

// FinderRatio and AlignmentRatio are the run-length ratios spec.md §4.8
// names: five alternating rings for a finder, three for an alignment dot.
var (
	FinderRatio    = []int{1, 1, 3, 1, 1}
	AlignmentRatio = []int{1, 3, 1}
)

const MinPatternDist = 50

// Candidate is one ratio match: its refined centre, pixel size, and
// goodness-of-fit error (lower is better).
type Candidate struct {
	X, Y  float64
	Size  float64
	Error float64
}

// Patterns is the final assignment spec.md §3 calls "patterns location".
type Patterns struct {
	TopLeft, TopRight, BottomLeft, BottomRight matrix.Point
	FinderAverageSize                          float64
	AlignmentSize                              float64
}

// ratioSum returns the sum of a ratio's unit multiples.
func ratioSum(ratio []int) int {
	s := 0
	for _, r := range ratio {
		s += r
	}
	return s
}

// validateRatio reports whether runs matches ratio within +/- unit/2 per
// slot, returning the fitted unit size.
func validateRatio(runs []int, ratio []int) (unit float64, ok bool) {
	total := 0
	for _, r := range runs {
		total += r
	}
	rs := ratioSum(ratio)
	unit = float64(total) / float64(rs)
	if unit <= 0 {
		return 0, false
	}
	for i, r := range runs {
		if math.Abs(float64(r)-float64(ratio[i])*unit) > unit/2 {
			return unit, false
		}
	}
	return unit, true
}

// runsAt scans up to len(ratio) alternating-colour runs outward from
// (x,y) along direction (dx,dy), split evenly before and after the start
// pixel, and returns them oldest-to-newest along the direction of travel.
// The colour at (x,y) itself is the pattern's centre run, runs[n/2].
func runsAt(bits *matrix.Bit, x, y, dx, dy int, n int) ([]int, bool) {
	mid := n / 2
	runs := make([]int, n)

	// Walk backward from the centre to fill runs[mid] down to runs[0].
	cx, cy := x, y
	color := bits.Get(x, y)
	for i := mid; i >= 0; i-- {
		count := 0
		for inBounds(bits, cx, cy) && bits.Get(cx, cy) == color {
			count++
			cx -= dx
			cy -= dy
		}
		if count == 0 {
			return nil, false
		}
		runs[i] = count
		color = flip(color)
	}

	// Walk forward from the centre to finish runs[mid], then fill
	// runs[mid+1] up to runs[n-1].
	cx, cy = x+dx, y+dy
	color = bits.Get(x, y)
	for i := mid; i < n; i++ {
		count := 0
		for inBounds(bits, cx, cy) && bits.Get(cx, cy) == color {
			count++
			cx += dx
			cy += dy
		}
		if count == 0 && i > mid {
			return nil, false
		}
		runs[i] += count
		color = flip(color)
	}

	return runs, true
}

func inBounds(bits *matrix.Bit, x, y int) bool {
	return x >= 0 && y >= 0 && x < bits.Width && y < bits.Height
}

func flip(v byte) byte {
	if v == 0 {
		return 1
	}
	return 0
}

// crossCheck validates the ratio along one direction from (x,y) and
// returns the run lengths and the fitted unit, for use by the size/error
// pass in refine.
func crossCheck(bits *matrix.Bit, x, y, dx, dy int, ratio []int) ([]int, float64, bool) {
	runs, ok := runsAt(bits, x, y, dx, dy, len(ratio))
	if !ok {
		return nil, 0, false
	}
	unit, ok := validateRatio(runs, ratio)
	return runs, unit, ok
}

// refine recomputes the centre, size, and error for a ratio match found at
// (x,y), scanning horizontal, vertical, and both diagonals, per spec.md
// §4.8 step 5.
func refine(bits *matrix.Bit, x, y int, ratio []int, target byte) (*Candidate, bool) {
	if bits.Get(x, y) != target {
		return nil, false
	}

	hRuns, hUnit, hOK := crossCheck(bits, x, y, 1, 0, ratio)
	vRuns, vUnit, vOK := crossCheck(bits, x, y, 0, 1, ratio)
	if !hOK || !vOK {
		return nil, false
	}

	// Recentre on the midpoint of the centre run, horizontally and
	// vertically, before measuring diagonals, per spec.md's
	// centre-refinement step: each centre-colour pixel beyond (x,y) on one
	// side moves the centre half a pixel toward that side.
	cx := float64(x)
	cy := float64(y)
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		for k := 1; inBounds(bits, x+k*d[0], y+k*d[1]) && bits.Get(x+k*d[0], y+k*d[1]) == target; k++ {
			cx += float64(d[0]) / 2
			cy += float64(d[1]) / 2
		}
	}
	rx, ry := int(math.Round(cx)), int(math.Round(cy))

	d1Runs, d1Unit, d1OK := crossCheck(bits, rx, ry, 1, 1, ratio)
	d2Runs, d2Unit, d2OK := crossCheck(bits, rx, ry, 1, -1, ratio)
	if !d1OK || !d2OK {
		return nil, false
	}

	sum := func(runs []int) float64 {
		t := 0
		for _, r := range runs {
			t += r
		}
		return float64(t)
	}
	sqrt2 := math.Sqrt2
	avgSize := (sum(hRuns) + sum(vRuns) + sqrt2*sum(d1Runs) + sqrt2*sum(d2Runs)) / 4
	rs := float64(ratioSum(ratio))
	avgUnit := avgSize / rs
	if avgUnit <= 0 {
		return nil, false
	}

	errTerm := func(runs []int) float64 {
		e := 0.0
		for i, r := range runs {
			v := float64(r)/avgUnit/float64(ratio[i]) - 1
			e += v * v
		}
		return e
	}
	totalErr := errTerm(hRuns) + errTerm(vRuns) + errTerm(d1Runs) + errTerm(d2Runs)
	patErr := totalErr / float64(4*len(ratio))

	_ = hUnit
	_ = vUnit
	_ = d1Unit
	_ = d2Unit

	return &Candidate{X: cx, Y: cy, Size: avgSize, Error: patErr}, true
}

// Scan sweeps the bit matrix for candidates matching ratio, skipping every
// other row, per spec.md §4.8 steps 1-4.
func Scan(bits *matrix.Bit, ratio []int) []Candidate {
	var out []Candidate
	n := len(ratio)
	mid := n / 2

	for y := 0; y < bits.Height; y += 2 {
		runs := make([]int, 0, n)
		runStart := 0
		color := bits.Get(0, y)
		runLen := 0

		flush := func(endX int) {
			if len(runs) < n {
				return
			}
			window := runs[len(runs)-n:]
			if _, ok := validateRatio(window, ratio); !ok {
				return
			}
			// Candidate centre x: end_of_last_run - half of middle run -
			// trailing runs length, per spec.md step 2.
			cum := 0
			for i := n - 1; i > mid; i-- {
				cum += window[i]
			}
			cx := endX - cum - window[mid]/2
			cy := y
			if cx < 0 || cx >= bits.Width {
				return
			}
			target := bits.Get(cx, cy)
			if cand, ok := refine(bits, cx, cy, ratio, target); ok {
				out = append(out, *cand)
			}
		}

		for x := 0; x <= bits.Width; x++ {
			var c byte
			if x < bits.Width {
				c = bits.Get(x, y)
			} else {
				c = flip(color)
			}
			if x < bits.Width && c == color {
				runLen++
				continue
			}
			runs = append(runs, runLen)
			flush(x)
			if len(runs) > n {
				runs = runs[len(runs)-n:]
			}
			runStart = x
			color = c
			runLen = 1
		}
		_ = runStart
	}

	return dedupe(out)
}

// dedupe merges candidates closer than MinPatternDist, keeping the lowest
// error of each cluster.
func dedupe(cands []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cands {
		merged := false
		for i := range out {
			dx := out[i].X - c.X
			dy := out[i].Y - c.Y
			if math.Hypot(dx, dy) < MinPatternDist {
				merged = true
				if c.Error < out[i].Error {
					out[i] = c
				}
				break
			}
		}
		if !merged {
			out = append(out, c)
		}
	}
	return out
}

// AssignFinders sorts finder candidates by error, keeps the three best
// distinct ones, filters outliers by size, and orients them clockwise
// TL -> TR -> BR -> BL per spec.md §4.8.
func AssignFinders(cands []Candidate) (tl, tr, bl matrix.Point, size float64, err error) {
	if len(cands) < 3 {
		return matrix.Point{}, matrix.Point{}, matrix.Point{}, 0, domainerr.ErrNoFinderPatterns
	}
	sorted := append([]Candidate(nil), cands...)
	sortByError(sorted)

	top3 := sorted[:3]
	estimatedSize := 0.0
	for _, c := range top3 {
		if c.Size > estimatedSize {
			estimatedSize = c.Size
		}
	}
	var kept []Candidate
	for _, c := range top3 {
		if c.Size >= 5*estimatedSize || 4*c.Size <= estimatedSize {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) < 3 {
		return matrix.Point{}, matrix.Point{}, matrix.Point{}, 0, domainerr.ErrNoValidFinders
	}
	a, b, c := kept[0], kept[1], kept[2]

	dAB := dist(a, b)
	dBC := dist(b, c)
	dCA := dist(c, a)

	// The diagonal pair is the farthest-apart two; the remaining point is
	// top-left.
	var topLeft, p1, p2 Candidate
	switch max3(dAB, dBC, dCA) {
	case dAB:
		topLeft, p1, p2 = c, a, b
	case dBC:
		topLeft, p1, p2 = a, b, c
	default:
		topLeft, p1, p2 = b, c, a
	}

	// Orient so TL -> TR -> BL is clockwise in image coordinates.
	cross := (p1.X-topLeft.X)*(p2.Y-topLeft.Y) - (p1.Y-topLeft.Y)*(p2.X-topLeft.X)
	topRight, bottomLeft := p1, p2
	if cross < 0 {
		topRight, bottomLeft = p2, p1
	}

	avgSize := (a.Size + b.Size + c.Size) / 3
	return matrix.Point{X: topLeft.X, Y: topLeft.Y},
		matrix.Point{X: topRight.X, Y: topRight.Y},
		matrix.Point{X: bottomLeft.X, Y: bottomLeft.Y},
		avgSize, nil
}

func dist(a, b Candidate) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func sortByError(c []Candidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].Error < c[j-1].Error; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// FindAlignment searches a square window centred at the estimated
// bottom-right corner for the best 1:3:1 alignment candidate, per spec.md
// §4.8's alignment-search step. estimated is kept if nothing qualifies.
func FindAlignment(bits *matrix.Bit, estimated matrix.Point, finderAvgSize, finderDist float64) (matrix.Point, float64) {
	expected := finderAvgSize * 5 / 7
	radius := int(finderDist / 2)

	x0 := int(estimated.X) - radius
	y0 := int(estimated.Y) - radius
	x1 := int(estimated.X) + radius
	y1 := int(estimated.Y) + radius
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= bits.Width {
		x1 = bits.Width - 1
	}
	if y1 >= bits.Height {
		y1 = bits.Height - 1
	}

	sub := matrix.NewBit(x1-x0+1, y1-y0+1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			sub.Set(x-x0, y-y0, bits.Get(x, y))
		}
	}

	cands := Scan(sub, AlignmentRatio)
	var best *Candidate
	for i := range cands {
		c := cands[i]
		if c.Size < expected/4 || c.Size > 5*expected {
			continue
		}
		if best == nil || c.Error < best.Error {
			best = &c
		}
	}
	if best == nil {
		return estimated, expected
	}
	return matrix.Point{X: best.X + float64(x0), Y: best.Y + float64(y0)}, best.Size
}

// Locate runs the full finder-then-alignment pipeline over a binarized
// image, producing the four corner points spec.md §3 names.
func Locate(bits *matrix.Bit) (*Patterns, error) {
	finderCands := Scan(bits, FinderRatio)
	tl, tr, bl, avgSize, err := AssignFinders(finderCands)
	if err != nil {
		return nil, err
	}

	estimatedBR := matrix.Point{X: tr.X - tl.X + bl.X, Y: tr.Y - tl.Y + bl.Y}
	finderDist := (dist(Candidate{X: tl.X, Y: tl.Y}, Candidate{X: tr.X, Y: tr.Y}) +
		dist(Candidate{X: tl.X, Y: tl.Y}, Candidate{X: bl.X, Y: bl.Y})) / 2

	br, alignSize := FindAlignment(bits, estimatedBR, avgSize, finderDist)

	return &Patterns{
		TopLeft:            tl,
		TopRight:           tr,
		BottomLeft:         bl,
		BottomRight:        br,
		FinderAverageSize:  avgSize,
		AlignmentSize:      alignSize,
	}, nil
}
