// Package reedsolomon implements the Reed-Solomon encoder and decoder over
// GF(2^6), following the generator-polynomial-cache design of
// ericlevine/zxinggo's reedsolomon package (see reedsolomon-encoder.go and
// reedsolomon-decoder.go in the retrieved corpus), rebased from GF(2^8) to
// the field this project's symbols live in.
package reedsolomon

import "github.com/ashokshau/iching/internal/gf"

// Encoder appends Reed-Solomon parity symbols to a data array, caching the
// generator polynomials it builds (G0=1, Gk = G(k-1)*(x + alpha^(k-1))) so
// repeated encodes at the same parity count are free after the first.
type Encoder struct {
	field      *gf.Field
	generators []*gf.Poly
}

// NewEncoder creates an Encoder over the given field.
func NewEncoder(field *gf.Field) *Encoder {
	return &Encoder{
		field:      field,
		generators: []*gf.Poly{field.One()},
	}
}

func (e *Encoder) generator(degree int) *gf.Poly {
	if degree < len(e.generators) {
		return e.generators[degree]
	}
	last := e.generators[len(e.generators)-1]
	for d := len(e.generators); d <= degree; d++ {
		next := last.MultiplyPoly(gf.NewPoly(e.field, []int{1, e.field.Exp(d - 1)}))
		e.generators = append(e.generators, next)
		last = next
	}
	return e.generators[degree]
}

// Encode returns data with k parity symbols appended, per spec.md §4.3:
// k == 0 returns data unchanged; otherwise data is zero-extended by k
// symbols, divided by the degree-k generator, and the remainder copied
// into the tail (right-aligned to length k).
func (e *Encoder) Encode(data []int, k int) []int {
	if k == 0 {
		out := make([]int, len(data))
		copy(out, data)
		return out
	}
	if len(data) == 0 {
		panic("reedsolomon: empty data")
	}

	padded := make([]int, len(data)+k)
	copy(padded, data)

	info := gf.NewPoly(e.field, data).MultiplyByMonomial(k, 1)
	_, remainder := info.Divide(e.generator(k))

	coefficients := remainder.Coefficients()
	numZero := k - len(coefficients)
	for i := 0; i < numZero; i++ {
		padded[len(data)+i] = 0
	}
	copy(padded[len(data)+numZero:], coefficients)
	return padded
}
