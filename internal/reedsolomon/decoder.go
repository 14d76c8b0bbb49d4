package reedsolomon

import (
	"errors"

	"github.com/ashokshau/iching/internal/gf"
)

// ErrDecode covers every Reed-Solomon decoding failure: a key-equation
// that never converges, a root count that does not match the error
// locator's degree, or a correction landing outside the codeword — the
// three failure modes spec.md §4.4 names are collapsed to this single
// sentinel, as ericlevine/zxinggo's reedsolomon package collapses its own
// Euclidean-algorithm failures to ErrReedSolomon.
var ErrDecode = errors.New("reedsolomon: decoding failed")

// Decoder corrects errors in a received codeword over GF(2^6).
type Decoder struct {
	field *gf.Field
}

// NewDecoder creates a Decoder over the given field.
func NewDecoder(field *gf.Field) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects up to k/2 symbol errors in received (length n) in place,
// given k expected parity symbols, and returns the number of errors
// corrected. It implements spec.md §4.4 steps 1-5: syndromes, the
// Extended Euclidean key equation, exhaustive root search, Forney
// magnitudes, and application.
func (d *Decoder) Decode(received []int, k int) (int, error) {
	f := d.field
	poly := gf.NewPoly(f, received)

	syndromeCoefficients := make([]int, k)
	noError := true
	for i := 0; i < k; i++ {
		eval := poly.EvaluateAt(f.Exp(i))
		syndromeCoefficients[k-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	if noError {
		return 0, nil
	}

	syndrome := gf.NewPoly(f, syndromeCoefficients)
	sigma, omega, err := d.keyEquation(f.Monomial(k, 1), syndrome, k)
	if err != nil {
		return 0, err
	}

	locations, err := d.errorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := d.errorMagnitudes(omega, locations)

	for i, xi := range locations {
		position := len(received) - 1 - f.Log(xi)
		if position < 0 || position >= len(received) {
			return 0, ErrDecode
		}
		received[position] = f.Add(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// keyEquation runs the Extended Euclidean algorithm on (a, b) = (x^k, S)
// until deg(remainder) < k/2, returning the normalised error locator sigma
// and error evaluator omega.
func (d *Decoder) keyEquation(a, b *gf.Poly, k int) (sigma, omega *gf.Poly, err error) {
	f := d.field
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, r := a, b
	tLast, t := f.Zero(), f.One()

	for 2*r.Degree() >= k {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t

		if rLast.IsZero() {
			return nil, nil, ErrDecode
		}
		r = rLastLast
		q := f.Zero()
		denomLead := rLast.Coefficient(rLast.Degree())
		denomLeadInverse := f.Inverse(denomLead)
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := f.Multiply(r.Coefficient(r.Degree()), denomLeadInverse)
			q = q.Add(f.Monomial(degreeDiff, scale))
			r = r.Add(rLast.MultiplyByMonomial(degreeDiff, scale))
		}

		t = q.MultiplyPoly(tLast).Add(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, ErrDecode
		}
	}

	c := t.Coefficient(0)
	if c == 0 {
		return nil, nil, ErrDecode
	}
	inverse := f.Inverse(c)
	sigma = t.MultiplyScalar(inverse)
	omega = r.MultiplyScalar(inverse)
	return sigma, omega, nil
}

// errorLocations exhaustively tests every non-zero field element beta,
// collecting Xi = beta^-1 for every root of sigma. Fails unless the root
// count exactly matches sigma's degree.
func (d *Decoder) errorLocations(sigma *gf.Poly) ([]int, error) {
	f := d.field
	numErrors := sigma.Degree()
	if numErrors == 0 {
		return nil, nil
	}
	if numErrors == 1 {
		return []int{sigma.Coefficient(1)}, nil
	}
	locations := make([]int, 0, numErrors)
	for beta := 1; beta < gf.Size && len(locations) < numErrors; beta++ {
		if sigma.EvaluateAt(beta) == 0 {
			locations = append(locations, f.Inverse(beta))
		}
	}
	if len(locations) != numErrors {
		return nil, ErrDecode
	}
	return locations, nil
}

// errorMagnitudes computes the Forney magnitude for each error location.
func (d *Decoder) errorMagnitudes(omega *gf.Poly, locations []int) []int {
	f := d.field
	n := len(locations)
	magnitudes := make([]int, n)
	for i := 0; i < n; i++ {
		xiInverse := f.Inverse(locations[i])
		denominator := 1
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			term := f.Multiply(locations[j], xiInverse)
			// 1 + term, i.e. toggle the low bit, since + is XOR in GF(2^6).
			denominator = f.Multiply(denominator, term^1)
		}
		magnitudes[i] = f.Multiply(omega.EvaluateAt(xiInverse), f.Inverse(denominator))
	}
	return magnitudes
}
