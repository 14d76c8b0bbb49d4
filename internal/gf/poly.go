package gf

// Poly is a polynomial over GF(2^6), coefficients stored MSB-first
// (index 0 is the highest-degree term), mirroring zxing's GenericGFPoly
// convention. The zero polynomial is canonically []int{0}; leading zero
// coefficients are always stripped on construction.
type Poly struct {
	field        *Field
	coefficients []int
}

// NewPoly builds a Poly from MSB-first coefficients, stripping leading
// zeros except when the whole polynomial is zero.
func NewPoly(field *Field, coefficients []int) *Poly {
	if len(coefficients) == 0 {
		return &Poly{field: field, coefficients: []int{0}}
	}
	firstNonZero := 0
	for firstNonZero < len(coefficients)-1 && coefficients[firstNonZero] == 0 {
		firstNonZero++
	}
	out := make([]int, len(coefficients)-firstNonZero)
	copy(out, coefficients[firstNonZero:])
	return &Poly{field: field, coefficients: out}
}

// Zero returns the canonical zero polynomial over f.
func (f *Field) Zero() *Poly { return NewPoly(f, []int{0}) }

// One returns the canonical constant-1 polynomial over f.
func (f *Field) One() *Poly { return NewPoly(f, []int{1}) }

// Monomial returns coefficient * x^degree.
func (f *Field) Monomial(degree, coefficient int) *Poly {
	if coefficient == 0 {
		return f.Zero()
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return NewPoly(f, coefficients)
}

// Degree returns the polynomial's degree (length - 1).
func (p *Poly) Degree() int { return len(p.coefficients) - 1 }

// IsZero reports whether p is the canonical zero polynomial.
func (p *Poly) IsZero() bool { return p.coefficients[0] == 0 && len(p.coefficients) == 1 }

// Coefficient returns the coefficient of x^degree, 0 if degree is out of
// range (including negative).
func (p *Poly) Coefficient(degree int) int {
	if degree < 0 || degree > p.Degree() {
		return 0
	}
	return p.coefficients[len(p.coefficients)-1-degree]
}

// Coefficients returns the MSB-first coefficient slice. Callers must treat
// it as read-only.
func (p *Poly) Coefficients() []int { return p.coefficients }

// Equal reports structural equality; the two polynomials must share the
// same field.
func (p *Poly) Equal(q *Poly) bool {
	if p.field != q.field || len(p.coefficients) != len(q.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if p.coefficients[i] != q.coefficients[i] {
			return false
		}
	}
	return true
}

// EvaluateAt evaluates p(x) via Horner's method.
func (p *Poly) EvaluateAt(x int) int {
	if x == 0 {
		return p.Coefficient(0)
	}
	f := p.field
	if x == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = f.Add(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for i := 1; i < len(p.coefficients); i++ {
		result = f.Add(f.Multiply(x, result), p.coefficients[i])
	}
	return result
}

// Add returns p + q (XOR of aligned coefficients, the field's only
// addition/subtraction).
func (p *Poly) Add(q *Poly) *Poly {
	if p.field != q.field {
		panic("gf: operands from different fields")
	}
	if p.IsZero() {
		return q
	}
	if q.IsZero() {
		return p
	}
	small, large := p.coefficients, q.coefficients
	if len(small) > len(large) {
		small, large = large, small
	}
	diff := len(large) - len(small)
	result := make([]int, len(large))
	copy(result, large[:diff])
	for i := diff; i < len(large); i++ {
		result[i] = p.field.Add(small[i-diff], large[i])
	}
	return NewPoly(p.field, result)
}

// MultiplyPoly returns p * q via O(n*m) convolution.
func (p *Poly) MultiplyPoly(q *Poly) *Poly {
	if p.field != q.field {
		panic("gf: operands from different fields")
	}
	if p.IsZero() || q.IsZero() {
		return p.field.Zero()
	}
	a, b := p.coefficients, q.coefficients
	result := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		if ac == 0 {
			continue
		}
		for j, bc := range b {
			result[i+j] = p.field.Add(result[i+j], p.field.Multiply(ac, bc))
		}
	}
	return NewPoly(p.field, result)
}

// MultiplyScalar returns p with every coefficient multiplied by scalar.
func (p *Poly) MultiplyScalar(scalar int) *Poly {
	if scalar == 0 {
		return p.field.Zero()
	}
	if scalar == 1 {
		return p
	}
	result := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		result[i] = p.field.Multiply(c, scalar)
	}
	return NewPoly(p.field, result)
}

// MultiplyByMonomial returns p * (coefficient * x^degree).
func (p *Poly) MultiplyByMonomial(degree, coefficient int) *Poly {
	if coefficient == 0 {
		return p.field.Zero()
	}
	result := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		result[i] = p.field.Multiply(c, coefficient)
	}
	return NewPoly(p.field, result)
}

// Divide performs extended synthetic division, returning (quotient,
// remainder) such that p = quotient*divisor + remainder. divisor must be
// non-zero. The remainder's degree is always less than divisor's.
func (p *Poly) Divide(divisor *Poly) (quotient, remainder *Poly) {
	if divisor.IsZero() {
		panic("gf: division by zero polynomial")
	}
	f := p.field
	quotient = f.Zero()
	remainder = p
	denomLeadTerm := divisor.Coefficient(divisor.Degree())
	inverseDenomLeadTerm := f.Inverse(denomLeadTerm)

	for remainder.Degree() >= divisor.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - divisor.Degree()
		scale := f.Multiply(remainder.Coefficient(remainder.Degree()), inverseDenomLeadTerm)
		term := f.Monomial(degreeDiff, scale)
		quotient = quotient.Add(term)
		remainder = remainder.Add(divisor.MultiplyByMonomial(degreeDiff, scale))
	}
	return quotient, remainder
}
