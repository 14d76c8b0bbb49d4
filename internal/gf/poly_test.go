package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMonomialEvaluatesAsPower(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		degree := rapid.IntRange(0, 10).Draw(t, "degree")
		coeff := rapid.IntRange(1, Size-1).Draw(t, "coeff")
		x := rapid.IntRange(1, Size-1).Draw(t, "x")

		p := f.Monomial(degree, coeff)
		want := coeff
		for i := 0; i < degree; i++ {
			want = f.Multiply(want, x)
		}
		assert.Equal(t, want, p.EvaluateAt(x))
	})
}

func TestAddIsSelfInverse(t *testing.T) {
	f := Shared()
	a := NewPoly(f, []int{3, 0, 5})
	b := NewPoly(f, []int{1, 2})
	sum := a.Add(b)
	back := sum.Add(b)
	assert.Equal(t, a.Coefficients(), back.Coefficients())
}

func TestDivideReconstructsDividend(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		coeffs := make([]int, n)
		for i := range coeffs {
			coeffs[i] = rapid.IntRange(0, Size-1).Draw(t, "c")
		}
		dividend := NewPoly(f, coeffs)
		divisor := f.Monomial(2, 1).Add(f.One()) // x^2 + 1, never zero

		quotient, remainder := dividend.Divide(divisor)
		reconstructed := quotient.MultiplyPoly(divisor).Add(remainder)
		assert.Equal(t, dividend.EvaluateAt(2), reconstructed.EvaluateAt(2))
	})
}

func TestEvaluateAtZeroIsConstantTerm(t *testing.T) {
	f := Shared()
	p := NewPoly(f, []int{7, 0, 9})
	assert.Equal(t, 9, p.EvaluateAt(0))
}

func TestDegreeAndIsZero(t *testing.T) {
	f := Shared()
	assert.True(t, f.Zero().IsZero())
	assert.Equal(t, 0, f.Zero().Degree())
	p := NewPoly(f, []int{1, 0, 0})
	assert.Equal(t, 2, p.Degree())
	assert.False(t, p.IsZero())
}
