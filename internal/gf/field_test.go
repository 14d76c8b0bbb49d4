package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func elementGen() *rapid.Generator[int] {
	return rapid.IntRange(1, Size-1)
}

func TestMultiplyInverseIdentity(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		x := elementGen().Draw(t, "x")
		inv := f.Inverse(x)
		assert.Equal(t, 1, f.Multiply(x, inv))
	})
}

func TestMultiplyCommutative(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(0, Size-1).Draw(t, "x")
		y := rapid.IntRange(0, Size-1).Draw(t, "y")
		assert.Equal(t, f.Multiply(x, y), f.Multiply(y, x))
	})
}

func TestDivideUndoesMultiply(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(0, Size-1).Draw(t, "x")
		y := elementGen().Draw(t, "y")
		assert.Equal(t, x, f.Divide(f.Multiply(x, y), y))
	})
}

func TestExpLogRoundTrip(t *testing.T) {
	f := Shared()
	rapid.Check(t, func(t *rapid.T) {
		x := elementGen().Draw(t, "x")
		assert.Equal(t, x, f.Exp(f.Log(x)))
	})
}

func TestZeroHasNoInverse(t *testing.T) {
	f := Shared()
	assert.Panics(t, func() { f.Inverse(0) })
}

func TestElementRejectsOutOfRange(t *testing.T) {
	f := Shared()
	_, err := f.Element(-1)
	require.Error(t, err)
	_, err = f.Element(Size)
	require.Error(t, err)
	v, err := f.Element(5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}
