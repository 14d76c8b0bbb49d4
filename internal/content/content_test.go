package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ashokshau/iching/internal/domainerr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	code, err := Encode("Hello World", ECLevelMedium)
	require.NoError(t, err)

	decoded, err := Decode(code.Version, code.Size, code.Data)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", decoded)
}

func TestEncodeRejectsEmptyPayload(t *testing.T) {
	_, err := Encode("", ECLevelNone)
	assert.ErrorIs(t, err, domainerr.ErrEmptyPayload)
}

func TestEncodeRejectsBadECLevel(t *testing.T) {
	_, err := Encode("hi", 1.5)
	assert.ErrorIs(t, err, domainerr.ErrInvalidECLevel)
}

func TestEncodeRejectsInvalidCharacter(t *testing.T) {
	_, err := Encode("hi~there", ECLevelNone)
	assert.ErrorIs(t, err, domainerr.ErrInvalidCharacter)
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	big := make([]byte, 100)
	for i := range big {
		big[i] = 'A'
	}
	_, err := Encode(string(big), ECLevelHigh)
	assert.ErrorIs(t, err, domainerr.ErrPayloadTooBig)
}

func TestDecodeCorrectsSingleSymbolError(t *testing.T) {
	code, err := Encode("TEST123", ECLevelMedium)
	require.NoError(t, err)

	corrupted := make([]int, len(code.Data))
	copy(corrupted, code.Data)
	corrupted[len(corrupted)-1] ^= 0x05 // flip a parity symbol

	decoded, err := Decode(code.Version, code.Size, corrupted)
	require.NoError(t, err)
	assert.Equal(t, "TEST123", decoded)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(1, 20).Draw(t, "length")
		chars := make([]byte, length)
		for i := range chars {
			idx := rapid.IntRange(0, len(Alphabet)-1).Draw(t, "idx")
			chars[i] = Alphabet[idx]
		}
		payload := string(chars)

		code, err := Encode(payload, ECLevelLow)
		require.NoError(t, err)

		decoded, err := Decode(code.Version, code.Size, code.Data)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})
}
