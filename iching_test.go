package iching

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesExpectedShape(t *testing.T) {
	encoded, err := Encode("Hello World", WithECLevel(ECLevelMedium), WithResolution(1500))
	require.NoError(t, err)
	assert.Equal(t, Version, encoded.Version)
	assert.Equal(t, encoded.Size*encoded.Size, len(encoded.Data))
	assert.Equal(t, 1500, encoded.ImageData.Width)
	assert.Equal(t, 1500, encoded.ImageData.Height)
	assert.Equal(t, 4*1500*1500, len(encoded.ImageData.Data))
}

func TestEncodeRejectsEmptyPayload(t *testing.T) {
	_, err := Encode("")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestEncodeRejectsBadECLevel(t *testing.T) {
	_, err := Encode("hello", WithECLevel(2))
	assert.ErrorIs(t, err, ErrInvalidECLevel)
}

func TestEncodeRejectsTooSmallResolution(t *testing.T) {
	_, err := Encode("hello", WithResolution(10))
	assert.ErrorIs(t, err, ErrResolutionTooSmall)
}

func TestDecodeRejectsTooSmallImage(t *testing.T) {
	_, err := Decode(ImageData{Width: 10, Height: 10, Data: make([]byte, 4*10*10)})
	assert.Error(t, err)
}

func TestWritePNGProducesValidPNG(t *testing.T) {
	encoded, err := Encode("Hello", WithResolution(800))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encoded.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := "Hello World"
	encoded, err := Encode(payload, WithECLevel(ECLevelHigh), WithResolution(1800))
	require.NoError(t, err)

	decoded, err := Decode(encoded.ImageData)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", decoded.Data)
}
