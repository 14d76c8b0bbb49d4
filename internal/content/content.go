// Package content implements the IChing content encoder and decoder:
// alphabet mapping, square-size selection, parity rounding, and the
// Reed-Solomon call that ties the payload to a row-major code matrix
// (spec.md §4.5 and §4.11). It follows the teacher's (ashokshau/qrcode)
// habit of a single exported constructor doing capacity selection before
// touching the Reed-Solomon layer, generalised from QR's version table to
// spec.md's closed-form size rule.
package content

import (
	"fmt"
	"math"
	"strings"

	"github.com/ashokshau/iching/internal/domainerr"
	"github.com/ashokshau/iching/internal/gf"
	"github.com/ashokshau/iching/internal/reedsolomon"
)

// Parameters fixed by spec.md §4.5/§6.
const (
	Version         = 1
	MaxSize         = 64
	Offset          = 2
	SymbolsPerError = 2
)

// Canonical ecLevel presets; callers may also pass any value in [0, 1].
const (
	ECLevelNone    = 0.0
	ECLevelLow     = 0.05
	ECLevelMedium  = 0.15
	ECLevelHigh    = 0.25
)

var field = gf.Shared()
var encoder = reedsolomon.NewEncoder(field)

// Code is the row-major code matrix produced by Encode and consumed by
// Decode, mirroring spec.md's EncodedIChing.
type Code struct {
	Version int
	Size    int
	Data    []int
}

// Encode maps payload through the alphabet, selects the smallest square
// size that fits payload+parity, and appends Reed-Solomon parity symbols.
func Encode(payload string, ecLevel float64) (*Code, error) {
	if len(payload) == 0 {
		return nil, domainerr.ErrEmptyPayload
	}
	if ecLevel < 0 || ecLevel > 1 {
		return nil, domainerr.ErrInvalidECLevel
	}

	upper := strings.ToUpper(payload)
	payloadLen := len(upper)

	parity := SymbolsPerError * int(math.Ceil(ecLevel*float64(payloadLen)))
	minSize := Offset + payloadLen + parity
	if minSize > MaxSize {
		return nil, fmt.Errorf("content: %w (minSize=%d)", domainerr.ErrPayloadTooBig, minSize)
	}

	size := 1
	for size*size < minSize {
		size++
	}
	total := size * size
	slack := total - minSize
	parity += slack &^ 1 // round the slack down to even, fold it into parity

	dataLen := total - parity
	data := make([]int, dataLen)
	data[0] = Version
	data[1] = payloadLen
	for i := 0; i < payloadLen; i++ {
		idx, ok := alphabetIndex(upper[i])
		if !ok {
			return nil, fmt.Errorf("content: %w (%q)", domainerr.ErrInvalidCharacter, upper[i])
		}
		data[Offset+i] = idx
	}
	// data[Offset+payloadLen:] is already zero-padded by make().

	encoded := encoder.Encode(data, parity)
	return &Code{Version: Version, Size: size, Data: encoded}, nil
}

// Decode validates an extracted code's metadata, runs Reed-Solomon
// correction over the tail, and maps the corrected codewords back to
// characters, per spec.md §4.11.
func Decode(version, size int, data []int) (string, error) {
	if size*size != len(data) {
		return "", domainerr.ErrNotSquare
	}
	if len(data) < Offset || version != Version {
		return "", fmt.Errorf("content: %w (bad version/metadata)", domainerr.ErrInvalidCode)
	}
	payloadLen := data[1]
	if payloadLen < 1 || payloadLen > len(data)-Offset {
		return "", fmt.Errorf("content: %w (bad payload length %d)", domainerr.ErrInvalidCode, payloadLen)
	}

	parity := (len(data) - Offset - payloadLen) &^ 1

	corrected := make([]int, len(data))
	copy(corrected, data)
	if parity > 0 {
		decoder := reedsolomon.NewDecoder(field)
		if _, err := decoder.Decode(corrected, parity); err != nil {
			return "", fmt.Errorf("content: %w: %v", domainerr.ErrInvalidCode, err)
		}
	}

	// Correction must never touch the metadata bytes; if it did, the
	// codeword was not a genuine member of this code (catches all-zero
	// forced corrections per spec.md §4.11 step 4).
	if corrected[0] != data[0] || corrected[1] != data[1] {
		return "", fmt.Errorf("content: %w (metadata mutated by correction)", domainerr.ErrInvalidCode)
	}

	chars := make([]byte, payloadLen)
	for i := 0; i < payloadLen; i++ {
		symbol := corrected[Offset+i]
		if symbol < 0 || symbol >= gf.Size {
			return "", fmt.Errorf("content: %w (symbol %d outside alphabet)", domainerr.ErrInvalidCode, symbol)
		}
		chars[i] = alphabetChar(symbol)
	}
	return string(chars), nil
}
