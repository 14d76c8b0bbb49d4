// Package domainerr collects the sentinel errors every pipeline stage can
// raise, one per distinct message spec.md §6 names. Keeping them in one
// leaf package lets every stage (content, render, binarize, locate) and
// the public façade share the same error identity, so callers can
// errors.Is against a stable value no matter which internal stage failed
// — the "single domain error... without a stack" contract of spec.md §7.
package domainerr

import "errors"

var (
	ErrEmptyPayload       = errors.New("Empty payload!")
	ErrInvalidCharacter   = errors.New("Invalid character in payload!")
	ErrInvalidECLevel     = errors.New("Error correction percentage must be a value between 0 - 1!")
	ErrPayloadTooBig      = errors.New("Payload and error correction level combination is too big!")
	ErrResolutionTooSmall = errors.New("Resolution is too small!")
	ErrInvalidCode        = errors.New("Invalid IChing code!")
	ErrNoFinderPatterns   = errors.New("Couldn't Locate Finder Patterns!")
	ErrNoValidFinders     = errors.New("No valid finder patterns found!")
	ErrNotSquare          = errors.New("IChing code must be a square!")
)
