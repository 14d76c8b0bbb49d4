package iching

import "github.com/ashokshau/iching/internal/domainerr"

// Sentinel errors returned by Encode and Decode. All of them are plain
// errors.New values (no stack) per spec.md §7. Some internal stages wrap
// them with context via fmt.Errorf("...: %w"), and Encode and Decode
// return those wrapped errors unchanged rather than the bare sentinel;
// callers compare with errors.Is. Every internal stage raises these same
// values via internal/domainerr so identity survives crossing package
// boundaries.
var (
	ErrEmptyPayload       = domainerr.ErrEmptyPayload
	ErrInvalidCharacter   = domainerr.ErrInvalidCharacter
	ErrInvalidECLevel     = domainerr.ErrInvalidECLevel
	ErrPayloadTooBig      = domainerr.ErrPayloadTooBig
	ErrResolutionTooSmall = domainerr.ErrResolutionTooSmall
	ErrInvalidCode        = domainerr.ErrInvalidCode
	ErrNoFinderPatterns   = domainerr.ErrNoFinderPatterns
	ErrNoValidFinders     = domainerr.ErrNoValidFinders
	ErrNotSquare          = domainerr.ErrNotSquare
)
