package iching

import "github.com/ashokshau/iching/internal/content"

// Canonical error-correction presets, plus Version/Offset/MaxSize from
// spec.md §6. Callers may also pass any ecLevel in [0, 1] directly.
const (
	ECLevelNone   = content.ECLevelNone
	ECLevelLow    = content.ECLevelLow
	ECLevelMedium = content.ECLevelMedium
	ECLevelHigh   = content.ECLevelHigh

	Version = content.Version
	Offset  = content.Offset
	MaxSize = content.MaxSize
)
