package pdfform

import "unicode"

// Typed-signature overlay sizing bounds.
const (
	OverlayMaxFontSize  = 14.0
	OverlayMinFontSize  = 8.0
	overlayFontSizeStep = 0.5
)

// TextWidth approximates the rendered width of s in Helvetica at the given
// point size. Close enough for fitting a name into a signature box; exact
// metrics would need the AFM tables.
func TextWidth(s string, points float64) float64 {
	var units float64
	for _, r := range s {
		switch {
		case r == ' ':
			units += 0.278
		case r == '.' || r == ',' || r == '\'':
			units += 0.25
		case unicode.IsUpper(r):
			units += 0.722
		case unicode.IsDigit(r):
			units += 0.556
		default:
			units += 0.5
		}
	}
	return units * points
}

// FitFontSize searches from 14pt down to 8pt in half-point steps for the
// largest size whose rendered width fits maxWidth. ok is false when even
// the floor size overflows; the caller then draws at the floor anyway or
// skips, per its policy.
func FitFontSize(s string, maxWidth float64) (float64, bool) {
	for size := OverlayMaxFontSize; size >= OverlayMinFontSize; size -= overlayFontSizeStep {
		if TextWidth(s, size) <= maxWidth {
			return size, true
		}
	}
	return OverlayMinFontSize, false
}
