package generator

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// dateLayouts are the signature_date shapes data entry produces.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// packetFilename builds TIG_Contracting_<Last>_<First>_<YYYYMMDD>.pdf. The
// date comes from signature_date, not wall-clock time, so the name stays
// stable under timezone shifts.
func packetFilename(fullLegalName, signatureDate string) string {
	first, last := splitName(fullLegalName)
	return fmt.Sprintf("TIG_Contracting_%s_%s_%s.pdf",
		sanitizeNamePart(last), sanitizeNamePart(first), compactDate(signatureDate))
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return "Unknown", "Unknown"
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], parts[len(parts)-1]
	}
}

func sanitizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}

// compactDate renders signature_date as YYYYMMDD, falling back to the
// digits of the raw string when no known layout parses.
func compactDate(signatureDate string) string {
	s := strings.TrimSpace(signatureDate)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("20060102")
		}
	}
	// RFC3339 with trailing detail data entry sometimes appends.
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("20060102")
		}
	}
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() >= 8 {
		return digits.String()[:8]
	}
	return "00000000"
}
