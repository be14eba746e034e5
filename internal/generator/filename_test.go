package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacketFilename(t *testing.T) {
	tests := []struct {
		name    string
		full    string
		sigDate string
		want    string
	}{
		{"first middle last", "Jane Q Doe", "2025-04-15", "TIG_Contracting_Doe_Jane_20250415.pdf"},
		{"punctuated surname", "Mary-Jo O'Neill", "2025-04-15", "TIG_Contracting_ONeill_MaryJo_20250415.pdf"},
		{"single name", "Cher", "2025-04-15", "TIG_Contracting_Cher_Cher_20250415.pdf"},
		{"empty name", "", "2025-04-15", "TIG_Contracting_Unknown_Unknown_20250415.pdf"},
		{"unparseable date", "Jane Doe", "someday", "TIG_Contracting_Doe_Jane_00000000.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, packetFilename(tt.full, tt.sigDate))
		})
	}
}

func TestCompactDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2025-04-15", "20250415"},
		{"rfc3339", "2025-04-15T10:30:00Z", "20250415"},
		{"us slash", "04/15/2025", "20250415"},
		{"us slash short", "4/5/2025", "20250405"},
		{"iso with trailing time", "2025-04-15 13:22:10", "20250415"},
		{"digits scattered", "signed 2025 04 15 pm", "20250415"},
		{"whitespace padded", "  2025-04-15  ", "20250415"},
		{"hopeless", "garbage", "00000000"},
		{"empty", "", "00000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compactDate(tt.in))
		})
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Q Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("   ")
	assert.Equal(t, "Unknown", first)
	assert.Equal(t, "Unknown", last)
}
