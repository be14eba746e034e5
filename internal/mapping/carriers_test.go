package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCarrier(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCheckbox string
		wantMatch    bool
	}{
		{"exact match", "Humana", "fill_5", true},
		{"exact match normalized", "  humana ", "fill_5", true},
		{"exact match punctuation", "Mutual of Omaha", "fill_105", true},
		{"substring match", "Humana Medicare Advantage", "fill_5", true},
		{"multi-word exact", "Aetna Medicare Advantage", "fill_3", true},
		{"long form contains table name", "Transamerica Life Insurance Company", "fill_181", true},
		{"prefix fallback", "Prudent Choice", "fill_173", true},
		{"abbreviation drops", "UHC", "", false},
		{"unknown drops", "Completely Unknown Carrier", "", false},
		{"empty drops", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := MatchCarrier(tt.input)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantCheckbox, c.Checkbox)
			}
		})
	}
}

func TestMatchCarrier_NonResStatesPairing(t *testing.T) {
	humana, ok := MatchCarrier("Humana")
	require.True(t, ok)
	assert.Equal(t, "fill_6", humana.NonResStates)

	aetnaMA, ok := MatchCarrier("Aetna Medicare Advantage")
	require.True(t, ok)
	assert.Equal(t, "fill_4", aetnaMA.NonResStates)
}

func TestCarrierTable_UniqueFields(t *testing.T) {
	seen := make(map[string]string)
	for _, c := range Carriers {
		require.NotEmpty(t, c.Checkbox, "carrier %s has no checkbox", c.Name)
		require.NotEmpty(t, c.NonResStates, "carrier %s has no non-res field", c.Name)
		if prev, dup := seen[c.Checkbox]; dup {
			t.Fatalf("checkbox %s mapped to both %s and %s", c.Checkbox, prev, c.Name)
		}
		seen[c.Checkbox] = c.Name
	}
}

func TestNormalizeCarrier(t *testing.T) {
	assert.Equal(t, "mutualofomaha", normalizeCarrier("Mutual of Omaha"))
	assert.Equal(t, "aignational", normalizeCarrier("A.I.G. - National!"))
	assert.Equal(t, "", normalizeCarrier("  --  "))
}

func TestFirstSignificantWord(t *testing.T) {
	assert.Equal(t, "mutual", firstSignificantWord("The Mutual of Omaha"))
	assert.Equal(t, "humana", firstSignificantWord("Humana Medicare"))
	assert.Equal(t, "", firstSignificantWord("of and the"))
}
