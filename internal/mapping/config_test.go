package mapping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_Defaults(t *testing.T) {
	m := NewMapping(nil)

	assert.Equal(t, []string{"Name of Applicant"}, m.Fields(CategoryPersonal, "full_legal_name"))
	assert.Equal(t, "Check Box31", m.Field(CategoryContactMethods, "email"))
	assert.Equal(t, []string{"Date Signed", "Date Signed 2"}, m.Fields(CategorySignatures, "signature_date"))
	assert.Equal(t, []string{"Yes_42"}, m.Fields(CategoryLicensing, "commission_advancing"))
	assert.Empty(t, m.Fields(CategoryPersonal, "no_such_key"))
	assert.Equal(t, "", m.Field(CategoryPersonal, "no_such_key"))
}

func TestMapping_PartialOverride(t *testing.T) {
	cfg := &FieldMappingConfig{
		Personal: map[string][]string{
			"full_legal_name": {"Applicant Name 2024"},
		},
	}
	m := NewMapping(cfg)

	// Overridden key.
	assert.Equal(t, []string{"Applicant Name 2024"}, m.Fields(CategoryPersonal, "full_legal_name"))
	// Same category, unmapped key keeps the default.
	assert.Equal(t, []string{"Social Security"}, m.Fields(CategoryPersonal, "ssn"))
	// Untouched category keeps defaults.
	assert.Equal(t, []string{"Check Box32"}, m.Fields(CategoryContactMethods, "phone"))
}

func TestMapping_QuestionOverride(t *testing.T) {
	cfg := &FieldMappingConfig{
		LegalQuestions: map[string][]string{
			"1": {"LegalHistory1", "LH1_Y"},
		},
	}
	m := NewMapping(cfg)

	q, ok := m.Question("1")
	require.True(t, ok)
	assert.Equal(t, "LegalHistory1", q.GroupName)
	assert.Equal(t, "LH1_Y", q.YesOption)
	// Positional override: the no option keeps the static value.
	assert.Equal(t, "Q1_No", q.NoOption)

	// Non-overridden id is fully static.
	q2, ok := m.Question("5a")
	require.True(t, ok)
	assert.Equal(t, "Q5a", q2.GroupName)

	_, ok = m.Question("99")
	assert.False(t, ok)
}

func TestMapping_CarrierOverride(t *testing.T) {
	cfg := &FieldMappingConfig{
		Carriers: map[string][]string{
			"humana": {"Humana Checkbox v2"},
		},
		NonResidentStates: map[string][]string{
			"humana": {"Humana NonRes v2"},
		},
	}
	m := NewMapping(cfg)

	c, ok := m.Carrier("Humana Medicare Advantage")
	require.True(t, ok)
	assert.Equal(t, "Humana Checkbox v2", c.Checkbox)
	assert.Equal(t, "Humana NonRes v2", c.NonResStates)

	// Unmapped carrier keeps static fields.
	aetna, ok := m.Carrier("Aetna")
	require.True(t, ok)
	assert.Equal(t, "fill_1", aetna.Checkbox)
}

func TestFieldMappingConfig_ParsesStoredShape(t *testing.T) {
	raw := `{
		"contact_methods": {"email": ["Check Box31"]},
		"legal_questions": {"5a": ["Grp5a", "Y5a", "N5a"]},
		"carriers": {"aetna": ["cb_aetna"]},
		"non_resident_states": {"aetna": ["nr_aetna"]}
	}`
	var cfg FieldMappingConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	m := NewMapping(&cfg)
	q, ok := m.Question("5a")
	require.True(t, ok)
	assert.Equal(t, "Grp5a", q.GroupName)
	assert.Equal(t, "Y5a", q.YesOption)
	assert.Equal(t, "N5a", q.NoOption)

	c, ok := m.Carrier("Aetna")
	require.True(t, ok)
	assert.Equal(t, "cb_aetna", c.Checkbox)
	assert.Equal(t, "nr_aetna", c.NonResStates)
}
