// Package mapping holds the translation layer between logical application
// fields and the literal field names on the contracting-packet template:
// static carrier and legal-question tables, built-in defaults for every
// other category, and the optional database-driven override config.
package mapping

// Category names as they appear in the stored pdf_field_mappings JSON.
const (
	CategoryContactMethods = "contact_methods"
	CategoryGender         = "gender"
	CategoryPersonal       = "personal"
	CategoryAddresses      = "addresses"
	CategoryLicensing      = "licensing"
	CategoryBanking        = "banking"
	CategorySignatures     = "signatures"
	CategoryTraining       = "training"
)

// FieldMappingConfig is the optional stored override, one JSON blob under
// system_config.pdf_field_mappings. Each category maps a logical key to the
// literal PDF field names that should receive the value. Partial override
// is legal: categories or keys left out keep the built-in defaults.
type FieldMappingConfig struct {
	ContactMethods map[string][]string `json:"contact_methods,omitempty"`
	Gender         map[string][]string `json:"gender,omitempty"`
	Personal       map[string][]string `json:"personal,omitempty"`
	Addresses      map[string][]string `json:"addresses,omitempty"`
	Licensing      map[string][]string `json:"licensing,omitempty"`
	Banking        map[string][]string `json:"banking,omitempty"`
	Signatures     map[string][]string `json:"signatures,omitempty"`
	Training       map[string][]string `json:"training,omitempty"`

	// LegalQuestions overrides one static question entry per id:
	// [groupName, yesOption, noOption]. Shorter lists override
	// positionally and keep the static remainder.
	LegalQuestions map[string][]string `json:"legal_questions,omitempty"`

	// Carriers / NonResidentStates override the static carrier table per
	// normalized carrier key.
	Carriers          map[string][]string `json:"carriers,omitempty"`
	NonResidentStates map[string][]string `json:"non_resident_states,omitempty"`
}

// defaults carries the built-in field name for every logical key the
// generator writes outside the static tables. Names are the template's
// literal ones, as irregular as the template itself.
var defaults = map[string]map[string][]string{
	CategoryContactMethods: {
		"email": {"Check Box31"},
		"phone": {"Check Box32"},
		"text":  {"Check Box33"},
		"fax":   {"Check Box34"},
		"mail":  {"Check Box35"},
	},
	CategoryGender: {
		"male":   {"Male"},
		"female": {"Female"},
	},
	CategoryPersonal: {
		"full_legal_name": {"Name of Applicant"},
		"ssn":             {"Social Security"},
		"birth_date":      {"Date of Birth"},
		"birth_city":      {"City of Birth"},
		"birth_state":     {"State of Birth"},
		"home_phone":      {"Home Phone"},
		"cell_phone":      {"Cell Phone"},
		"business_phone":  {"Business Phone"},
		"fax":             {"Fax"},
		"email":           {"Email Address"},
	},
	CategoryAddresses: {
		"home_street":     {"Home Address"},
		"home_city":       {"Home City"},
		"home_state":      {"Home State"},
		"home_zip":        {"Home Zip"},
		"home_county":     {"Home County"},
		"mailing_street":  {"Mailing Address"},
		"mailing_city":    {"Mailing City"},
		"mailing_state":   {"Mailing State"},
		"mailing_zip":     {"Mailing Zip"},
		"ups_street":      {"UPS Address"},
		"ups_city":        {"UPS City"},
		"ups_state":       {"UPS State"},
		"ups_zip":         {"UPS Zip"},
		"previous_street": {"Previous Address"},
		"previous_city":   {"Previous City"},
		"previous_state":  {"Previous State"},
		"previous_zip":    {"Previous Zip"},
	},
	CategoryLicensing: {
		"npn_number":           {"NPN"},
		"license_number":       {"Insurance License"},
		"resident_state":       {"Resident State"},
		"license_expiration":   {"License Expiration"},
		"eo_expiration":        {"EO Expiration"},
		"corporation":          {"Check Box Corp"},
		"commission_advancing": {"Yes_42"},
		"finra":                {"FINRA Registered"},
		"ltc":                  {"LTC Certified"},
	},
	CategoryBanking: {
		"bank_name":      {"Bank Name"},
		"routing_number": {"Routing Number"},
		"account_number": {"Account Number"},
		"checking":       {"Checking"},
		"savings":        {"Savings"},
	},
	CategorySignatures: {
		"signature_name":       {"Printed Name"},
		"signature_date":       {"Date Signed", "Date Signed 2"},
		"signature_initials":   {"Initials"},
		"background_signature": {"Signature of Applicant"},
		"final_signature":      {"Signature3"},
	},
	CategoryTraining: {
		"aml_course":   {"AML Completed"},
		"aml_provider": {"AML Provider"},
	},
}

// Mapping is the merged view of the built-in defaults and one optional
// FieldMappingConfig. Construct once per generation request.
type Mapping struct {
	cfg *FieldMappingConfig
}

// NewMapping merges cfg over the built-in defaults; cfg may be nil.
func NewMapping(cfg *FieldMappingConfig) *Mapping {
	return &Mapping{cfg: cfg}
}

func (m *Mapping) override(category string) map[string][]string {
	if m.cfg == nil {
		return nil
	}
	switch category {
	case CategoryContactMethods:
		return m.cfg.ContactMethods
	case CategoryGender:
		return m.cfg.Gender
	case CategoryPersonal:
		return m.cfg.Personal
	case CategoryAddresses:
		return m.cfg.Addresses
	case CategoryLicensing:
		return m.cfg.Licensing
	case CategoryBanking:
		return m.cfg.Banking
	case CategorySignatures:
		return m.cfg.Signatures
	case CategoryTraining:
		return m.cfg.Training
	}
	return nil
}

// Fields returns every PDF field name mapped to category/key, preferring
// the stored override and falling back to the built-in default.
func (m *Mapping) Fields(category, key string) []string {
	if ov := m.override(category); ov != nil {
		if names, ok := ov[key]; ok && len(names) > 0 {
			return names
		}
	}
	return defaults[category][key]
}

// Field returns the first mapped name for category/key, or "".
func (m *Mapping) Field(category, key string) string {
	names := m.Fields(category, key)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Question resolves the radio-group mapping for one legal question id,
// applying any stored [group, yes, no] override positionally over the
// static entry.
func (m *Mapping) Question(id string) (QuestionMapping, bool) {
	var q QuestionMapping
	found := false
	for _, entry := range Questions {
		if entry.ID == id {
			q = entry
			found = true
			break
		}
	}
	if !found {
		return QuestionMapping{}, false
	}

	if m.cfg != nil {
		if ov, ok := m.cfg.LegalQuestions[id]; ok {
			if len(ov) > 0 && ov[0] != "" {
				q.GroupName = ov[0]
			}
			if len(ov) > 1 && ov[1] != "" {
				q.YesOption = ov[1]
			}
			if len(ov) > 2 && ov[2] != "" {
				q.NoOption = ov[2]
			}
		}
	}
	return q, true
}

// Carrier resolves a free-text carrier name through the fuzzy cascade,
// then applies any stored per-carrier override keyed by the normalized
// table name.
func (m *Mapping) Carrier(name string) (CarrierMapping, bool) {
	c, ok := MatchCarrier(name)
	if !ok {
		return CarrierMapping{}, false
	}
	if m.cfg != nil {
		key := normalizeCarrier(c.Name)
		if ov, found := m.cfg.Carriers[key]; found && len(ov) > 0 && ov[0] != "" {
			c.Checkbox = ov[0]
		}
		if ov, found := m.cfg.NonResidentStates[key]; found && len(ov) > 0 && ov[0] != "" {
			c.NonResStates = ov[0]
		}
	}
	return c, true
}
