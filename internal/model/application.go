// Package model holds the contracting application record and the
// request/response shapes of the packet generator.
package model

// Address is one of the four address blocks on the contracting form.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
	County string `json:"county,omitempty"`
}

// LegalAnswer is the stored answer for one legal-history question.
// Answer is nil while the applicant has not answered yet.
type LegalAnswer struct {
	Answer      *bool  `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// CarrierSelection is one carrier the applicant requested contracting with.
// CarrierName is free text entered upstream and may drift from the static
// carrier table.
type CarrierSelection struct {
	CarrierID         string   `json:"carrier_id,omitempty"`
	CarrierName       string   `json:"carrier_name"`
	NonResidentStates []string `json:"non_resident_states,omitempty"`
}

// ApplicationRecord is the full data-entry record consumed by the generator.
// It is request-scoped and never mutated here.
type ApplicationRecord struct {
	FullLegalName string `json:"full_legal_name"`
	Gender        string `json:"gender,omitempty"`
	BirthDate     string `json:"birth_date,omitempty"`
	BirthCity     string `json:"birth_city,omitempty"`
	BirthState    string `json:"birth_state,omitempty"`
	SSN           string `json:"ssn,omitempty"`

	NPNNumber              string `json:"npn_number,omitempty"`
	InsuranceLicenseNumber string `json:"insurance_license_number,omitempty"`
	ResidentState          string `json:"resident_state,omitempty"`
	LicenseExpiration      string `json:"license_expiration,omitempty"`
	EOExpiration           string `json:"eo_expiration,omitempty"`

	HomeAddress     Address `json:"home_address,omitempty"`
	MailingAddress  Address `json:"mailing_address,omitempty"`
	UPSAddress      Address `json:"ups_address,omitempty"`
	PreviousAddress Address `json:"previous_address,omitempty"`

	HomePhone               string   `json:"home_phone,omitempty"`
	CellPhone               string   `json:"cell_phone,omitempty"`
	BusinessPhone           string   `json:"business_phone,omitempty"`
	Fax                     string   `json:"fax,omitempty"`
	Email                   string   `json:"email,omitempty"`
	PreferredContactMethods []string `json:"preferred_contact_methods,omitempty"`

	LegalQuestions map[string]LegalAnswer `json:"legal_questions,omitempty"`

	BankName          string `json:"bank_name,omitempty"`
	BankRoutingNumber string `json:"bank_routing_number,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankAccountType   string `json:"bank_account_type,omitempty"`

	SelectedCarriers []CarrierSelection `json:"selected_carriers,omitempty"`

	IsCorporation                 bool   `json:"is_corporation,omitempty"`
	RequestingCommissionAdvancing bool   `json:"requesting_commission_advancing,omitempty"`
	HasLTCCertification           bool   `json:"has_ltc_certification,omitempty"`
	IsFINRARegistered             bool   `json:"is_finra_registered,omitempty"`
	HasAMLCourse                  bool   `json:"has_aml_course,omitempty"`
	AMLProvider                   string `json:"aml_provider,omitempty"`

	SignatureName     string `json:"signature_name"`
	SignatureInitials string `json:"signature_initials"`
	SignatureDate     string `json:"signature_date"`

	// UploadedDocuments holds base64 image payloads keyed by role:
	// initials_image, background_signature_image/background_signature,
	// signature_image/final_signature.
	UploadedDocuments map[string]string `json:"uploaded_documents,omitempty"`
}

// UploadedDocument returns the first non-empty payload among keys.
func (a *ApplicationRecord) UploadedDocument(keys ...string) string {
	for _, k := range keys {
		if v := a.UploadedDocuments[k]; v != "" {
			return v
		}
	}
	return ""
}

// HasContactMethod reports whether the applicant selected the given
// preferred contact method (case-insensitive comparison is the caller's
// job; upstream stores canonical lowercase values).
func (a *ApplicationRecord) HasContactMethod(method string) bool {
	for _, m := range a.PreferredContactMethods {
		if m == method {
			return true
		}
	}
	return false
}
