package model

import "strings"

// requiredFields are checked before any PDF work begins.
var requiredFields = []struct {
	value   func(*ApplicationRecord) string
	message string
}{
	{func(a *ApplicationRecord) string { return a.SignatureInitials }, "Signature initials are required"},
	{func(a *ApplicationRecord) string { return a.SignatureDate }, "Signature date is required"},
	{func(a *ApplicationRecord) string { return a.SignatureName }, "Signature name is required"},
	{func(a *ApplicationRecord) string { return a.FullLegalName }, "Full legal name is required"},
}

// Validate returns one human-readable message per missing mandatory field.
// An empty slice means the record may proceed to generation.
func (a *ApplicationRecord) Validate() []string {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(a)) == "" {
			missing = append(missing, f.message)
		}
	}
	return missing
}
