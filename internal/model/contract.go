package model

// MappingStatus is the outcome of one attempted field mapping.
type MappingStatus string

const (
	MappingSuccess MappingStatus = "success"
	MappingFailed  MappingStatus = "failed"
	MappingSkipped MappingStatus = "skipped"
)

// MappingEntry is the audit unit for one attempted PDF field set.
// Every attempt produces exactly one entry: skipped means the source value
// was absent, failed means the PDF rejected a present value.
type MappingEntry struct {
	PDFFieldKey     string        `json:"pdfFieldKey"`
	ValueApplied    string        `json:"valueApplied"`
	SourceFormField string        `json:"sourceFormField"`
	IsBlank         bool          `json:"isBlank"`
	Status          MappingStatus `json:"status"`
}

// LogEntry is one captured debug-log line returned to the caller.
type LogEntry struct {
	Level   string                 `json:"level"`
	Message string                 `json:"msg"`
	Time    string                 `json:"time"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// SignatureField describes one signature-typed field found on the template.
type SignatureField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// GenerateRequest is the invocation contract of the packet generator.
type GenerateRequest struct {
	Application    ApplicationRecord `json:"application"`
	SaveToStorage  bool              `json:"saveToStorage,omitempty"`
	UserID         string            `json:"userId,omitempty"`
	TemplateURL    string            `json:"templateUrl,omitempty"`
	TemplateBase64 string            `json:"templateBase64,omitempty"`
}

// GenerateResult is the success payload.
type GenerateResult struct {
	Success              bool             `json:"success"`
	Filename             string           `json:"filename"`
	PDF                  string           `json:"pdf"`
	Size                 int              `json:"size"`
	StoragePath          *string          `json:"storagePath"`
	FilledTemplate       bool             `json:"filledTemplate"`
	MappingReport        []MappingEntry   `json:"mappingReport"`
	DebugLogs            []LogEntry       `json:"debugLogs"`
	SignatureFieldsFound []SignatureField `json:"signatureFieldsFound"`
}
