// Package resolver applies logical values to PDF form fields through an
// ordered strategy cascade and records one MappingEntry per attempt. The
// audit trail is a first-class output of generation, not a logging side
// effect: operators read it to spot template drift.
package resolver

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/model"
	"github.com/tigagency/contracting-packet/internal/pdfform"
)

// CheckboxMarker is written into plain text fields that stand in for
// checkboxes on older template revisions.
const CheckboxMarker = "X"

// Resolver wraps one loaded form document and accumulates the mapping
// report for a single generation run.
type Resolver struct {
	doc    *pdfform.Document
	log    *zap.Logger
	report []model.MappingEntry
}

// New returns a resolver for doc. One resolver per generation request.
func New(doc *pdfform.Document, logger *zap.Logger) *Resolver {
	return &Resolver{doc: doc, log: logger}
}

// Report returns the mapping entries accumulated so far, in attempt order.
func (r *Resolver) Report() []model.MappingEntry {
	return r.report
}

func (r *Resolver) record(key, value, source string, status model.MappingStatus) {
	r.report = append(r.report, model.MappingEntry{
		PDFFieldKey:     key,
		ValueApplied:    value,
		SourceFormField: source,
		IsBlank:         value == "",
		Status:          status,
	})
}

// SetTextField writes value into the named text field. An absent value is
// recorded skipped and nothing is written; a present value the PDF rejects
// is recorded failed.
func (r *Resolver) SetTextField(name, value, source string) {
	if strings.TrimSpace(value) == "" {
		r.record(name, "", source, model.MappingSkipped)
		return
	}
	if err := r.doc.SetText(name, value); err != nil {
		r.log.Debug("text field set failed",
			zap.String("field", name), zap.String("source", source), zap.Error(err))
		r.record(name, value, source, model.MappingFailed)
		return
	}
	r.record(name, value, source, model.MappingSuccess)
}

// SetCheckbox checks the named checkbox. False is recorded skipped without
// touching the form: the paper form's blank-means-no convention. The name
// is tried as given, lowercased and uppercased; when none of the three is
// an actual checkbox the marker character is written into a text field of
// the same name, since some template revisions use plain text fields for
// checkbox marks.
func (r *Resolver) SetCheckbox(name string, checked bool, source string) {
	if !checked {
		r.record(name, "", source, model.MappingSkipped)
		return
	}

	for _, candidate := range nameVariants(name) {
		err := r.doc.CheckBox(candidate)
		if err == nil {
			r.record(candidate, "checked", source, model.MappingSuccess)
			return
		}
		if !expectedMiss(err) {
			r.log.Debug("checkbox set failed",
				zap.String("field", candidate), zap.Error(err))
		}
	}

	if err := r.doc.SetText(name, CheckboxMarker); err == nil {
		r.record(name, CheckboxMarker, source, model.MappingSuccess)
		return
	}
	r.record(name, "checked", source, model.MappingFailed)
}

// SetRadioValue selects onValue on whichever radio group offers it,
// falling back to writing the literal into a text field named name. The
// scan-everything shape is deliberate: template revisions expose the same
// logical state as differently shaped controls.
func (r *Resolver) SetRadioValue(name, onValue, source string) {
	if group, err := r.doc.SelectRadio(onValue); err == nil {
		r.record(group, onValue, source, model.MappingSuccess)
		return
	}
	if err := r.doc.SetText(name, onValue); err == nil {
		r.record(name, onValue, source, model.MappingSuccess)
		return
	}
	r.record(name, onValue, source, model.MappingFailed)
}

// SetDeterministicCheckbox never skips: an intentional unchecked state is
// as meaningful as a checked one and the audit trail must show a decision
// was captured either way. Only the commission-advancing consent uses this
// path.
func (r *Resolver) SetDeterministicCheckbox(name, onValue string, checked bool, source string) {
	if !checked {
		r.report = append(r.report, model.MappingEntry{
			PDFFieldKey:     name,
			ValueApplied:    "unchecked",
			SourceFormField: source,
			IsBlank:         false,
			Status:          model.MappingSuccess,
		})
		return
	}

	for _, candidate := range nameVariants(name) {
		if err := r.doc.CheckBox(candidate); err == nil {
			r.record(candidate, onValue, source, model.MappingSuccess)
			return
		}
	}
	if err := r.doc.SetText(name, CheckboxMarker); err == nil {
		r.record(name, CheckboxMarker, source, model.MappingSuccess)
		return
	}
	r.record(name, onValue, source, model.MappingFailed)
}

func nameVariants(name string) []string {
	variants := []string{name}
	if lower := strings.ToLower(name); lower != name {
		variants = append(variants, lower)
	}
	if upper := strings.ToUpper(name); upper != name {
		variants = append(variants, upper)
	}
	return variants
}

func expectedMiss(err error) bool {
	return errors.Is(err, pdfform.ErrFieldNotFound) || errors.Is(err, pdfform.ErrWrongKind)
}
