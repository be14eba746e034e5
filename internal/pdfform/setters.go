package pdfform

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/model"
)

// SetText writes value into the named text field. The value lands in V;
// NeedAppearances makes viewers regenerate the appearance stream.
func (d *Document) SetText(name, value string) error {
	f, ok := d.Field(name)
	if !ok {
		return ErrFieldNotFound
	}
	if f.Kind != KindText {
		return ErrWrongKind
	}
	f.dict["V"] = types.StringLiteral(value)
	delete(f.dict, "AP")
	d.markNeedAppearances()
	return nil
}

// CheckBox switches the named checkbox to its on state.
func (d *Document) CheckBox(name string) error {
	f, ok := d.Field(name)
	if !ok {
		return ErrFieldNotFound
	}
	if f.Kind != KindCheckbox {
		return ErrWrongKind
	}

	on := "Yes"
	if len(f.Options) > 0 {
		on = f.Options[0]
	}
	f.dict["V"] = types.Name(on)
	for _, w := range f.widgets {
		w.dict["AS"] = types.Name(on)
	}
	d.markNeedAppearances()
	return nil
}

// SelectRadio scans every radio group for one whose on-states include
// onValue and selects it, returning the group's name. The scan-all shape is
// deliberate: differently shaped template revisions expose the same logical
// state under different group names.
func (d *Document) SelectRadio(onValue string) (string, error) {
	for _, f := range d.fields {
		if f.Kind != KindRadio {
			continue
		}
		if !containsOption(f.Options, onValue) {
			continue
		}
		f.dict["V"] = types.Name(onValue)
		for _, w := range f.widgets {
			if d.widgetHasState(w, onValue) {
				w.dict["AS"] = types.Name(onValue)
			} else {
				w.dict["AS"] = types.Name("Off")
			}
		}
		d.markNeedAppearances()
		return f.Name, nil
	}
	return "", ErrFieldNotFound
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func (d *Document) widgetHasState(w widget, state string) bool {
	apObj, found := w.dict.Find("AP")
	if !found {
		return false
	}
	apDict, err := d.ctx.DereferenceDict(apObj)
	if err != nil || apDict == nil {
		return false
	}
	nObj, ok := apDict.Find("N")
	if !ok {
		return false
	}
	nDict, err := d.ctx.DereferenceDict(nObj)
	if err != nil || nDict == nil {
		return false
	}
	_, has := nDict.Find(state)
	return has
}

func (d *Document) markNeedAppearances() {
	rootDict, err := d.ctx.Catalog()
	if err != nil {
		return
	}
	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return
	}
	acroFormDict, err := d.ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return
	}
	acroFormDict["NeedAppearances"] = types.Boolean(true)
}

// WidgetRect returns the first widget rectangle of the named field and the
// 1-based page that owns the widget. Page ownership is resolved by scanning
// each page's annotation list for the widget reference.
func (d *Document) WidgetRect(name string) (Rect, int, error) {
	f, ok := d.Field(name)
	if !ok {
		return Rect{}, 0, ErrFieldNotFound
	}
	if len(f.widgets) == 0 {
		return Rect{}, 0, ErrNoWidget
	}
	w := f.widgets[0]

	rectObj, found := w.dict.Find("Rect")
	if !found {
		return Rect{}, 0, ErrNoWidget
	}
	rectArray, err := d.ctx.DereferenceArray(rectObj)
	if err != nil || len(rectArray) != 4 {
		return Rect{}, 0, ErrNoWidget
	}
	coords := make([]float64, 4)
	for i, c := range rectArray {
		if v, err := d.ctx.DereferenceNumber(c); err == nil {
			coords[i] = v
		}
	}
	r := Rect{LLX: coords[0], LLY: coords[1], URX: coords[2], URY: coords[3]}

	page := d.pageOfWidget(w.ref)
	if page == 0 && f.ref != nil {
		page = d.pageOfWidget(f.ref)
	}
	if page == 0 {
		page = 1
	}
	return r, page, nil
}

// pageOfWidget finds which page's Annots array holds ref. Linear in
// pages x annotations, fine at this document's scale.
func (d *Document) pageOfWidget(ref *types.IndirectRef) int {
	if ref == nil {
		return 0
	}
	for page := 1; page <= d.pages; page++ {
		pageDict, _, _, err := d.ctx.PageDict(page, false)
		if err != nil || pageDict == nil {
			continue
		}
		annotsObj, found := pageDict.Find("Annots")
		if !found {
			continue
		}
		annots, err := d.ctx.DereferenceArray(annotsObj)
		if err != nil {
			continue
		}
		for _, a := range annots {
			if ir, ok := a.(types.IndirectRef); ok {
				if ir.ObjectNumber == ref.ObjectNumber {
					return page
				}
			}
		}
	}
	return 0
}

// SignatureFields lists every field typed /Sig plus text fields whose name
// marks them as signature boxes.
func (d *Document) SignatureFields() []model.SignatureField {
	var out []model.SignatureField
	for _, f := range d.fields {
		if f.Kind == KindSignature || isSignatureName(f.Name) {
			out = append(out, model.SignatureField{Name: f.Name, Type: string(f.Kind)})
		}
	}
	return out
}

func isSignatureName(name string) bool {
	lower := bytes.ToLower([]byte(name))
	return bytes.Contains(lower, []byte("signature"))
}

// Flatten locks every field read-only so the filled values can no longer
// change, and leaves NeedAppearances set so values render everywhere.
func (d *Document) Flatten() {
	for _, f := range d.fields {
		flags := 0
		if flagsObj, found := f.dict.Find("Ff"); found {
			if v, err := d.ctx.DereferenceInteger(flagsObj); err == nil && v != nil {
				flags = int(*v)
			}
		}
		f.dict["Ff"] = types.Integer(flags | 1)
	}
	d.markNeedAppearances()
	d.log.Debug("form flattened", zap.Int("fields", len(d.fields)))
}

// Save serializes the document.
func (d *Document) Save() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}
