// Package pdfform wraps a pdfcpu context with the form operations the
// packet generator needs: field lookup by name, text/checkbox/radio value
// setting, widget-rectangle discovery, flattening, and serialization.
package pdfform

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// Sentinel results of field operations. "Not found" and "wrong kind" are
// expected control signals, not failures; callers branch on them.
var (
	ErrFieldNotFound = errors.New("form field not found")
	ErrWrongKind     = errors.New("form field is not of the requested kind")
	ErrNoWidget      = errors.New("form field has no widget annotation")
)

// FieldKind is the resolved kind of one form field.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindCheckbox  FieldKind = "checkbox"
	KindRadio     FieldKind = "radio"
	KindSelect    FieldKind = "select"
	KindSignature FieldKind = "signature"
	KindButton    FieldKind = "button"
	KindUnknown   FieldKind = "unknown"
)

// Rect is a widget rectangle in page space.
type Rect struct {
	LLX, LLY, URX, URY float64
}

func (r Rect) Width() float64  { return r.URX - r.LLX }
func (r Rect) Height() float64 { return r.URY - r.LLY }

// widget is one widget annotation belonging to a field.
type widget struct {
	dict types.Dict
	ref  *types.IndirectRef
}

// Field is one terminal form field with its widgets.
type Field struct {
	Name    string
	Kind    FieldKind
	Options []string // radio/checkbox on-states, in kid order

	dict    types.Dict
	ref     *types.IndirectRef
	widgets []widget
}

// Document is one loaded fillable PDF. It is owned by a single generation
// request and must not be shared across goroutines.
type Document struct {
	ctx    *model.Context
	fields []*Field
	byName map[string]*Field
	pages  int
	log    *zap.Logger
}

// Load parses raw PDF bytes and indexes the AcroForm field tree.
func Load(data []byte, logger *zap.Logger) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	d := &Document{
		ctx:    ctx,
		byName: make(map[string]*Field),
		pages:  ctx.PageCount,
		log:    logger,
	}
	if err := d.indexFields(); err != nil {
		return nil, err
	}
	return d, nil
}

// PageCount returns the number of pages of the loaded document.
func (d *Document) PageCount() int { return d.pages }

// Field looks up a field by its fully qualified name, then by leaf name.
func (d *Document) Field(name string) (*Field, bool) {
	f, ok := d.byName[name]
	return f, ok
}

// Fields returns the indexed fields in document order.
func (d *Document) Fields() []*Field { return d.fields }

// indexFields walks AcroForm.Fields, recursing through non-terminal nodes.
func (d *Document) indexFields() error {
	rootDict, err := d.ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil
	}
	acroFormDict, err := d.ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil
	}
	fieldsArray, err := d.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for _, ref := range fieldsArray {
		if err := d.indexField(ref, ""); err != nil {
			d.log.Debug("skipping unreadable field", zap.Error(err))
		}
	}
	return nil
}

func (d *Document) indexField(obj types.Object, prefix string) error {
	fieldDict, err := d.ctx.DereferenceDict(obj)
	if err != nil {
		return fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return nil
	}

	var ref *types.IndirectRef
	if ir, ok := obj.(types.IndirectRef); ok {
		ref = &ir
	}

	name := ""
	if nameObj, found := fieldDict.Find("T"); found {
		if n, err := d.ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			name = n
		}
	}
	fullName := name
	if prefix != "" && name != "" {
		fullName = prefix + "." + name
	} else if prefix != "" {
		fullName = prefix
	}

	// A node whose kids carry their own T entries is a non-terminal; its
	// kids are fields. Kids without T are widget annotations of this field.
	kidsObj, hasKids := fieldDict.Find("Kids")
	if hasKids {
		kidsArray, err := d.ctx.DereferenceArray(kidsObj)
		if err == nil && len(kidsArray) > 0 {
			if d.kidIsField(kidsArray[0]) {
				for _, kid := range kidsArray {
					if err := d.indexField(kid, fullName); err != nil {
						d.log.Debug("skipping unreadable kid field", zap.Error(err))
					}
				}
				return nil
			}
		}
	}

	f := &Field{
		Name: fullName,
		Kind: d.fieldKind(fieldDict),
		dict: fieldDict,
		ref:  ref,
	}

	if hasKids {
		if kidsArray, err := d.ctx.DereferenceArray(kidsObj); err == nil {
			for _, kid := range kidsArray {
				kd, err := d.ctx.DereferenceDict(kid)
				if err != nil || kd == nil {
					continue
				}
				w := widget{dict: kd}
				if ir, ok := kid.(types.IndirectRef); ok {
					w.ref = &ir
				}
				f.widgets = append(f.widgets, w)
			}
		}
	} else {
		// Merged field/widget dictionary.
		f.widgets = append(f.widgets, widget{dict: fieldDict, ref: ref})
	}

	if f.Kind == KindRadio || f.Kind == KindCheckbox {
		f.Options = d.onStates(f)
	}

	d.fields = append(d.fields, f)
	if f.Name != "" {
		if _, exists := d.byName[f.Name]; !exists {
			d.byName[f.Name] = f
		}
	}
	return nil
}

// kidIsField reports whether a Kids element carries its own T entry.
func (d *Document) kidIsField(obj types.Object) bool {
	kd, err := d.ctx.DereferenceDict(obj)
	if err != nil || kd == nil {
		return false
	}
	_, hasT := kd.Find("T")
	return hasT
}

// fieldKind mirrors the FT/Ff decoding of the AcroForm spec, walking up to
// the parent for inherited FT.
func (d *Document) fieldKind(fieldDict types.Dict) FieldKind {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, ok := fieldDict.Find("Parent"); ok {
			if parentDict, err := d.ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return d.fieldKind(parentDict)
			}
		}
		return KindUnknown
	}

	ftName, err := d.ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return KindUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, ok := fieldDict.Find("Ff"); ok {
			if flags, err := d.ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				v := *flags
				if (v & (1 << 15)) != 0 {
					return KindRadio
				}
				if (v & (1 << 16)) != 0 {
					return KindButton
				}
			}
		}
		return KindCheckbox
	case "Tx":
		return KindText
	case "Ch":
		return KindSelect
	case "Sig":
		return KindSignature
	default:
		return KindUnknown
	}
}

// onStates collects the non-Off appearance states of a button field's
// widgets. These are the values V/AS may take.
func (d *Document) onStates(f *Field) []string {
	var states []string
	seen := make(map[string]bool)
	for _, w := range f.widgets {
		apObj, found := w.dict.Find("AP")
		if !found {
			continue
		}
		apDict, err := d.ctx.DereferenceDict(apObj)
		if err != nil || apDict == nil {
			continue
		}
		for _, key := range []string{"N", "D"} {
			stObj, ok := apDict.Find(key)
			if !ok {
				continue
			}
			stDict, err := d.ctx.DereferenceDict(stObj)
			if err != nil || stDict == nil {
				continue
			}
			for name := range stDict {
				if name != "Off" && !seen[name] {
					seen[name] = true
					states = append(states, name)
				}
			}
		}
	}
	return states
}
