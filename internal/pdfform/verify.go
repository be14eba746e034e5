package pdfform

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Verification outcomes of VerifyImagesOnPage. Informational only: the
// result rides along in the audit trail, it never fails a generation.
const (
	VerifyImagesPresent = "images_present"
	VerifyNoImages      = "no_images"
	VerifyNoXObjects    = "no_xobjects"
	VerifyError         = "verification_error"
)

// VerifyImagesOnPage re-parses produced PDF bytes and checks the given
// 1-based page's resource dictionary for image XObjects. Coarse sanity
// check that drawn signature images survived the save round-trip.
func VerifyImagesOnPage(pdfBytes []byte, page int) string {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return VerifyError
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return VerifyError
	}
	if page < 1 || page > ctx.PageCount {
		return VerifyError
	}

	pageDict, _, inh, err := ctx.PageDict(page, false)
	if err != nil || pageDict == nil {
		return VerifyError
	}

	res := pageDict
	if resObj, found := pageDict.Find("Resources"); found {
		if rd, err := ctx.DereferenceDict(resObj); err == nil && rd != nil {
			res = rd
		}
	} else if inh != nil && inh.Resources != nil {
		res = inh.Resources
	} else {
		return VerifyNoXObjects
	}

	xObj, found := res.Find("XObject")
	if !found {
		return VerifyNoXObjects
	}
	xDict, err := ctx.DereferenceDict(xObj)
	if err != nil || xDict == nil {
		return VerifyNoXObjects
	}

	for _, ref := range xDict {
		sd, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil || sd == nil {
			continue
		}
		subtype := sd.Subtype()
		if subtype == nil {
			continue
		}
		if *subtype == "Image" {
			return VerifyImagesPresent
		}
		// Stamps arrive as Form XObjects carrying the image in their own
		// resource dictionary, one level down.
		if *subtype == "Form" && formHoldsImage(ctx, sd) {
			return VerifyImagesPresent
		}
	}
	return VerifyNoImages
}

func formHoldsImage(ctx *model.Context, form *types.StreamDict) bool {
	resObj, found := form.Dict.Find("Resources")
	if !found {
		return false
	}
	res, err := ctx.DereferenceDict(resObj)
	if err != nil || res == nil {
		return false
	}
	xObj, found := res.Find("XObject")
	if !found {
		return false
	}
	xDict, err := ctx.DereferenceDict(xObj)
	if err != nil || xDict == nil {
		return false
	}
	for _, ref := range xDict {
		sd, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil || sd == nil {
			continue
		}
		if subtype := sd.Subtype(); subtype != nil && *subtype == "Image" {
			return true
		}
	}
	return false
}
