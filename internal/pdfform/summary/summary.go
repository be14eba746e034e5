// Package summary generates the from-scratch one-page packet used when the
// fillable template cannot be acquired from any source. It never touches
// the network, so it is the terminal fallback that always succeeds.
package summary

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/tigagency/contracting-packet/internal/model"
)

// Generate renders a single-page summary of the applicant with a notice
// that the fillable template was unavailable.
func Generate(app *model.ApplicationRecord) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(54, 54, 54)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(marginL+6, marginT+5)
	pdf.CellFormat(contentW-12, 18, "TIG CONTRACTING PACKET", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 40

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginL, y)
	pdf.MultiCell(contentW, 14,
		"NOTICE: The fillable contracting template could not be retrieved. "+
			"This summary page records the submission; the packet must be "+
			"regenerated once the template is reachable.", "1", "L", false)
	y = pdf.GetY() + 16

	row := func(label, value string) {
		pdf.SetXY(marginL, y)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(140, 16, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-140, 16, value, "", 1, "L", false, 0, "")
		y += 16
	}

	row("Applicant", app.FullLegalName)
	row("Email", app.Email)
	row("Signature date", app.SignatureDate)
	row("Signed by", app.SignatureName)
	if app.NPNNumber != "" {
		row("NPN", app.NPNNumber)
	}
	if len(app.SelectedCarriers) > 0 {
		names := ""
		for i, c := range app.SelectedCarriers {
			if i > 0 {
				names += ", "
			}
			names += c.CarrierName
		}
		row("Carriers requested", names)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary PDF: %w", err)
	}
	return buf.Bytes(), nil
}
