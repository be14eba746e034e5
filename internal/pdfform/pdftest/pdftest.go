// Package pdftest builds a minimal two-page AcroForm PDF used by tests
// across the repository: one text field, one checkbox, one radio group
// with Yes/No kids, and one signature field with a known rectangle.
package pdftest

import (
	"bytes"
	"fmt"
)

// Field names present in the fixture.
const (
	TextFieldName    = "Name of Applicant"
	CheckboxName     = "Check Box31"
	RadioGroupName   = "Q1"
	RadioYesOption   = "Q1_Yes"
	RadioNoOption    = "Q1_No"
	SignatureName    = "Signature of Applicant"
	SignaturePage    = 1
	SignatureRectLLX = 100.0
	SignatureRectLLY = 600.0
	SignatureRectURX = 280.0
	SignatureRectURY = 640.0
)

// FormPDF assembles the fixture with a correct xref table.
func FormPDF() []byte {
	objects := []string{
		// 1: catalog
		"<< /Type /Catalog /Pages 2 0 R /AcroForm 3 0 R >>",
		// 2: page tree
		"<< /Type /Pages /Kids [4 0 R 5 0 R] /Count 2 >>",
		// 3: acroform, DA is required by pdfcpu's stamping validation
		"<< /Fields [6 0 R 7 0 R 8 0 R 11 0 R] /DA (/Helv 0 Tf 0 g) >>",
		// 4: page 1
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Annots [6 0 R 7 0 R 11 0 R] >>",
		// 5: page 2
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Annots [9 0 R 10 0 R] >>",
		// 6: text field, merged widget
		"<< /Type /Annot /Subtype /Widget /FT /Tx /T (" + TextFieldName + ") /Rect [100 700 300 720] /P 4 0 R >>",
		// 7: checkbox, merged widget
		"<< /Type /Annot /Subtype /Widget /FT /Btn /T (" + CheckboxName + ") /Rect [100 650 115 665] /V /Off /AS /Off " +
			"/AP << /N << /Yes 12 0 R /Off 12 0 R >> >> /P 4 0 R >>",
		// 8: radio group parent
		"<< /FT /Btn /Ff 32768 /T (" + RadioGroupName + ") /V /Off /Kids [9 0 R 10 0 R] >>",
		// 9: radio kid Yes
		"<< /Type /Annot /Subtype /Widget /Parent 8 0 R /Rect [100 500 115 515] /AS /Off " +
			"/AP << /N << /" + RadioYesOption + " 12 0 R /Off 12 0 R >> >> /P 5 0 R >>",
		// 10: radio kid No
		"<< /Type /Annot /Subtype /Widget /Parent 8 0 R /Rect [130 500 145 515] /AS /Off " +
			"/AP << /N << /" + RadioNoOption + " 12 0 R /Off 12 0 R >> >> /P 5 0 R >>",
		// 11: signature field, merged widget
		"<< /Type /Annot /Subtype /Widget /FT /Sig /T (" + SignatureName + ") /Rect [100 600 280 640] /P 4 0 R >>",
		// 12: shared empty appearance form XObject
		"<< /Type /XObject /Subtype /Form /BBox [0 0 1 1] /Length 0 >>\nstream\n\nendstream",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}
