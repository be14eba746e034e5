package pdfform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigagency/contracting-packet/internal/pdfform/pdftest"
)

func TestVerifyImagesOnPage(t *testing.T) {
	fixture := pdftest.FormPDF()

	t.Run("fixture has no xobjects", func(t *testing.T) {
		assert.Equal(t, VerifyNoXObjects, VerifyImagesOnPage(fixture, 1))
	})

	t.Run("page out of range", func(t *testing.T) {
		assert.Equal(t, VerifyError, VerifyImagesOnPage(fixture, 99))
		assert.Equal(t, VerifyError, VerifyImagesOnPage(fixture, 0))
	})

	t.Run("unparseable bytes", func(t *testing.T) {
		assert.Equal(t, VerifyError, VerifyImagesOnPage([]byte("not a pdf"), 1))
	})
}
