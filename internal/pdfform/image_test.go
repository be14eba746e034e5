package pdfform

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/pdfform/pdftest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestEmbedImage(t *testing.T) {
	log := zap.NewNop()
	pngRaw := encodePNG(t, 120, 40)
	jpegRaw := encodeJPEG(t, 60, 60)

	t.Run("png with data URL prefix", func(t *testing.T) {
		payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngRaw)
		img := EmbedImage(payload, log)
		require.NotNil(t, img)
		assert.Equal(t, "png", img.Format)
		assert.Equal(t, 120, img.Width)
		assert.Equal(t, 40, img.Height)
	})

	t.Run("jpeg bare base64", func(t *testing.T) {
		img := EmbedImage(base64.StdEncoding.EncodeToString(jpegRaw), log)
		require.NotNil(t, img)
		assert.Equal(t, "jpeg", img.Format)
		assert.Equal(t, 60, img.Width)
	})

	t.Run("unpadded base64", func(t *testing.T) {
		raw := base64.RawStdEncoding.EncodeToString(pngRaw)
		img := EmbedImage(raw, log)
		require.NotNil(t, img)
		assert.Equal(t, "png", img.Format)
	})

	t.Run("not base64", func(t *testing.T) {
		assert.Nil(t, EmbedImage("!!! not encoded !!!", log))
	})

	t.Run("base64 but not an image", func(t *testing.T) {
		assert.Nil(t, EmbedImage(base64.StdEncoding.EncodeToString([]byte("plain text")), log))
	})

	t.Run("empty payload", func(t *testing.T) {
		assert.Nil(t, EmbedImage("", log))
		assert.Nil(t, EmbedImage("data:image/png;base64,", log))
	})
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH float64
		want       float64
	}{
		{"wide image limited by width", 200, 50, 100, 100, 0.5},
		{"tall image limited by height", 50, 200, 100, 100, 0.5},
		{"upscales small image", 10, 10, 40, 80, 4},
		{"degenerate size", 0, 0, 90, 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &EmbeddedImage{Width: tt.w, Height: tt.h}
			assert.InDelta(t, tt.want, img.fitScale(tt.maxW, tt.maxH), 0.0001)
		})
	}
}

func TestDrawImageAt_NilImageIsNoop(t *testing.T) {
	in := []byte("%PDF-1.4 not even parsed")
	out, err := DrawImageAt(in, nil, []int{1}, 0, 0, 90, 30)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDrawImageAt_StampsFixture(t *testing.T) {
	img := &EmbeddedImage{Data: encodePNG(t, 120, 40), Width: 120, Height: 40, Format: "png"}

	out, err := DrawImageAt(pdftest.FormPDF(), img, []int{pdftest.SignaturePage},
		pdftest.SignatureRectLLX, pdftest.SignatureRectLLY,
		pdftest.SignatureRectURX-pdftest.SignatureRectLLX,
		pdftest.SignatureRectURY-pdftest.SignatureRectLLY)
	require.NoError(t, err)
	require.NotEqual(t, pdftest.FormPDF(), out)

	assert.Equal(t, VerifyImagesPresent, VerifyImagesOnPage(out, pdftest.SignaturePage))
	assert.Equal(t, VerifyNoXObjects, VerifyImagesOnPage(out, 2))
}

func TestDrawTextAt_StampsFixture(t *testing.T) {
	out, err := DrawTextAt(pdftest.FormPDF(), "Jane Q Doe", 1, 120, 610, 12)
	require.NoError(t, err)
	assert.NotEqual(t, pdftest.FormPDF(), out)
}

func TestDrawTextAt_FractionalSizeIsFloored(t *testing.T) {
	// Half-point sizes come out of the overlay fitting search; the stamp
	// descriptor only takes whole points.
	_, err := DrawTextAt(pdftest.FormPDF(), "Jane Q Doe", 1, 120, 610, 12.5)
	assert.NoError(t, err)
}
