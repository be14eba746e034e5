package pdfform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// EmbeddedImage is a decoded signature or initials image ready to draw.
type EmbeddedImage struct {
	Data   []byte
	Width  int
	Height int
	Format string // "png" or "jpeg"
}

// EmbedImage strips an optional data-URL prefix, base64-decodes the
// payload and probes it as PNG, retrying as JPEG. A payload that decodes
// as neither returns nil; the caller treats that like a missing image.
func EmbedImage(dataURL string, logger *zap.Logger) *EmbeddedImage {
	payload := dataURL
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		logger.Warn("image payload is not valid base64", zap.Error(err))
		return nil
	}

	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		return &EmbeddedImage{Data: data, Width: cfg.Width, Height: cfg.Height, Format: "png"}
	}
	if cfg, err := jpeg.DecodeConfig(bytes.NewReader(data)); err == nil {
		return &EmbeddedImage{Data: data, Width: cfg.Width, Height: cfg.Height, Format: "jpeg"}
	}

	logger.Warn("image payload is neither PNG nor JPEG, skipping")
	return nil
}

// fitScale preserves aspect ratio while fitting the image into maxW x maxH.
func (img *EmbeddedImage) fitScale(maxW, maxH float64) float64 {
	if img.Width <= 0 || img.Height <= 0 {
		return 1
	}
	sw := maxW / float64(img.Width)
	sh := maxH / float64(img.Height)
	if sw < sh {
		return sw
	}
	return sh
}

// DrawImageAt stamps img onto the given 1-based pages of pdfBytes, scaled
// to fit the maxW x maxH box whose lower-left corner sits at page
// coordinates (x, y), and centered inside it. Returns the updated bytes; on
// failure the input bytes come back unchanged with the error.
func DrawImageAt(pdfBytes []byte, img *EmbeddedImage, pages []int, x, y, maxW, maxH float64) ([]byte, error) {
	if img == nil {
		return pdfBytes, nil
	}
	scale := img.fitScale(maxW, maxH)
	x += (maxW - float64(img.Width)*scale) / 2
	y += (maxH - float64(img.Height)*scale) / 2
	desc := fmt.Sprintf("pos:bl, off:%.2f %.2f, scale:%.4f abs, rot:0, op:1", x, y, scale)

	wm, err := api.ImageWatermarkForReader(bytes.NewReader(img.Data), desc, true, false, types.POINTS)
	if err != nil {
		return pdfBytes, fmt.Errorf("failed to build image stamp: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdfBytes), &buf, pageSelection(pages), wm, conf); err != nil {
		return pdfBytes, fmt.Errorf("failed to stamp image: %w", err)
	}
	return buf.Bytes(), nil
}

// DrawTextAt stamps a line of text at page coordinates, used for the
// typed-signature overlay after flattening. The point size is floored to a
// whole number: pdfcpu's descriptor parser only accepts integer sizes.
func DrawTextAt(pdfBytes []byte, text string, page int, x, y, points float64) ([]byte, error) {
	desc := fmt.Sprintf("font:Helvetica, points:%d, pos:bl, off:%.2f %.2f, fillcol:#000000, scale:1 abs, rot:0, op:1", int(points), x, y)

	wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
	if err != nil {
		return pdfBytes, fmt.Errorf("failed to build text stamp: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdfBytes), &buf, pageSelection([]int{page}), wm, conf); err != nil {
		return pdfBytes, fmt.Errorf("failed to stamp text: %w", err)
	}
	return buf.Bytes(), nil
}

func pageSelection(pages []int) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, strconv.Itoa(p))
	}
	return out
}
