// Package generator drives one contracting-packet generation end to end:
// validation, template acquisition, field resolution across every data
// section, signature compositing, flatten, verification, and the optional
// storage side effect.
package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/logging"
	"github.com/tigagency/contracting-packet/internal/mapping"
	"github.com/tigagency/contracting-packet/internal/model"
	"github.com/tigagency/contracting-packet/internal/pdfform"
	"github.com/tigagency/contracting-packet/internal/pdfform/summary"
	"github.com/tigagency/contracting-packet/internal/resolver"
)

// Fixed footer slot for the repeated initials image. Pages after the first
// carry it; the first page has no initials box.
const (
	initialsFooterX    = 36.0
	initialsFooterY    = 24.0
	initialsFooterMaxW = 90.0
	initialsFooterMaxH = 30.0

	overlayPadding = 4.0

	contentTypePDF = "application/pdf"
)

// ConfigSource supplies the stored field-mapping override. Absence of the
// blob is valid; implementations return (nil, nil).
type ConfigSource interface {
	FieldMappingConfig(ctx context.Context) (*mapping.FieldMappingConfig, error)
}

// DocumentIndex records where the generated packet was stored for a user.
type DocumentIndex interface {
	SetContractingPacketPath(ctx context.Context, userID, path string) error
}

// ObjectStorage accepts the packet bytes at a path.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
}

// ValidationError reports missing mandatory applicant fields. It is
// returned before any PDF work begins.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Generator produces contracting packets. Safe for concurrent use: each
// Generate call owns its document and report exclusively.
type Generator struct {
	httpClient *http.Client
	configs    ConfigSource
	index      DocumentIndex
	uploader   ObjectStorage
	log        *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient replaces the template-fetch client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) { g.httpClient = c }
}

// WithConfigSource wires the stored mapping-override source.
func WithConfigSource(s ConfigSource) Option {
	return func(g *Generator) { g.configs = s }
}

// WithDocumentIndex wires the per-user document index.
func WithDocumentIndex(d DocumentIndex) Option {
	return func(g *Generator) { g.index = d }
}

// WithObjectStorage wires the document bucket.
func WithObjectStorage(s ObjectStorage) Option {
	return func(g *Generator) { g.uploader = s }
}

// New builds a Generator. Collaborators are optional; without them the
// generator still fills and returns packets, it just cannot load stored
// mapping overrides or persist results.
func New(logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		httpClient: http.DefaultClient,
		log:        logger,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// pendingImage is one image draw deferred until after flatten/save.
type pendingImage struct {
	img        *pdfform.EmbeddedImage
	page       int
	x, y, w, h float64
	key        string
	source     string
}

// pendingText is one typed-signature text draw deferred until after
// flatten/save. Drawing after flatten keeps the text above the widget.
type pendingText struct {
	text   string
	page   int
	x, y   float64
	points float64
	key    string
}

// Generate runs the full pipeline for one request.
func (g *Generator) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error) {
	app := &req.Application
	if missing := app.Validate(); len(missing) > 0 {
		return nil, &ValidationError{Details: missing}
	}

	capture := logging.NewCapture()
	log := capture.Wrap(g.log)

	started := time.Now()
	log.Info("generation started", zap.String("applicant", app.FullLegalName))

	var cfg *mapping.FieldMappingConfig
	if g.configs != nil {
		loaded, err := g.configs.FieldMappingConfig(ctx)
		if err != nil {
			log.Warn("stored field mappings unavailable, using defaults", zap.Error(err))
		} else {
			cfg = loaded
		}
	}
	m := mapping.NewMapping(cfg)

	templateBytes := g.acquireTemplate(ctx, req, log)

	var (
		doc    *pdfform.Document
		filled bool
	)
	if templateBytes != nil {
		loaded, err := pdfform.Load(templateBytes, log)
		if err != nil {
			log.Warn("template unreadable, falling back to summary", zap.Error(err))
		} else {
			doc = loaded
			filled = true
		}
	}

	var (
		report     []model.MappingEntry
		sigFields  []model.SignatureField
		pdfBytes   []byte
		verifyPage int
	)

	if filled {
		res := resolver.New(doc, log)
		g.fillSections(res, app, m, log)

		sigFields = doc.SignatureFields()
		images, texts := g.prepareComposites(doc, res, app, m, log)

		doc.Flatten()
		saved, err := doc.Save()
		if err != nil {
			return nil, fmt.Errorf("failed to save filled form: %w", err)
		}
		pdfBytes = saved

		report = res.Report()
		for _, p := range images {
			updated, err := pdfform.DrawImageAt(pdfBytes, p.img, []int{p.page}, p.x, p.y, p.w, p.h)
			entry := model.MappingEntry{
				PDFFieldKey:     p.key,
				ValueApplied:    "image",
				SourceFormField: p.source,
				Status:          model.MappingSuccess,
			}
			if err != nil {
				log.Warn("image draw failed", zap.String("target", p.key), zap.Error(err))
				entry.Status = model.MappingFailed
			} else {
				pdfBytes = updated
				if p.page > verifyPage {
					verifyPage = p.page
				}
			}
			report = append(report, entry)
		}
		for _, p := range texts {
			updated, err := pdfform.DrawTextAt(pdfBytes, p.text, p.page, p.x, p.y, p.points)
			if err != nil {
				log.Warn("typed-signature overlay failed", zap.String("target", p.key), zap.Error(err))
				continue
			}
			pdfBytes = updated
		}
	} else {
		generated, err := summary.Generate(app)
		if err != nil {
			return nil, fmt.Errorf("failed to generate summary PDF: %w", err)
		}
		pdfBytes = generated
	}

	if verifyPage == 0 {
		verifyPage = 1
	}
	status := pdfform.VerifyImagesOnPage(pdfBytes, verifyPage)
	report = append(report, model.MappingEntry{
		PDFFieldKey:     "post_save_verification",
		ValueApplied:    status,
		SourceFormField: "verification",
		Status:          model.MappingSuccess,
	})
	log.Debug("post-save verification", zap.String("status", status), zap.Int("page", verifyPage))

	filename := packetFilename(app.FullLegalName, app.SignatureDate)

	var storagePath *string
	if req.SaveToStorage && req.UserID != "" && g.uploader != nil {
		path := fmt.Sprintf("%s/contracting_packet/%s", req.UserID, filename)
		if err := g.uploader.Upload(ctx, path, pdfBytes, contentTypePDF); err != nil {
			return nil, fmt.Errorf("failed to store packet: %w", err)
		}
		if g.index != nil {
			if err := g.index.SetContractingPacketPath(ctx, req.UserID, path); err != nil {
				return nil, fmt.Errorf("failed to update document index: %w", err)
			}
		}
		storagePath = &path
	}

	log.Info("generation finished",
		zap.Bool("filledTemplate", filled),
		zap.Int("size", len(pdfBytes)),
		zap.Duration("elapsed", time.Since(started)))

	return &model.GenerateResult{
		Success:              true,
		Filename:             filename,
		PDF:                  base64.StdEncoding.EncodeToString(pdfBytes),
		Size:                 len(pdfBytes),
		StoragePath:          storagePath,
		FilledTemplate:       filled,
		MappingReport:        report,
		DebugLogs:            capture.Entries(),
		SignatureFieldsFound: sigFields,
	}, nil
}
