package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/mapping"
	"github.com/tigagency/contracting-packet/internal/model"
	"github.com/tigagency/contracting-packet/internal/pdfform/pdftest"
)

// errTransport fails every request, simulating unreachable template hosts.
type errTransport struct{}

func (errTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func offlineClient() *http.Client {
	return &http.Client{Transport: errTransport{}}
}

func validApplication() model.ApplicationRecord {
	return model.ApplicationRecord{
		FullLegalName:     "Jane Q Doe",
		SignatureName:     "Jane Q Doe",
		SignatureInitials: "JQD",
		SignatureDate:     "2025-04-15",
	}
}

func signaturePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	for x := 0; x < 120; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func findEntry(report []model.MappingEntry, key string) (model.MappingEntry, bool) {
	for _, e := range report {
		if e.PDFFieldKey == key {
			return e, true
		}
	}
	return model.MappingEntry{}, false
}

func TestGenerate_ValidationFailure(t *testing.T) {
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()))

	_, err := g.Generate(context.Background(), &model.GenerateRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Details, 4)
	assert.Contains(t, verr.Details, "Full legal name is required")
	assert.Contains(t, verr.Details, "Signature date is required")
}

func TestGenerate_SummaryFallbackWhenTemplateUnreachable(t *testing.T) {
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()))

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application: validApplication(),
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.FilledTemplate)
	assert.Equal(t, "TIG_Contracting_Doe_Jane_20250415.pdf", res.Filename)

	raw, err := base64.StdEncoding.DecodeString(res.PDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
	assert.Equal(t, len(raw), res.Size)

	_, found := findEntry(res.MappingReport, "post_save_verification")
	assert.True(t, found)
	assert.NotEmpty(t, res.DebugLogs)
	assert.Nil(t, res.StoragePath)
}

func TestGenerate_FillsInlinedTemplate(t *testing.T) {
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()))

	yes := true
	app := validApplication()
	app.Email = "jane@example.com"
	app.PreferredContactMethods = []string{"email"}
	app.LegalQuestions = map[string]model.LegalAnswer{
		"1": {Answer: &yes, Explanation: "disclosed"},
	}

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application:    app,
		TemplateBase64: base64.StdEncoding.EncodeToString(pdftest.FormPDF()),
	})
	require.NoError(t, err)
	assert.True(t, res.FilledTemplate)

	require.NotEmpty(t, res.SignatureFieldsFound)
	assert.Equal(t, pdftest.SignatureName, res.SignatureFieldsFound[0].Name)

	nameEntry, found := findEntry(res.MappingReport, pdftest.TextFieldName)
	require.True(t, found)
	assert.Equal(t, model.MappingSuccess, nameEntry.Status)
	assert.Equal(t, "Jane Q Doe", nameEntry.ValueApplied)

	emailBox, found := findEntry(res.MappingReport, pdftest.CheckboxName)
	require.True(t, found)
	assert.Equal(t, model.MappingSuccess, emailBox.Status)
	assert.Equal(t, "checked", emailBox.ValueApplied)

	q1, found := findEntry(res.MappingReport, pdftest.RadioGroupName)
	require.True(t, found)
	assert.Equal(t, model.MappingSuccess, q1.Status)
	assert.Equal(t, pdftest.RadioYesOption, q1.ValueApplied)

	// Declined commission advancing is a captured decision, never a skip.
	advancing, found := findEntry(res.MappingReport, "Yes_42")
	require.True(t, found)
	assert.Equal(t, model.MappingSuccess, advancing.Status)
	assert.Equal(t, "unchecked", advancing.ValueApplied)
}

func TestGenerate_DrawsSignatureImage(t *testing.T) {
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()))

	app := validApplication()
	app.UploadedDocuments = map[string]string{
		"background_signature_image": signaturePNG(t),
	}

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application:    app,
		TemplateBase64: base64.StdEncoding.EncodeToString(pdftest.FormPDF()),
	})
	require.NoError(t, err)
	require.True(t, res.FilledTemplate)

	drawn, found := findEntry(res.MappingReport, pdftest.SignatureName)
	require.True(t, found)
	assert.Equal(t, model.MappingSuccess, drawn.Status)
	assert.Equal(t, "image", drawn.ValueApplied)
	assert.Equal(t, "background_signature_image", drawn.SourceFormField)

	verified, found := findEntry(res.MappingReport, "post_save_verification")
	require.True(t, found)
	assert.Equal(t, "images_present", verified.ValueApplied)
}

type memStorage struct {
	path        string
	contentType string
	size        int
	err         error
}

func (m *memStorage) Upload(_ context.Context, path string, data []byte, contentType string) error {
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.contentType = contentType
	m.size = len(data)
	return nil
}

type memIndex struct {
	userID, path string
}

func (m *memIndex) SetContractingPacketPath(_ context.Context, userID, path string) error {
	m.userID = userID
	m.path = path
	return nil
}

func TestGenerate_StoresPacket(t *testing.T) {
	store := &memStorage{}
	index := &memIndex{}
	g := New(zap.NewNop(),
		WithHTTPClient(offlineClient()),
		WithObjectStorage(store),
		WithDocumentIndex(index),
	)

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application:   validApplication(),
		SaveToStorage: true,
		UserID:        "user-7",
	})
	require.NoError(t, err)

	wantPath := "user-7/contracting_packet/" + res.Filename
	require.NotNil(t, res.StoragePath)
	assert.Equal(t, wantPath, *res.StoragePath)
	assert.Equal(t, wantPath, store.path)
	assert.Equal(t, contentTypePDF, store.contentType)
	assert.Equal(t, res.Size, store.size)
	assert.Equal(t, "user-7", index.userID)
	assert.Equal(t, wantPath, index.path)
}

func TestGenerate_UploadFailureIsFatal(t *testing.T) {
	store := &memStorage{err: errors.New("bucket gone")}
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()), WithObjectStorage(store))

	_, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application:   validApplication(),
		SaveToStorage: true,
		UserID:        "user-7",
	})
	assert.ErrorContains(t, err, "failed to store packet")
}

func TestGenerate_SkipsStorageWithoutUserID(t *testing.T) {
	store := &memStorage{}
	g := New(zap.NewNop(), WithHTTPClient(offlineClient()), WithObjectStorage(store))

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application:   validApplication(),
		SaveToStorage: true,
	})
	require.NoError(t, err)
	assert.Nil(t, res.StoragePath)
	assert.Empty(t, store.path)
}

type failingConfigSource struct{}

func (failingConfigSource) FieldMappingConfig(context.Context) (*mapping.FieldMappingConfig, error) {
	return nil, errors.New("db down")
}

func TestGenerate_ConfigFailureFallsBackToDefaults(t *testing.T) {
	g := New(zap.NewNop(),
		WithHTTPClient(offlineClient()),
		WithConfigSource(failingConfigSource{}),
	)

	res, err := g.Generate(context.Background(), &model.GenerateRequest{
		Application: validApplication(),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}
