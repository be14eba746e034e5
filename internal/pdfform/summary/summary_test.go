package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigagency/contracting-packet/internal/model"
)

func TestGenerate(t *testing.T) {
	app := &model.ApplicationRecord{
		FullLegalName: "Jane Q Doe",
		Email:         "jane@example.com",
		SignatureName: "Jane Q Doe",
		SignatureDate: "2025-04-15",
		NPNNumber:     "12345678",
		SelectedCarriers: []model.CarrierSelection{
			{CarrierName: "Humana"},
			{CarrierName: "Aetna"},
		},
	}

	data, err := Generate(app)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	assert.Greater(t, len(data), 500)
}

func TestGenerate_MinimalRecord(t *testing.T) {
	data, err := Generate(&model.ApplicationRecord{FullLegalName: "Cher"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
