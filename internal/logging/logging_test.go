package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
			assert.NotNil(t, New(level, format))
		}
	}
}

func TestCapture_RecordsWrappedEntries(t *testing.T) {
	capture := NewCapture()
	log := capture.Wrap(zap.NewNop())

	log.Info("generation started", zap.String("applicant", "Jane Q Doe"))
	log.Debug("template fetched", zap.Int("size", 1024))
	log.Warn("carrier dropped")

	entries := capture.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "generation started", entries[0].Message)
	assert.Equal(t, "Jane Q Doe", entries[0].Fields["applicant"])
	assert.NotEmpty(t, entries[0].Time)

	assert.Equal(t, "debug", entries[1].Level)
	assert.EqualValues(t, 1024, entries[1].Fields["size"])

	assert.Equal(t, "warn", entries[2].Level)
	assert.Nil(t, entries[2].Fields)
}

func TestCapture_WithSharesSink(t *testing.T) {
	capture := NewCapture()
	log := capture.Wrap(zap.NewNop())

	child := log.With(zap.String("request_id", "abc"))
	child.Info("child entry")
	log.Info("parent entry")

	entries := capture.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Fields["request_id"])
	assert.Nil(t, entries[1].Fields)
}

func TestCapture_EntriesReturnsCopy(t *testing.T) {
	capture := NewCapture()
	log := capture.Wrap(zap.NewNop())
	log.Info("one")

	first := capture.Entries()
	log.Info("two")

	assert.Len(t, first, 1)
	assert.Len(t, capture.Entries(), 2)
}
