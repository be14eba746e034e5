package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewUploader(t *testing.T) {
	valid := Config{
		Endpoint:  "minio.internal:9000",
		Bucket:    "documents",
		AccessKey: "ak",
		SecretKey: "sk",
	}

	t.Run("valid config", func(t *testing.T) {
		u, err := NewUploader(valid, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "documents", u.bucket)
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := valid
		cfg.Bucket = ""
		_, err := NewUploader(cfg, zap.NewNop())
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := valid
		cfg.SecretKey = ""
		_, err := NewUploader(cfg, zap.NewNop())
		assert.ErrorContains(t, err, "credentials are required")
	})

	t.Run("no endpoint uses AWS proper", func(t *testing.T) {
		cfg := valid
		cfg.Endpoint = ""
		cfg.Region = "us-west-2"
		_, err := NewUploader(cfg, zap.NewNop())
		assert.NoError(t, err)
	})
}
