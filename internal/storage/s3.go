// Package storage uploads generated packets to an S3-compatible document
// bucket (AWS S3, MinIO, Supabase storage gateways).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Config carries the connection settings of the document bucket.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Uploader writes objects into the document bucket. Writes are keyed by
// user id, so concurrent generations for different applicants never
// collide; a resubmission simply overwrites (last write wins).
type Uploader struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

// NewUploader builds an uploader for any S3-compatible backend using
// path-style addressing and static credentials.
func NewUploader(cfg Config, logger *zap.Logger) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &Uploader{client: client, bucket: cfg.Bucket, log: logger}, nil
}

// Upload writes data to path in the document bucket with the given content
// type, overwriting any prior object at that path.
func (u *Uploader) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	u.log.Info("object uploaded",
		zap.String("path", path), zap.Int("size", len(data)))
	return nil
}
