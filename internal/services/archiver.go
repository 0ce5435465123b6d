package services

import (
	"bytes"
	"context"
	"encoding/json"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"adcopy/internal/config"
)

// AdArchiver writes a JSON snapshot of each generation record to S3. It is a
// best-effort side channel next to the database write; callers log and drop
// its errors.
type AdArchiver struct {
	client *s3.Client
	bucket string
}

// NewAdArchiver returns nil when no bucket is configured.
func NewAdArchiver(s3cfg *config.S3Config) *AdArchiver {
	if s3cfg == nil || s3cfg.Bucket == "" {
		return nil
	}
	return &AdArchiver{client: s3cfg.Client, bucket: s3cfg.Bucket}
}

func (a *AdArchiver) Archive(ctx context.Context, requestID string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	uploader := manager.NewUploader(a.client)
	key := path.Join("ads", requestID+".json")
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}
