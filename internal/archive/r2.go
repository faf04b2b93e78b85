// Package archive stores original uploads in R2-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/resumecoach/server/internal/config"
)

// R2Archiver uploads résumé files to a Cloudflare R2 bucket through the S3
// API. Keys are namespaced per session so the original document can be
// retrieved later.
type R2Archiver struct {
	client *s3.Client
	bucket string
}

func NewR2(ctx context.Context, cfg config.R2Config) (*R2Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	return &R2Archiver{client: client, bucket: cfg.Bucket}, nil
}

func (a *R2Archiver) Store(ctx context.Context, sessionID uuid.UUID, filename string, data []byte) error {
	key := fmt.Sprintf("resumes/%s/%s", sessionID, path.Base(filename))
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
