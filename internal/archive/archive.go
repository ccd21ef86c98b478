// Package archive keeps a copy of uploaded import files in object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Archiver stores a raw upload and returns its object key.
type Archiver interface {
	Archive(ctx context.Context, userID string, content []byte) (string, error)
}

// NopArchiver is used when no bucket is configured.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, string, []byte) (string, error) {
	return "", nil
}

type Config struct {
	Bucket          string
	Endpoint        string // empty for AWS S3; https://<account>.r2.cloudflarestorage.com for R2
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes CSV imports to an S3-compatible bucket.
type S3Archiver struct {
	client putObjectAPI
	bucket string
	newID  func() string
}

// NewS3Archiver builds the client and checks the bucket is reachable.
func NewS3Archiver(ctx context.Context, cfg Config) (*S3Archiver, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("missing required archive configuration parameters")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") {
			return nil, fmt.Errorf("bucket %s not found or you don't have permission to access it", cfg.Bucket)
		}
		return nil, fmt.Errorf("failed to access bucket: %w", err)
	}

	return &S3Archiver{client: client, bucket: cfg.Bucket, newID: uuid.NewString}, nil
}

// ObjectKey is imports/{user_id}/{id}.csv.
func ObjectKey(userID, id string) string {
	return fmt.Sprintf("imports/%s/%s.csv", userID, id)
}

func (a *S3Archiver) Archive(ctx context.Context, userID string, content []byte) (string, error) {
	key := ObjectKey(userID, a.newID())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}
