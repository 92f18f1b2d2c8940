package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/dukalink/duka_api/internal/config"
)

// ImageStore uploads product images to S3 and returns their public URL.
type ImageStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewImageStore builds an S3-backed image store. Static credentials from
// config take precedence; otherwise the default AWS credential chain is used.
func NewImageStore(ctx context.Context, cfg *appconfig.S3Config) (*ImageStore, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 config incomplete")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &ImageStore{
		client: s3.NewFromConfig(awscfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// UploadProductImage stores an image under a deterministic per-product key
// and returns the object URL to persist in image_url.
func (s *ImageStore) UploadProductImage(ctx context.Context, productID int, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("products/%d/image%s", productID, extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
