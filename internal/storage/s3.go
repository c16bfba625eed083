package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the configuration for S3 publication.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // Optional: for custom S3-compatible endpoints
	AccessKeyID     string // Optional: AWS access key ID
	SecretAccessKey string // Optional: AWS secret access key
}

// S3Library wraps LocalLibrary and adds S3 publication. Clip lookup and
// output placement stay local; Publish pushes finished outputs to the
// configured bucket.
type S3Library struct {
	*LocalLibrary
	client *s3.Client
	bucket string
	region string
}

// NewS3Library creates an S3Library on top of a LocalLibrary rooted at
// mediaDir and outDir.
func NewS3Library(mediaDir, outDir string, cfg S3Config) (*S3Library, error) {
	local, err := NewLocalLibrary(mediaDir, outDir)
	if err != nil {
		return nil, err
	}

	var configOpts []func(*config.LoadOptions) error
	configOpts = append(configOpts, config.WithRegion(cfg.Region))

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Library{
		LocalLibrary: local,
		client:       s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:       cfg.Bucket,
		region:       cfg.Region,
	}, nil
}

// Publish uploads the file at path to S3 under its base name and returns
// the public URL.
func (s *S3Library) Publish(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - path is produced by this process
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	defer func() { _ = f.Close() }()

	key := filepath.Base(path)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
