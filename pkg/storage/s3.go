package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Options struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type s3Storage struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Storage creates an S3 backed ImageStorage. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, opts S3Options) (ImageStorage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &s3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		region: opts.Region,
	}, nil
}

func (s *s3Storage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	key := strings.Trim(folder, "/") + "/" + uuid.New().String() + ext

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *s3Storage) DeleteImage(ctx context.Context, fileURL string) error {
	key := s.objectKey(fileURL)
	if key == "" {
		return fmt.Errorf("could not extract object key from URL: %s", fileURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from s3: %w", err)
	}
	return nil
}

func (s *s3Storage) Owns(fileURL string) bool {
	key, ok := strings.CutPrefix(fileURL, s.objectURL(""))
	return ok && key != ""
}

func (s *s3Storage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// objectKey reverses objectURL; URLs from another bucket yield "".
func (s *s3Storage) objectKey(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(u.Host, s.bucket+".") {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
