package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

type putDeleter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage targets any S3-compatible bucket (AWS, R2, MinIO).
type S3Storage struct {
	client    putDeleter
	bucket    string
	publicURL string
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)),
		config.WithRegion(opts.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

func (s *S3Storage) ObjectName(filename string) string {
	return uuidName("uploads/", filename)
}

func (s *S3Storage) Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) (string, error) {
	body := src
	if size < 0 {
		buf, err := io.ReadAll(src)
		if err != nil {
			return "", fmt.Errorf("failed to read file content: %w", err)
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	key, ok := s.keyFor(fileURL)
	if !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) keyFor(fileURL string) (string, bool) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, prefix)
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}
	return key, key != ""
}
