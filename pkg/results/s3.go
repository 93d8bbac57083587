package results

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used for uploads
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads the pair table to <prefix>/<run id>/clusters_polarization.csv
type S3Sink struct {
	client   S3API
	bucket   string
	prefix   string
	compress bool
}

// NewS3Client builds an S3 client from the default AWS credential chain
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	opts := make([]func(*awsconfig.LoadOptions) error, 0, 1)
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// NewS3Sink creates a sink uploading through client
func NewS3Sink(client S3API, bucket, prefix string, compress bool) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, compress: compress}
}

// Name implements Sink
func (s *S3Sink) Name() string {
	return "s3"
}

// Key returns the object key used for a run
func (s *S3Sink) Key(runID string) string {
	name := "clusters_polarization.csv"
	if s.compress {
		name += SnappyExt
	}
	return path.Join(s.prefix, runID, name)
}

// Write implements Sink
func (s *S3Sink) Write(ctx context.Context, run *Run) error {
	var buf bytes.Buffer
	if err := writeEncoded(&buf, s.compress, run.Results, EncodePairs); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	contentType := "text/csv"
	if s.compress {
		contentType = "application/x-snappy-framed"
	}

	key := s.Key(run.ID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"run-id": run.ID,
			"pairs":  fmt.Sprint(len(run.Results)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
