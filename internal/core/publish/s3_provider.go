package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used for publishing.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Provider publishes reports to an AWS S3 bucket
type S3Provider struct {
	client     S3API
	bucketName string
	region     string
	baseURL    string // Base URL for accessing files (e.g., CloudFront)
}

// NewS3Provider creates a new AWS S3 provider
func NewS3Provider(client S3API, bucketName, region string) *S3Provider {
	return &S3Provider{
		client:     client,
		bucketName: bucketName,
		region:     region,
		baseURL:    fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, region),
	}
}

// Publish uploads a report to S3
func (p *S3Provider) Publish(ctx context.Context, content io.Reader, filename string, options *Options) (*Result, error) {
	options = MergeOptions(options)
	key := path.Join(options.Folder, fileName(filename, options))

	// Buffer so the size is known and the body is seekable for signing.
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	contentType := ContentType(filename)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &Result{
		URL:         p.GetURL(key),
		Key:         key,
		FileName:    filename,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

// Delete deletes a file from AWS S3
func (p *S3Provider) Delete(ctx context.Context, key string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

// GetURL gets the public URL for a file from S3
func (p *S3Provider) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", p.baseURL, key)
}

// GetProviderName returns the provider name
func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}
