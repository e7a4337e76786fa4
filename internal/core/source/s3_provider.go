package source

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used to read the workbook.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Provider reads the workbook from an S3 object
type S3Provider struct {
	bucket string
	key    string
	open   S3Opener
}

func NewS3Provider(bucket, key string, open S3Opener) *S3Provider {
	return &S3Provider{bucket: bucket, key: key, open: open}
}

func (p *S3Provider) Open(ctx context.Context) (io.ReadCloser, error) {
	client, err := p.open(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", p.bucket, p.key, err)
	}
	return out.Body, nil
}

// GetProviderName returns the provider name
func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}
