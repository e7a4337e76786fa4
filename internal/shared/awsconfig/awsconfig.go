package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options selects the region and, optionally, static credentials. Without
// keys the default credential chain (env, shared profile, instance role)
// is used.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load builds an aws.Config for the given options.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3Client loads the config and returns an S3 client.
func NewS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	cfg, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}
