package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rshade/adminui/internal/awsutil"
	"github.com/rshade/adminui/internal/members"
)

// defaultS3Region is used when neither the config nor the AWS environment
// (AWS_REGION, shared config profile) sets one.
const defaultS3Region = "us-east-1"

// ErrInvalidS3Source is returned for S3 sources without a bucket or key.
var ErrInvalidS3Source = errors.New("s3 source must look like s3://bucket/key or arn:aws:s3:::bucket/key")

// S3Options configures the S3 client built for s3:// sources.
type S3Options struct {
	Region    string
	Endpoint  string // optional; custom endpoint such as MinIO
	PathStyle bool

	// Client overrides the client built from the options (tests).
	Client S3API
}

// S3API is the subset of *s3.Client used by S3Fetcher.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads a member document from one S3 object.
type S3Fetcher struct {
	client S3API
	bucket string
	key    string
}

// ParseS3URL splits s3://bucket/key into its parts.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseS3URL(u *url.URL) (bucket, key string, err error) {
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidS3Source, u.String())
	}
	return bucket, key, nil
}

// NewS3Fetcher returns a fetcher for the object named by u. Credentials come
// from the default AWS chain.
func NewS3Fetcher(ctx context.Context, u *url.URL, opts S3Options) (*S3Fetcher, error) {
	bucket, key, err := ParseS3URL(u)
	if err != nil {
		return nil, err
	}
	return newS3Fetcher(ctx, bucket, key, opts)
}

// NewS3FetcherFromARN returns a fetcher for an S3 object ARN such as
// arn:aws:s3:::bucket/key. A region in the ARN overrides opts.Region.
func NewS3FetcherFromARN(ctx context.Context, raw string, opts S3Options) (*S3Fetcher, error) {
	a, err := awsutil.ParseARN(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidS3Source, err)
	}
	bucket, key, err := a.S3Object()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidS3Source, err)
	}
	if a.Region != "" {
		opts.Region = a.Region
	}
	return newS3Fetcher(ctx, bucket, key, opts)
}

func newS3Fetcher(ctx context.Context, bucket, key string, opts S3Options) (*S3Fetcher, error) {
	var err error
	client := opts.Client
	if client == nil {
		client, err = newS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
	}

	return &S3Fetcher{client: client, bucket: bucket, key: key}, nil
}

func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	awsCfg.Region = resolveRegion(opts.Region, awsCfg.Region)

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.PathStyle {
			o.UsePathStyle = true
		}
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// resolveRegion picks the configured region, then the one the AWS
// environment resolved, then defaultS3Region.
func resolveRegion(configured, environment string) string {
	switch {
	case configured != "":
		return configured
	case environment != "":
		return environment
	default:
		return defaultS3Region
	}
}

// Source returns the s3:// URL.
func (f *S3Fetcher) Source() string {
	return "s3://" + f.bucket + "/" + f.key
}

// Fetch reads and decodes the object.
func (f *S3Fetcher) Fetch(ctx context.Context) ([]members.Record, error) {
	body, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Decode(body)
}

// FetchRaw reads the object.
func (f *S3Fetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	body, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Source(), err)
	}
	return data, nil
}

func (f *S3Fetcher) open(ctx context.Context) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.Source(), err)
	}
	return out.Body, nil
}
