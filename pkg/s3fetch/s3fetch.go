// Package s3fetch loads translation documents from S3-compatible object storage.
//
//	f, err := s3fetch.New(s3fetch.Config{
//		Bucket:    "assets",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//		Prefix:    "i18n",
//	})
//	s, err := i18n.New(ctx, cfg, i18n.WithFetcher(f))
//
// Locations in the translations index are object keys relative to Prefix.
package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

var (
	ErrInvalidConfig = errors.New("s3fetch: invalid configuration")
	ErrNotFound      = errors.New("s3fetch: document not found")
	ErrAccessDenied  = errors.New("s3fetch: access denied")
)

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

const maxDocumentSize = 10 << 20

// Config holds S3 connection settings.
type Config struct {
	Bucket    string `env:"BUCKET"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint string `env:"ENDPOINT"`
	Region   string `env:"REGION" envDefault:"us-east-1"`
	// Prefix is prepended to every location.
	Prefix    string `env:"PREFIX"`
	PathStyle bool   `env:"PATH_STYLE"`
}

// ObjectGetter is the subset of the S3 client used by Fetcher.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher implements i18n.Fetcher on top of S3 GetObject.
type Fetcher struct {
	client ObjectGetter
	bucket string
	prefix string
}

// New creates a Fetcher with static credentials.
func New(cfg Config) (*Fetcher, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrInvalidConfig
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewWithClient(s3.New(s3.Options{}, opts...), cfg.Bucket, cfg.Prefix)
}

// NewWithClient creates a Fetcher around an existing client.
func NewWithClient(client ObjectGetter, bucket, prefix string) (*Fetcher, error) {
	if client == nil || bucket == "" {
		return nil, ErrInvalidConfig
	}
	return &Fetcher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Fetch downloads and parses the object at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*i18n.Document, error) {
	key := strings.TrimPrefix(path.Join(f.prefix, location), "/")

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", i18n.ErrFetchFailed, key, err)
	}

	return i18n.DecodeDocument(key, data)
}

// wrapS3Error maps S3 failures to sentinels. The AWS error is kept as text
// only; match with errors.Is against the sentinels.
func wrapS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %w: %v", i18n.ErrFetchFailed, ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %w: %v", i18n.ErrFetchFailed, ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w: %v", i18n.ErrFetchFailed, ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", i18n.ErrFetchFailed, err)
}
