package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// S3Client is the subset of the S3 API used by S3Loader.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config contains configuration for the S3 loader.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // Optional: for S3-compatible services
	ForcePathStyle bool   // For S3-compatible services like MinIO
}

// S3Option configures an S3Loader.
type S3Option func(*s3Options)

type s3Options struct {
	client S3Client
}

// WithS3Client sets a pre-configured client. Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.client = client
	}
}

// S3Loader reads documents from s3://<bucket>/<root>/<lang>/<filename>.
type S3Loader struct {
	client S3Client
	bucket string
}

// NewS3Loader creates an S3 loader.
func NewS3Loader(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Loader, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, derrors.ConfigInvalid("loader.s3", "bucket and region are required")
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if client == nil {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3Loader{client: client, bucket: cfg.Bucket}, nil
}

// Load fetches one object.
func (l *S3Loader) Load(ctx context.Context, root, lang, filename string) (string, error) {
	key, err := objectKey(root, lang, filename)
	if err != nil {
		return "", err
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return "", derrors.NotFound(root, lang, filename).WithContext("key", key)
		}
		return "", derrors.Transport(root, lang, filename, err).WithContext("key", key)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
	if err != nil {
		return "", derrors.Transport(root, lang, filename, err).WithContext("key", key)
	}
	return string(body), nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
