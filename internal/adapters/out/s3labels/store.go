// Package s3labels keeps downloaded shipping labels in an S3 bucket.
package s3labels

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const keyPrefix = "labels/"

// ObjectAPI is the part of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string

	// Endpoint points the client at an S3 compatible server. Empty means AWS.
	Endpoint string
}

var _ ports.LabelStore = &Store{}

type Store struct {
	api    ObjectAPI
	bucket string
	logger *zap.Logger
}

// NewS3Client builds an S3 client with static credentials.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewStore(api ObjectAPI, bucket string, logger *zap.Logger) (*Store, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	return &Store{
		api:    api,
		bucket: bucket,
		logger: logger.With(zap.String("component", "s3labels")),
	}, nil
}

func (s *Store) Save(ctx context.Context, doc ports.LabelDocument) error {
	if doc.Filename == "" {
		return errs.NewValueIsRequiredError("filename")
	}
	key := keyPrefix + doc.Filename

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(doc.Body),
		ContentType:   aws.String(doc.ContentType),
		ContentLength: aws.Int64(int64(len(doc.Body))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload label %s: %w", key, err)
	}

	s.logger.Debug("label stored", zap.String("key", key), zap.Int("bytes", len(doc.Body)))
	return nil
}

func (s *Store) Open(ctx context.Context, filename string) (ports.LabelDocument, error) {
	key := keyPrefix + filename

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return ports.LabelDocument{}, errs.NewObjectNotFoundErrorWithCause("label", key, err)
		}
		return ports.LabelDocument{}, fmt.Errorf("failed to download label %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return ports.LabelDocument{}, fmt.Errorf("failed to read label %s: %w", key, err)
	}

	return ports.LabelDocument{
		Filename:    filename,
		ContentType: aws.ToString(out.ContentType),
		Body:        body,
	}, nil
}
