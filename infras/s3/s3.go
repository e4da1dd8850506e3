package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// Storage puts and removes public objects in an S3-compatible bucket.
type Storage interface {
	Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type storageImpl struct {
	client       objectAPI
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func (svc *storageImpl) Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.publicDomain, "/"), objectKey), nil
}

func (svc *storageImpl) DeleteByURL(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteByURL")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.ObjectKey(url)
	if objectKey == constant.Empty {
		return nil
	}

	scope.SetAttribute(otelAttrObjectKey, objectKey)

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKey strips the public domain from a URL produced by Upload. Foreign
// URLs yield an empty key.
func (svc *storageImpl) ObjectKey(url string) string {
	prefix := strings.TrimSuffix(svc.publicDomain, "/") + "/"
	if svc.publicDomain == "" || !strings.HasPrefix(url, prefix) {
		return constant.Empty
	}

	return strings.TrimPrefix(url, prefix)
}

func New(cfg *config.Config, otel otel.Otel) Storage {
	s3Cfg := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Cfg.AccessKeyID,
			s3Cfg.SecretAccessKey,
			"",
		)),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &storageImpl{
		client:       client,
		bucket:       s3Cfg.BucketName,
		publicDomain: s3Cfg.PublicDomain,
		otel:         otel,
	}
}
