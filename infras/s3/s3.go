package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"rkhub/config"
	"rkhub/infras/otel"
	"rkhub/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores public media objects. URLs handed out by UploadFileBytes map
// back to their object key through ObjectKeyFromURL.
type S3 interface {
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(url string) (objectKey string)
}

// locator knows where the bucket's objects are served from.
type locator struct {
	publicBase string
	prefixes   []string
}

func newLocator(publicDomain, apiEndpoint, bucket string) locator {
	loc := locator{publicBase: strings.TrimSuffix(publicDomain, "/")}

	if loc.publicBase != "" {
		loc.prefixes = append(loc.prefixes, loc.publicBase+"/")
	}

	if apiEndpoint != "" && bucket != "" {
		loc.prefixes = append(loc.prefixes, strings.TrimSuffix(apiEndpoint, "/")+"/"+bucket+"/")
	}

	return loc
}

func (loc locator) url(objectKey string) string {
	return loc.publicBase + "/" + objectKey
}

func (loc locator) objectKey(url string) string {
	for _, prefix := range loc.prefixes {
		if key, ok := strings.CutPrefix(url, prefix); ok && key != "" {
			return key
		}
	}

	return constant.Empty
}

type s3Impl struct {
	client  *s3.Client
	bucket  string
	locator locator
	otel    otel.Otel
}

func (svc *s3Impl) scope(ctx context.Context, operation, objectKey string) (context.Context, otel.Scope) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+operation)
	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	return ctx, scope
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	objectKey := path.Join(directory, fileName)

	ctx, scope := svc.scope(ctx, "UploadFileBytes", objectKey)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(fileData),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileData))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return svc.locator.url(objectKey), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.scope(ctx, "DeleteFile", objectKey)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete object")

		return fmt.Errorf("delete object %s: %w", objectKey, err)
	}

	return nil
}

// ObjectKeyFromURL returns the object key of a URL served from our bucket,
// or an empty string for any other URL.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	return svc.locator.objectKey(url)
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	s3Cfg := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, "")),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		o.UsePathStyle = true
	})

	return &s3Impl{
		client:  client,
		bucket:  s3Cfg.BucketName,
		locator: newLocator(s3Cfg.PublicDomain, s3Cfg.APIEndpoint, s3Cfg.BucketName),
		otel:    otel,
	}
}
