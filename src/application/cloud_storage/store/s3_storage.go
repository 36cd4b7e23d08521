package store

import (
	"bytes"
	"context"
	"io"
	"stem-split-worker/src/application/cloud_storage/entity"
	"stem-split-worker/src/lib/cerr"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var _ entity.FileStore = S3FileStore{}

// R2 ignores the region but the signer needs one
const DefaultS3Region = "auto"

type S3FileStore struct {
	client     *s3.S3
	bucketName string
}

func NewS3FileStore(endpoint string, accessKeyID string, secretAccessKey string, region string, bucketName string) (S3FileStore, error) {
	if region == "" {
		region = DefaultS3Region
	}

	config := aws.NewConfig().
		WithEndpoint(endpoint).
		WithRegion(region).
		WithS3ForcePathStyle(true).
		WithCredentials(credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""))

	s3Session, err := session.NewSession(config)
	if err != nil {
		return S3FileStore{}, cerr.Field("endpoint", endpoint).
			Wrap(err).Error("Failed to create S3 session")
	}

	return S3FileStore{
		client:     s3.New(s3Session),
		bucketName: bucketName,
	}, nil
}

func (s S3FileStore) GetFile(ctx context.Context, key string) ([]byte, error) {
	errctx := cerr.Field("bucket", s.bucketName).Field("key", key)

	output, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to get object")
	}

	defer output.Body.Close()

	contents, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read remote file")
	}

	return contents, nil
}

func (s S3FileStore) WriteFile(ctx context.Context, key string, fileContent []byte, contentType string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileContent),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return cerr.Field("bucket", s.bucketName).
			Field("key", key).
			Wrap(err).Error("Error occurred when uploading file")
	}

	return nil
}
