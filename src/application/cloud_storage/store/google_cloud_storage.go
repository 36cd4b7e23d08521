package store

import (
	"context"
	"io"
	"stem-split-worker/src/application/cloud_storage/entity"
	"stem-split-worker/src/lib/cerr"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var _ entity.FileStore = GoogleFileStore{}

const GOOGLE_STORAGE_HOST = "storage.googleapis.com"

type GoogleFileStore struct {
	storageClient *storage.Client
	bucketName    string
}

func NewGoogleFileStore(bucketName string, options ...option.ClientOption) (GoogleFileStore, error) {
	googleStorageClient, err := storage.NewClient(context.Background(), options...)
	if err != nil {
		return GoogleFileStore{}, cerr.Wrap(err).Error("Failed to create Google Cloud Storage client")
	}

	return NewGoogleFileStoreFromClient(googleStorageClient, bucketName), nil
}

func NewGoogleFileStoreFromClient(client *storage.Client, bucketName string) GoogleFileStore {
	return GoogleFileStore{
		storageClient: client,
		bucketName:    bucketName,
	}
}

func (g GoogleFileStore) GetFile(ctx context.Context, key string) ([]byte, error) {
	errctx := cerr.Field("bucket", g.bucketName).Field("key", key)

	reader, err := g.objectHandle(key).NewReader(ctx)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create reader for Google object handle")
	}

	defer reader.Close()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read remote file")
	}

	return contents, nil
}

func (g GoogleFileStore) WriteFile(ctx context.Context, key string, fileContent []byte, contentType string) (err error) {
	errctx := cerr.Field("bucket", g.bucketName).Field("key", key)

	writer := g.objectHandle(key).NewWriter(ctx)
	writer.ContentType = contentType

	defer func() {
		closeErr := writer.Close()
		if err == nil && closeErr != nil {
			err = errctx.Wrap(closeErr).Error("Error occurred when closing the upload stream")
		}
	}()

	if _, err = writer.Write(fileContent); err != nil {
		return errctx.Wrap(err).Error("Error occurred when uploading file")
	}

	return nil
}

func (g GoogleFileStore) objectHandle(key string) *storage.ObjectHandle {
	return g.storageClient.Bucket(g.bucketName).Object(key)
}
