package entity

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// FileStore addresses objects by key inside the bucket it was built for.
//
//counterfeiter:generate . FileStore
type FileStore interface {
	GetFile(ctx context.Context, key string) ([]byte, error)
	WriteFile(ctx context.Context, key string, fileContent []byte, contentType string) error
}
