package config

import "stem-split-worker/src/lib/storagepath"

type CloudStorage interface {
	GetStorageHost() string
	GetBucket() string
}

var _ CloudStorage = S3CompatibleStorage{}

// S3CompatibleStorage covers R2 and anything else speaking the S3 API.
type S3CompatibleStorage struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
}

func (s S3CompatibleStorage) GetStorageHost() string {
	return storagepath.HostFromEndpoint(s.Endpoint)
}

func (s S3CompatibleStorage) GetBucket() string {
	return s.BucketName
}

var _ CloudStorage = GoogleCloudStorage{}

type GoogleCloudStorage struct {
	StorageHost string
	SecretKey   string
	BucketName  string
}

func (g GoogleCloudStorage) GetStorageHost() string {
	return g.StorageHost
}

func (g GoogleCloudStorage) GetBucket() string {
	return g.BucketName
}
