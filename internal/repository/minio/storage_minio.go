package minio

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// MediaStorage implements ports.ObjectStorage against a MinIO/S3 endpoint.
type MediaStorage struct {
	client *minio.Client
}

func NewMediaStorage(client *minio.Client) *MediaStorage {
	return &MediaStorage{client: client}
}

// PresignGet re-signs on every call; repeated calls for the same key yield
// different but equally valid URLs.
func (s *MediaStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

func (s *MediaStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	info, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

var _ ports.ObjectStorage = (*MediaStorage)(nil)
