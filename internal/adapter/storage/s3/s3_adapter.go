package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

// ObjectStorage stores listing images in a MinIO bucket. Objects get a
// generated unique name so concurrent uploads never collide.
type ObjectStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewObjectStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*ObjectStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make or verify bucket %s: %w", bucket, err)
		}
	}

	log.Info("ObjectStorage: MinIO bucket ready", "endpoint", endpoint, "bucket", bucket)
	return &ObjectStorage{client: client, bucket: bucket, logger: log}, nil
}

// Upload stores data under listings/<uuid><ext> and returns the object URL.
func (s *ObjectStorage) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("listings/%s%s", uuid.New().String(), filepath.Ext(fileName))

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("ObjectStorage.Upload: PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err.Error())
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	s.logger.Info("ObjectStorage.Upload: object stored",
		"bucket", info.Bucket, "key", info.Key, "size_bytes", info.Size)
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}
