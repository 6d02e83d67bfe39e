package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/challenge-backend/models"
)

type BlobRepository struct {
	mock.Mock
}

func (m *BlobRepository) ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BucketFile, error) {
	args := m.Called(ctx, bucketUrl, prefix)
	return args.Get(0).([]models.BucketFile), args.Error(1)
}

func (m *BlobRepository) GetBlob(ctx context.Context, bucketUrl, key string) (models.Blob, error) {
	args := m.Called(ctx, bucketUrl, key)
	return args.Get(0).(models.Blob), args.Error(1)
}

func (m *BlobRepository) MoveFile(ctx context.Context, bucketUrl, srcKey, dstKey string) error {
	args := m.Called(ctx, bucketUrl, srcKey, dstKey)
	return args.Error(0)
}
