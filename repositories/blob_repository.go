package repositories

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/utils"
)

type BlobRepository interface {
	ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BucketFile, error)
	GetBlob(ctx context.Context, bucketUrl, key string) (models.Blob, error)
	MoveFile(ctx context.Context, bucketUrl, srcKey, dstKey string) error
}

type blobRepository struct {
	buckets map[string]*blob.Bucket
	m       sync.Mutex
}

func NewBlobRepository() BlobRepository {
	return &blobRepository{
		buckets: make(map[string]*blob.Bucket),
	}
}

// openBlobBucket opens gs://, file:// and mem:// buckets once and keeps them open.
func (repository *blobRepository) openBlobBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.openBlobBucket",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
	)
	defer span.End()

	repository.m.Lock()
	defer repository.m.Unlock()

	if bucket, ok := repository.buckets[bucketUrl]; ok {
		return bucket, nil
	}

	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}
	ok, err := bucket.IsAccessible(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check bucket accessibility %s", bucketUrl)
	} else if !ok {
		return nil, errors.Newf("bucket %s is not accessible", bucketUrl)
	}

	repository.buckets[bucketUrl] = bucket
	return bucket, nil
}

func (repository *blobRepository) ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BucketFile, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}

	files := make([]models.BucketFile, 0)
	iter := bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list files of %s/%s", bucketUrl, prefix)
		}
		if obj.IsDir || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		files = append(files, models.BucketFile{Key: obj.Key, Size: obj.Size, ModTime: obj.ModTime})
	}
	slices.SortFunc(files, func(a, b models.BucketFile) int {
		return strings.Compare(a.Key, b.Key)
	})
	return files, nil
}

func (repository *blobRepository) GetBlob(ctx context.Context, bucketUrl, key string) (models.Blob, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.GetBlob",
		trace.WithAttributes(attribute.String("bucket", bucketUrl), attribute.String("key", key)),
	)
	defer span.End()

	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return models.Blob{}, err
	}
	reader, err := bucket.NewReader(ctx, key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return models.Blob{}, errors.Wrapf(models.NotFoundError, "file %s not found in %s", key, bucketUrl)
	}
	if err != nil {
		return models.Blob{}, errors.Wrapf(err, "failed to read %s from %s", key, bucketUrl)
	}
	return models.Blob{FileName: key, ReadCloser: reader}, nil
}

// MoveFile copies then deletes: buckets have no rename.
func (repository *blobRepository) MoveFile(ctx context.Context, bucketUrl, srcKey, dstKey string) error {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}
	if err := bucket.Copy(ctx, dstKey, srcKey, nil); err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", srcKey, dstKey)
	}
	if err := bucket.Delete(ctx, srcKey); err != nil {
		return errors.Wrapf(err, "failed to delete %s", srcKey)
	}
	return nil
}
