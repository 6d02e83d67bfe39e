package models

import (
	"io"
	"time"
)

// BucketFile is an object listed in the import bucket.
type BucketFile struct {
	Key     string
	Size    int64
	ModTime time.Time
}

type Blob struct {
	FileName   string
	ReadCloser io.ReadCloser
}
