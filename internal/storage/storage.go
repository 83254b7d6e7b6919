package storage

import (
	"context"
	"io"
	"path"
	"strconv"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, otherwise -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is the S3-compatible archive that receives exported documents.
type Storage interface {
	// Put uploads an object under key, streaming from r.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ExportKey is the object key of a rendered document: documents/<year>/<reference>.<ext>.
func ExportKey(year int, reference, ext string) string {
	return path.Join("documents", strconv.Itoa(year), reference+"."+ext)
}
