// Package storage provides S3-compatible object storage for agent
// workspace files.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited download link for a stored object.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ObjectStore is the storage surface the agents module uses.
type ObjectStore interface {
	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// UploadFile stores the reader's content under a unique key below
	// folder and returns that key.
	UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// GenerateDownloadURL creates a presigned GET URL for the object.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, bucket, fileKey string) error

	// ValidateContentType checks whether the MIME type is allowed.
	ValidateContentType(contentType string) error

	// ValidateFileSize checks the size against the configured limit.
	ValidateFileSize(sizeBytes int64) error
}

// Config is the configuration surface for the MinIO client.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
