// Package objectstore uploads renamed recordings to an S3-compatible bucket.
package objectstore

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"voice-renamer/internal/app/api/provider"
	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/config"
)

// Uploader stores renamed copies in a bucket
type Uploader interface {
	// Key returns the object key of name inside the run's output directory
	Key(outputDir string, name string) string
	// Upload stores localPath under key and returns the object URL
	Upload(ctx context.Context, localPath string, key string) (string, error)
}

// MinioUploader implements Uploader using MinIO
type MinioUploader struct {
	client   *minio.Client
	bucket   string
	endpoint string
	prefix   string
	useSSL   bool
	logger   *zap.Logger
}

// NewMinioUploader creates the client and makes sure the bucket exists
func NewMinioUploader(ctx context.Context, settings config.UploadSettings, logger *zap.Logger) (*MinioUploader, error) {
	if settings.Endpoint == "" {
		return nil, apperrors.InvalidField("upload.endpoint", "is required")
	}
	if settings.Bucket == "" {
		return nil, apperrors.InvalidField("upload.bucket", "is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
		Region: settings.Region,
	})
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrInvalidConfiguration, fmt.Errorf("failed to create MinIO client: %w", err))
	}

	uploader := &MinioUploader{
		client:   client,
		bucket:   settings.Bucket,
		endpoint: settings.Endpoint,
		prefix:   settings.Prefix,
		useSSL:   settings.UseSSL,
		logger:   logger,
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, settings.Bucket)
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrUploadFailed, fmt.Errorf("failed to check bucket existence: %w", err))
	}
	if !exists {
		err = client.MakeBucket(ctx, settings.Bucket, minio.MakeBucketOptions{Region: settings.Region})
		if err != nil {
			return nil, apperrors.Tag(apperrors.ErrUploadFailed, fmt.Errorf("failed to create bucket: %w", err))
		}
		logger.Info("created bucket", zap.String("bucket", settings.Bucket))
	}

	return uploader, nil
}

// Key returns "<prefix>/<outputDir base name>/<name>", prefix omitted when empty
func (u *MinioUploader) Key(outputDir string, name string) string {
	return ObjectKey(u.prefix, outputDir, name)
}

// ObjectKey joins the object key parts with forward slashes
func ObjectKey(prefix string, outputDir string, name string) string {
	return strings.TrimPrefix(path.Join(strings.Trim(prefix, "/"), filepath.Base(outputDir), name), "/")
}

// Upload copies localPath to the bucket under key
func (u *MinioUploader) Upload(ctx context.Context, localPath string, key string) (string, error) {
	info, err := u.client.FPutObject(ctx, u.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType(localPath),
		UserMetadata: map[string]string{
			"original-name": filepath.Base(localPath),
			"uploaded-at":   time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", apperrors.Tag(apperrors.ErrUploadFailed, fmt.Errorf("failed to upload %s: %w", key, err))
	}

	u.logger.Debug("uploaded", zap.String("key", key), zap.Int64("size", info.Size))
	return u.GetFileURL(key), nil
}

// GetFileURL returns the URL for accessing an object
func (u *MinioUploader) GetFileURL(key string) string {
	protocol := "http"
	if u.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, u.endpoint, u.bucket, key)
}

func contentType(localPath string) string {
	switch provider.GetAudioFormatFromFilename(localPath) {
	case provider.FormatWAV:
		return "audio/wav"
	case provider.FormatMP3:
		return "audio/mpeg"
	case provider.FormatM4A:
		return "audio/mp4"
	case provider.FormatFLAC:
		return "audio/flac"
	case provider.FormatOGG:
		return "audio/ogg"
	case provider.FormatWEBM:
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}

var _ Uploader = (*MinioUploader)(nil)
