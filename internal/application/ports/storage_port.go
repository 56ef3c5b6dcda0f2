package ports

import (
	"context"
	"time"
)

// FileStorage nesne deposu için imzalı adres üretir.
type FileStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
}
