// Package storage хранит загруженные медиафайлы: локально или в S3-совместимом бакете.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"collab_backend/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage - операции с объектами по ключу вида "drafts/<user>/<uuid>.jpg"
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// URL - публичный адрес объекта
	URL(key string) string

	// SignedURL - временная ссылка; локальное хранилище отдает обычный URL
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// NewStorage выбирает реализацию по storage.type
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
