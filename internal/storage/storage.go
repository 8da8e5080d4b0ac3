package storage

import (
	"context"
	"fmt"
	"strings"

	"penlog/internal/config"
)

const (
	// TypeLocal stores uploads on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores uploads in Amazon S3 or any S3-compatible backend.
	TypeS3 = "s3"
	// TypeOSS stores uploads in Alibaba Cloud OSS.
	TypeOSS = "oss"
	// TypeCOS stores uploads in Tencent Cloud COS.
	TypeCOS = "cos"
)

// Upload categories used to group image files by purpose.
const (
	CategoryAvatar = "avatar"
	CategoryBanner = "banner"
	CategoryBoard  = "board"
)

// SaveOptions controls how a backend persists an uploaded image.
//
// Category groups files by purpose (avatar, banner, board). Extension hints
// the preferred file extension without the leading dot; backends fall back to
// "bin" when it is empty.
type SaveOptions struct {
	Category  string
	Extension string
}

// Storage persists binary data and returns a backend-specific key, e.g. a
// relative path for local storage or an object key for S3.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by backends that expose a local
// directory which can be served over HTTP directly.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the storage backend selected by configuration.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
