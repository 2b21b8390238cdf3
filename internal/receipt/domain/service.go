package domain

import (
	"context"
	"errors"
	"io"
)

// MaxSize is the largest accepted receipt, 5 MiB.
const MaxSize int64 = 5 << 20

var (
	ErrMissingFile     = errors.New("missing_file")
	ErrTooLarge        = errors.New("file_too_large")
	ErrUnsupportedType = errors.New("unsupported_file_type")
)

type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// StoredReceipt describes a persisted receipt file.
type StoredReceipt struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"type"`
}

type Service interface {
	// Store validates the upload and persists it under a generated
	// name. Validation happens before any byte reaches disk.
	Store(ctx context.Context, upload Upload) (*StoredReceipt, error)
}
