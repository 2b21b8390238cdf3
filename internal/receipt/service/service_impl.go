package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/smallbiznis/clubhub/internal/config"
	"github.com/smallbiznis/clubhub/internal/receipt/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// allowed maps accepted MIME types to the extension stored on disk.
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

type Params struct {
	fx.In

	Log *zap.Logger
	Cfg config.Config
}

type service struct {
	log     *zap.Logger
	dir     string
	baseURL string
}

func NewService(p Params) domain.Service {
	return &service{
		log:     p.Log.Named("receipt"),
		dir:     p.Cfg.UploadDir,
		baseURL: strings.TrimRight(p.Cfg.UploadBaseURL, "/"),
	}
}

func (s *service) Store(ctx context.Context, upload domain.Upload) (*domain.StoredReceipt, error) {
	if upload.Reader == nil || upload.Size == 0 {
		return nil, domain.ErrMissingFile
	}
	if upload.Size > domain.MaxSize {
		return nil, domain.ErrTooLarge
	}

	// Read one byte past the limit so an understated Size header
	// cannot smuggle a larger file through.
	data, err := io.ReadAll(io.LimitReader(upload.Reader, domain.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > domain.MaxSize {
		return nil, domain.ErrTooLarge
	}
	if len(data) == 0 {
		return nil, domain.ErrMissingFile
	}

	detected := mimetype.Detect(data)
	ext, ok := allowed[detected.String()]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	s.log.Info("receipt stored",
		zap.String("filename", name),
		zap.Int("size", len(data)),
		zap.String("type", detected.String()),
	)
	return &domain.StoredReceipt{
		URL:         fmt.Sprintf("%s/%s", s.baseURL, name),
		Filename:    name,
		Size:        int64(len(data)),
		ContentType: detected.String(),
	}, nil
}
