package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

// MaxAssetSize is the upper bound for an uploaded image.
const MaxAssetSize = 1 << 20 // 1 MiB

var (
	ErrNoFileProvided       = errors.New("no file provided")
	ErrPayloadTooLarge      = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedMediaType = errors.New("unsupported file type, expected jpeg, jpg, png or gif")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ObjectStorage persists asset bytes under a generated unique name and
// returns a stable reference usable to retrieve the asset later.
type ObjectStorage interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// Upload is a raw file received from a caller.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AssetRef points at a stored asset.
type AssetRef struct {
	FileName string
	FilePath string
}

// AssetUsecase validates and stores uploaded images. The checks here are
// authoritative; client-side validation is cosmetic only.
type AssetUsecase struct {
	storage ObjectStorage
	logger  *logger.Logger
}

func NewAssetUsecase(storage ObjectStorage, log *logger.Logger) *AssetUsecase {
	return &AssetUsecase{storage: storage, logger: log}
}

// Accept validates the upload and persists it. Validation happens before
// any storage call, so a rejected upload leaves no partial writes.
func (uc *AssetUsecase) Accept(ctx context.Context, upload Upload) (*AssetRef, error) {
	if len(upload.Data) == 0 {
		return nil, ErrNoFileProvided
	}
	if len(upload.Data) > MaxAssetSize {
		uc.logger.Warn("AssetUsecase.Accept: payload too large", "size_bytes", len(upload.Data))
		return nil, ErrPayloadTooLarge
	}
	contentType := normalizeContentType(upload.ContentType)
	if !allowedContentTypes[contentType] {
		uc.logger.Warn("AssetUsecase.Accept: unsupported media type", "content_type", upload.ContentType)
		return nil, ErrUnsupportedMediaType
	}

	path, err := uc.storage.Upload(ctx, upload.FileName, contentType, upload.Data)
	if err != nil {
		uc.logger.Error("AssetUsecase.Accept: upload failed", "file_name", upload.FileName, "error", err.Error())
		return nil, err
	}

	uc.logger.Info("AssetUsecase.Accept: asset stored", "file_name", upload.FileName, "path", path)
	return &AssetRef{FileName: upload.FileName, FilePath: path}, nil
}

func normalizeContentType(contentType string) string {
	// Strip parameters like "; charset=..." before matching.
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
