package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/listing/usecase"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

type UploadHandler struct {
	assets *usecase.AssetUsecase
	logger *logger.Logger
}

func NewUploadHandler(assets *usecase.AssetUsecase, log *logger.Logger) *UploadHandler {
	return &UploadHandler{assets: assets, logger: log}
}

// Upload handles POST /api/upload with a multipart "image" field. The size
// and content-type checks live in the asset usecase and are authoritative.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, usecase.ErrNoFileProvided)
		return
	}
	if fileHeader.Size > usecase.MaxAssetSize {
		respondError(c, usecase.ErrPayloadTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("UploadHandler.Upload: failed to open upload", "error", err.Error())
		respondError(c, err)
		return
	}
	defer file.Close()

	// Read one byte past the limit so an understated Content-Length header
	// cannot smuggle an oversized payload through.
	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxAssetSize+1))
	if err != nil {
		h.logger.Error("UploadHandler.Upload: failed to read upload", "error", err.Error())
		respondError(c, err)
		return
	}

	ref, err := h.assets.Accept(c.Request.Context(), usecase.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"fileName": ref.FileName,
		"filePath": ref.FilePath,
	})
}
