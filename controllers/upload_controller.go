package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/banjiha/community/config"
	"github.com/banjiha/community/utils"
)

// Images are capped well below the server write timeout.
const maxUploadSize = 10 * 1024 * 1024

// UploadController stores uploaded images on disk and hands back their
// public URL path.
type UploadController struct{}

// NewUploadController creates an UploadController.
func NewUploadController() *UploadController {
	return &UploadController{}
}

// UploadImage saves the multipart "image" field into the upload
// directory under a timestamp-prefixed name and returns its /uploads URL.
func (u *UploadController) UploadImage(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, "File too large.")
		return
	}

	uploadDir := config.Get().UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}

	// Timestamp prefix keeps concurrent uploads of the same file apart.
	name := filepath.Base(header.Filename)
	if name == "." || name == "" || name == string(filepath.Separator) {
		name = uuid.NewString()
	}
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name)
	dstPath := filepath.Join(uploadDir, fileName)

	dst, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to save file")
		return
	}
	defer dst.Close()

	limited := &io.LimitedReader{R: file, N: maxUploadSize + 1}
	written, err := io.Copy(dst, limited)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to write file")
		return
	}
	if written > maxUploadSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, "File too large.")
		return
	}

	utils.Success(ctx, gin.H{"url": "/uploads/" + fileName})
}
