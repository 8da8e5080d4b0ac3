package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"penlog/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 10 MiB; profile and board images are never larger in practice.
const maxUploadBytes = 10 << 20

var allowedImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// UploadImage stores a multipart image and returns its public URL. The
// category form field selects the layout folder (avatar, banner, board).
func (h *HTTPHandler) UploadImage(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		BadRequest(c, ErrCodeInvalidRequest, "file exceeds the upload limit")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !allowedImageExtensions[ext] {
		BadRequest(c, ErrCodeInvalidRequest, "unsupported image type")
		return
	}

	category := strings.TrimSpace(c.PostForm("category"))
	switch category {
	case storage.CategoryAvatar, storage.CategoryBanner, storage.CategoryBoard:
	case "":
		category = storage.CategoryBoard
	default:
		BadRequest(c, ErrCodeInvalidRequest, "unknown upload category")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		BadRequest(c, ErrCodeInvalidRequest, "file exceeds the upload limit")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  category,
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to store uploaded file")
		InternalError(c, "failed to store upload")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": key,
		"url":  h.publicURL(key),
	})
}

func (h *HTTPHandler) publicURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	base := h.storagePublicBase
	if base == "" {
		base = "/files"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(trimmed, "/"))
}
