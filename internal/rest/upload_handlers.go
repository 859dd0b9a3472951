package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/blog-api/internal/storage"
)

// Upload handles POST /uploads
// @Summary Upload an image
// @Description Accepts a multipart file, validates content type and size before any storage call, returns the object key and public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param prefix query string false "Key prefix folder"
// @Success 200 {object} rest.UploadResponse
// @Failure 400,401,500 {object} map[string]string
// @Security ApiKeyAuth
// @Router /uploads [post]
func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "failed to read file")
	}
	defer file.Close()

	object, err := h.uploads.Upload(c.Request().Context(), storage.UploadInput{
		Prefix:      c.QueryParam("prefix"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
		return h.handleError(c, err, http.StatusBadRequest, err.Error())
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "storage error")
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Key:         object.Key,
		URL:         object.URL,
		ContentType: object.ContentType,
		Size:        object.Size,
	})
}

// DeleteUpload handles DELETE /uploads/*
// @Summary Delete an uploaded object by key
// @Description Idempotent: deleting an absent key succeeds
// @Tags uploads
// @Param key path string true "Object key"
// @Success 204
// @Failure 400,401,500 {object} map[string]string
// @Security ApiKeyAuth
// @Router /uploads/{key} [delete]
func (h *Handler) DeleteUpload(c echo.Context) error {
	key := c.Param("*")
	if key == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "key is required")
	}

	if err := h.uploads.Delete(c.Request().Context(), key); err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "storage error")
	}

	return c.NoContent(http.StatusNoContent)
}
