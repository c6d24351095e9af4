package middleware

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/storage"
	"go.uber.org/zap"
)

// Uploads stores every file of a multipart request, whatever its field
// name, and records the results on the request context. Requests that are
// not multipart pass through untouched.
//
// If the handler fails, files stored here stay behind; handlers discard
// them on their own rejection paths.
func Uploads(store storage.StorageService, maxBytes int64, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid multipart form"))
		}

		rc := FromCtx(c)
		for field, files := range form.File {
			for _, fh := range files {
				if maxBytes > 0 && fh.Size > maxBytes {
					discardUploads(c, store, rc.Uploads, logger)
					return c.Status(fiber.StatusRequestEntityTooLarge).
						JSON(models.ErrorResponse(fmt.Sprintf("File %s exceeds the %dMB limit", fh.Filename, maxBytes>>20)))
				}
				u, err := save(c, store, field, fh)
				if err != nil {
					discardUploads(c, store, rc.Uploads, logger)
					logger.Error("store upload", zap.String("field", field), zap.String("filename", fh.Filename), zap.Error(err))
					return errors.New("store upload")
				}
				rc.Uploads = append(rc.Uploads, u)
			}
		}
		return c.Next()
	}
}

func save(c *fiber.Ctx, store storage.StorageService, field string, fh *multipart.FileHeader) (media.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Upload{}, err
	}
	defer f.Close()

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	url, err := store.Upload(c.UserContext(), store.ObjectName(fh.Filename), f, fh.Size, contentType)
	if err != nil {
		return media.Upload{}, err
	}
	return media.Upload{Field: field, Filename: fh.Filename, URL: url}, nil
}

func discardUploads(c *fiber.Ctx, store storage.StorageService, uploads []media.Upload, logger *zap.Logger) {
	for _, u := range uploads {
		if err := store.Delete(c.UserContext(), u.URL); err != nil {
			logger.Warn("discard upload", zap.String("url", u.URL), zap.Error(err))
		}
	}
}
