// internal/transport/http/file_upload.go
package http

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remindme-service/internal/importer"
	"remindme-service/internal/service"
)

// maxImportBytes caps a single CSV upload.
const maxImportBytes = 5 << 20

// ImportContactsCSV handles a multipart upload with the CSV in the `file` field.
// The raw file is archived when storage is configured; archive failures are
// only logged. Any structural CSV problem rejects the whole file with 400.
func (h *Handler) ImportContactsCSV(c *fiber.Ctx) error {
	uid := userID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		h.log.Info("[UPLOAD] missing file field", zap.String("user_id", uid), zap.Error(err))
		return detail(c, fiber.StatusBadRequest, "File is required")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return detail(c, fiber.StatusBadRequest, "File must be a CSV")
	}
	if fh.Size > maxImportBytes {
		return detail(c, fiber.StatusBadRequest, fmt.Sprintf("File must be at most %d MB", maxImportBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxImportBytes+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(content) > maxImportBytes {
		return detail(c, fiber.StatusBadRequest, fmt.Sprintf("File must be at most %d MB", maxImportBytes>>20))
	}

	if key, err := h.Archiver.Archive(c.UserContext(), uid, content); err != nil {
		h.log.Warn("[UPLOAD] archive failed", zap.String("user_id", uid), zap.Error(err))
	} else if key != "" {
		h.log.Info("[UPLOAD] archived", zap.String("user_id", uid), zap.String("key", key))
	}

	parsed, err := importer.Parse(bytes.NewReader(content))
	if err != nil {
		h.log.Info("[UPLOAD] rejected csv", zap.String("user_id", uid), zap.Error(err))
		return detail(c, fiber.StatusBadRequest, "Error importing CSV: "+err.Error())
	}

	imported, err := h.Contacts.Import(c.UserContext(), uid, parsed.Contacts)
	if err != nil {
		if msg, ok := service.IsValidation(err); ok {
			return detail(c, fiber.StatusBadRequest, "Error importing CSV: "+msg)
		}
		return err
	}

	skipped := parsed.Skipped
	if skipped == nil {
		skipped = []importer.SkippedRow{}
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Successfully imported %d contacts", imported),
		"imported": imported,
		"skipped":  skipped,
	})
}
