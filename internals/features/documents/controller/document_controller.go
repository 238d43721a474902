// file: internals/features/documents/controller/document_controller.go
package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/documents/dto"
	model "hoaportal_backend/internals/features/documents/model"
	helper "hoaportal_backend/internals/helpers"
)

// DocumentController handles the shared document/gallery library.
// Files land on local disk under StorageDir and are served statically.
type DocumentController struct {
	DB         *gorm.DB
	StorageDir string
	PublicBase string
}

func NewDocumentController(db *gorm.DB) *DocumentController {
	dir := os.Getenv("DOCUMENT_STORAGE_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	base := os.Getenv("DOCUMENT_PUBLIC_BASE")
	if base == "" {
		base = "/uploads"
	}
	return &DocumentController{DB: db, StorageDir: dir, PublicBase: base}
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// -----------------------------------------
// List (GET /api/u/documents)
// -----------------------------------------
func (h *DocumentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Document{})
	if v := c.Query("category"); v != "" {
		q = q.Where("document_category = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("document_title ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "document_created_at",
		"title":      "document_title",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.Document
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToDocumentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Upload (POST /api/a/documents) - multipart form:
//   file (required), title (required), category (optional)
// Images are re-encoded to WebP; other files are stored as-is.
// -----------------------------------------
func (h *DocumentController) Upload(c *fiber.Ctx) error {
	uploaderID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "title is required")
	}
	category := model.DocumentCategory(c.FormValue("category"))
	if category == "" {
		category = model.DocumentCategoryOther
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	isImage := imageExtensions[ext]

	var relPath string
	if isImage {
		webpBytes, err := helper.ConvertImageToWebP(fileHeader)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		base := strings.TrimSuffix(fileHeader.Filename, ext) + ".webp"
		relPath = helper.GenerateUniqueFilename("gallery", base)
		fullPath := filepath.Join(h.StorageDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if err := os.WriteFile(fullPath, webpBytes, 0o644); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	} else {
		relPath = helper.GenerateUniqueFilename("files", fileHeader.Filename)
		fullPath := filepath.Join(h.StorageDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if err := c.SaveFile(fileHeader, fullPath); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	doc := model.Document{
		DocumentTitle:          title,
		DocumentCategory:       category,
		DocumentFilePath:       relPath,
		DocumentFileURL:        h.PublicBase + "/" + relPath,
		DocumentIsImage:        isImage,
		DocumentUploaderUserID: uploaderID,
	}
	if err := h.DB.Create(&doc).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "document uploaded", dto.ToDocumentResponse(doc))
}

// -----------------------------------------
// Delete (DELETE /api/a/documents/:id)
// Soft-deletes the row; the stored file is removed best-effort.
// -----------------------------------------
func (h *DocumentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var doc model.Document
	if err := h.DB.First(&doc, "document_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "document not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&doc).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	_ = os.Remove(filepath.Join(h.StorageDir, doc.DocumentFilePath))

	return helper.JsonDeleted(c, "document deleted", fiber.Map{"document_id": doc.DocumentID})
}
