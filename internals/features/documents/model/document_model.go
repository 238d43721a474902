// file: internals/features/documents/model/document_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentCategory string

const (
	DocumentCategoryBylaws  DocumentCategory = "bylaws"
	DocumentCategoryMinutes DocumentCategory = "minutes"
	DocumentCategoryNotice  DocumentCategory = "notice"
	DocumentCategoryGallery DocumentCategory = "gallery"
	DocumentCategoryOther   DocumentCategory = "other"
)

type Document struct {
	DocumentID uuid.UUID `gorm:"column:document_id;type:uuid;primaryKey" json:"document_id"`

	DocumentTitle    string           `gorm:"column:document_title;type:varchar(150);not null" json:"document_title"`
	DocumentCategory DocumentCategory `gorm:"column:document_category;type:varchar(20);not null;default:'other'" json:"document_category"`

	// Local storage path plus the public URL the frontend loads.
	DocumentFilePath string `gorm:"column:document_file_path;type:text;not null" json:"-"`
	DocumentFileURL  string `gorm:"column:document_file_url;type:text;not null" json:"document_file_url"`

	DocumentIsImage bool `gorm:"column:document_is_image;not null;default:false" json:"document_is_image"`

	DocumentUploaderUserID uuid.UUID `gorm:"column:document_uploader_user_id;type:uuid;not null;index" json:"document_uploader_user_id"`

	DocumentCreatedAt time.Time      `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
	DocumentUpdatedAt time.Time      `gorm:"column:document_updated_at;autoUpdateTime" json:"document_updated_at"`
	DocumentDeletedAt gorm.DeletedAt `gorm:"column:document_deleted_at;index" json:"-"`
}

func (Document) TableName() string { return "documents" }

func (m *Document) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentID == uuid.Nil {
		m.DocumentID = uuid.New()
	}
	return nil
}
