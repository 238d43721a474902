// file: internals/features/documents/dto/document_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/documents/model"
)

type DocumentResponse struct {
	DocumentID       uuid.UUID `json:"document_id"`
	DocumentTitle    string    `json:"document_title"`
	DocumentCategory string    `json:"document_category"`
	DocumentFileURL  string    `json:"document_file_url"`
	DocumentIsImage  bool      `json:"document_is_image"`
	UploaderUserID   uuid.UUID `json:"uploader_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToDocumentResponse(m model.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       m.DocumentID,
		DocumentTitle:    m.DocumentTitle,
		DocumentCategory: string(m.DocumentCategory),
		DocumentFileURL:  m.DocumentFileURL,
		DocumentIsImage:  m.DocumentIsImage,
		UploaderUserID:   m.DocumentUploaderUserID,
		CreatedAt:        m.DocumentCreatedAt,
	}
}

func ToDocumentResponses(list []model.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToDocumentResponse(m))
	}
	return out
}
