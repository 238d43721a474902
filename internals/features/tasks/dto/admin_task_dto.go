// file: internals/features/tasks/dto/admin_task_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/tasks/model"
)

type AdminTaskCreateDTO struct {
	AdminTaskTitle       string  `json:"admin_task_title" validate:"required,min=3,max=150"`
	AdminTaskDescription *string `json:"admin_task_description" validate:"omitempty,max=2000"`
}

type AdminTaskUpdateDTO struct {
	AdminTaskTitle       *string `json:"admin_task_title" validate:"omitempty,min=3,max=150"`
	AdminTaskDescription *string `json:"admin_task_description" validate:"omitempty,max=2000"`
	AdminTaskIsActive    *bool   `json:"admin_task_is_active"`
}

type AdminTaskCompleteDTO struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type AdminTaskResponse struct {
	AdminTaskID          uuid.UUID  `json:"admin_task_id"`
	AdminTaskTitle       string     `json:"admin_task_title"`
	AdminTaskDescription *string    `json:"admin_task_description,omitempty"`
	AdminTaskIsActive    bool       `json:"admin_task_is_active"`
	CreatedByUserID      uuid.UUID  `json:"created_by_user_id"`
	LastCompletedAt      *time.Time `json:"last_completed_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type AdminTaskCompletionResponse struct {
	AdminTaskCompletionID uuid.UUID `json:"admin_task_completion_id"`
	TaskID                uuid.UUID `json:"task_id"`
	UserID                uuid.UUID `json:"user_id"`
	Notes                 *string   `json:"notes,omitempty"`
	CompletedAt           time.Time `json:"completed_at"`
}

func ToAdminTaskResponse(m model.AdminTask, lastCompletedAt *time.Time) AdminTaskResponse {
	return AdminTaskResponse{
		AdminTaskID:          m.AdminTaskID,
		AdminTaskTitle:       m.AdminTaskTitle,
		AdminTaskDescription: m.AdminTaskDescription,
		AdminTaskIsActive:    m.AdminTaskIsActive,
		CreatedByUserID:      m.AdminTaskCreatedByUserID,
		LastCompletedAt:      lastCompletedAt,
		CreatedAt:            m.AdminTaskCreatedAt,
	}
}

func ToAdminTaskCompletionResponse(m model.AdminTaskCompletion) AdminTaskCompletionResponse {
	return AdminTaskCompletionResponse{
		AdminTaskCompletionID: m.AdminTaskCompletionID,
		TaskID:                m.AdminTaskCompletionTaskID,
		UserID:                m.AdminTaskCompletionUserID,
		Notes:                 m.AdminTaskCompletionNotes,
		CompletedAt:           m.AdminTaskCompletionCompletedAt,
	}
}

func ToAdminTaskCompletionResponses(list []model.AdminTaskCompletion) []AdminTaskCompletionResponse {
	out := make([]AdminTaskCompletionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToAdminTaskCompletionResponse(m))
	}
	return out
}
