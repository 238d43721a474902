// file: internals/features/tasks/model/admin_task_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminTask struct {
	AdminTaskID uuid.UUID `gorm:"column:admin_task_id;type:uuid;primaryKey" json:"admin_task_id"`

	AdminTaskTitle       string  `gorm:"column:admin_task_title;type:varchar(150);not null" json:"admin_task_title"`
	AdminTaskDescription *string `gorm:"column:admin_task_description;type:text" json:"admin_task_description,omitempty"`

	AdminTaskIsActive bool `gorm:"column:admin_task_is_active;not null;default:true" json:"admin_task_is_active"`

	AdminTaskCreatedByUserID uuid.UUID `gorm:"column:admin_task_created_by_user_id;type:uuid;not null" json:"admin_task_created_by_user_id"`

	AdminTaskCreatedAt time.Time      `gorm:"column:admin_task_created_at;autoCreateTime" json:"admin_task_created_at"`
	AdminTaskUpdatedAt time.Time      `gorm:"column:admin_task_updated_at;autoUpdateTime" json:"admin_task_updated_at"`
	AdminTaskDeletedAt gorm.DeletedAt `gorm:"column:admin_task_deleted_at;index" json:"-"`
}

func (AdminTask) TableName() string { return "admin_tasks" }

func (m *AdminTask) BeforeCreate(tx *gorm.DB) error {
	if m.AdminTaskID == uuid.Nil {
		m.AdminTaskID = uuid.New()
	}
	return nil
}

// AdminTaskCompletion is an append-only log row. Completions are never
// edited or deleted, so the checklist history stays trustworthy.
type AdminTaskCompletion struct {
	AdminTaskCompletionID uuid.UUID `gorm:"column:admin_task_completion_id;type:uuid;primaryKey" json:"admin_task_completion_id"`

	AdminTaskCompletionTaskID uuid.UUID `gorm:"column:admin_task_completion_task_id;type:uuid;not null;index" json:"admin_task_completion_task_id"`
	AdminTaskCompletionUserID uuid.UUID `gorm:"column:admin_task_completion_user_id;type:uuid;not null;index" json:"admin_task_completion_user_id"`

	AdminTaskCompletionNotes *string `gorm:"column:admin_task_completion_notes;type:text" json:"admin_task_completion_notes,omitempty"`

	AdminTaskCompletionCompletedAt time.Time `gorm:"column:admin_task_completion_completed_at;not null" json:"admin_task_completion_completed_at"`
	AdminTaskCompletionCreatedAt   time.Time `gorm:"column:admin_task_completion_created_at;autoCreateTime" json:"admin_task_completion_created_at"`
}

func (AdminTaskCompletion) TableName() string { return "admin_task_completions" }

func (m *AdminTaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if m.AdminTaskCompletionID == uuid.Nil {
		m.AdminTaskCompletionID = uuid.New()
	}
	if m.AdminTaskCompletionCompletedAt.IsZero() {
		m.AdminTaskCompletionCompletedAt = time.Now()
	}
	return nil
}
