// file: internals/features/tasks/controller/admin_task_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/tasks/dto"
	model "hoaportal_backend/internals/features/tasks/model"
	helper "hoaportal_backend/internals/helpers"
)

// AdminTaskController manages the recurring-chore checklist board members
// share (file the tax form, renew the insurance policy, ...). There is no
// scheduler: completions are logged manually and the list shows when each
// task was last done.
type AdminTaskController struct {
	DB *gorm.DB
}

func NewAdminTaskController(db *gorm.DB) *AdminTaskController {
	return &AdminTaskController{DB: db}
}

// -----------------------------------------
// List (GET /api/u/tasks)
// -----------------------------------------
func (h *AdminTaskController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.AdminTask{})
	if v := c.Query("active"); v != "" {
		q = q.Where("admin_task_is_active = ?", v == "true")
	}

	var tasks []model.AdminTask
	if err := q.Order("admin_task_created_at ASC").Find(&tasks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.AdminTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		var last model.AdminTaskCompletion
		var lastAt *time.Time
		err := h.DB.
			Where("admin_task_completion_task_id = ?", t.AdminTaskID).
			Order("admin_task_completion_completed_at DESC").
			First(&last).Error
		if err == nil {
			lastAt = &last.AdminTaskCompletionCompletedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		out = append(out, dto.ToAdminTaskResponse(t, lastAt))
	}
	return helper.JsonOK(c, "", out)
}

// -----------------------------------------
// Create (POST /api/a/tasks)
// -----------------------------------------
func (h *AdminTaskController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var in dto.AdminTaskCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	task := model.AdminTask{
		AdminTaskTitle:           in.AdminTaskTitle,
		AdminTaskDescription:     in.AdminTaskDescription,
		AdminTaskIsActive:        true,
		AdminTaskCreatedByUserID: userID,
	}
	if err := h.DB.Create(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "task created", dto.ToAdminTaskResponse(task, nil))
}

// -----------------------------------------
// Update (PUT /api/a/tasks/:id)
// -----------------------------------------
func (h *AdminTaskController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.AdminTaskUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var task model.AdminTask
	if err := h.DB.First(&task, "admin_task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "task not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.AdminTaskTitle != nil {
		task.AdminTaskTitle = *in.AdminTaskTitle
	}
	if in.AdminTaskDescription != nil {
		task.AdminTaskDescription = in.AdminTaskDescription
	}
	if in.AdminTaskIsActive != nil {
		task.AdminTaskIsActive = *in.AdminTaskIsActive
	}
	if err := h.DB.Save(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "task updated", dto.ToAdminTaskResponse(task, nil))
}

// -----------------------------------------
// Delete (DELETE /api/a/tasks/:id)
// Soft delete; the completion log stays.
// -----------------------------------------
func (h *AdminTaskController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.Delete(&model.AdminTask{}, "admin_task_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "task not found")
	}
	return helper.JsonDeleted(c, "task deleted", fiber.Map{"admin_task_id": id})
}

// -----------------------------------------
// Complete (POST /api/a/tasks/:id/complete)
// -----------------------------------------
func (h *AdminTaskController) Complete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.AdminTaskCompleteDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
		}
		if err := helper.Validate.Struct(in); err != nil {
			return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
		}
	}

	var task model.AdminTask
	if err := h.DB.First(&task, "admin_task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "task not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	completion := model.AdminTaskCompletion{
		AdminTaskCompletionTaskID: task.AdminTaskID,
		AdminTaskCompletionUserID: userID,
		AdminTaskCompletionNotes:  in.Notes,
	}
	if err := h.DB.Create(&completion).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "task completed", dto.ToAdminTaskCompletionResponse(completion))
}

// -----------------------------------------
// Completions (GET /api/a/tasks/:id/completions)
// -----------------------------------------
func (h *AdminTaskController) Completions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var list []model.AdminTaskCompletion
	if err := h.DB.
		Where("admin_task_completion_task_id = ?", id).
		Order("admin_task_completion_completed_at DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToAdminTaskCompletionResponses(list))
}
