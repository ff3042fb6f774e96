package Controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Workly/Models"
)

// TaskController handles the admin task catalog endpoints
type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

type createTaskRequest struct {
	Text     string `json:"text" validate:"required,min=3"`
	TaskType string `json:"task_type" validate:"required,oneof=daily monday monthly"`
	RoleID   uint   `json:"role_id" validate:"required"`
	BranchID uint   `json:"branch_id" validate:"required"`
}

// GetTasks lists active tasks with optional branch/role/type filters.
func (c *TaskController) GetTasks(ctx *fiber.Ctx) error {
	var filter Models.TaskFilter

	if raw := ctx.Query("branch_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
		}
		value := uint(id)
		filter.BranchID = &value
	}
	if raw := ctx.Query("role_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
		}
		value := uint(id)
		filter.RoleID = &value
	}
	if raw := ctx.Query("task_type"); raw != "" {
		if !Models.IsValidTaskType(raw) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task type"})
		}
		filter.TaskType = &raw
	}

	tasks, err := Models.GetAllTasks(c.DB, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

// GetTask retrieves one task by ID, including retired ones.
func (c *TaskController) GetTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := Models.GetTask(c.DB, uint(id))
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve task"})
	}
	return ctx.JSON(task)
}

// CreateTask adds a task for one (branch, role) pair.
func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var input createTaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := Models.CreateTask(c.DB, input.Text, input.TaskType, input.RoleID, input.BranchID)
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch or role not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// DeleteTask retires a task. History stays.
func (c *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if err := Models.RetireTask(c.DB, uint(id)); err != nil {
		if errors.Is(err, Models.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete task"})
	}
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}
