package Controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Workly/Models"
	"Workly/Stats"
	"Workly/Telegram"
)

// WorkerController handles the admin worker roster endpoints
type WorkerController struct {
	DB  *gorm.DB
	Bot *Telegram.Client
}

func NewWorkerController(db *gorm.DB, bot *Telegram.Client) *WorkerController {
	return &WorkerController{DB: db, Bot: bot}
}

type createWorkerRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Phone    string `json:"phone" validate:"required,len=12,number,startswith=998"`
	BranchID uint   `json:"branch_id" validate:"required"`
	RoleID   uint   `json:"role_id" validate:"required"`
}

type adminPhoneRequest struct {
	Phone string `json:"phone" validate:"required,len=12,number,startswith=998"`
}

// GetWorkers lists active workers, optionally filtered by branch.
func (c *WorkerController) GetWorkers(ctx *fiber.Ctx) error {
	var branchID *uint
	if raw := ctx.Query("branch_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
		}
		value := uint(id)
		branchID = &value
	}

	workers, err := Models.GetAllWorkers(c.DB, branchID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve workers"})
	}
	return ctx.JSON(workers)
}

// CreateWorker registers a worker. A duplicate phone returns the existing
// owner's details so the admin can see who holds the number.
func (c *WorkerController) CreateWorker(ctx *fiber.Ctx) error {
	var input createWorkerRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	worker, err := Models.CreateWorker(c.DB, input.FullName, input.Phone, input.BranchID, input.RoleID)
	if errors.Is(err, Models.ErrPhoneTaken) {
		var existing Models.Worker
		c.DB.Preload("Branch").Preload("Role").Where("phone = ?", input.Phone).First(&existing)
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "This phone number is already registered",
			"worker": existing,
		})
	}
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch or role not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create worker"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(worker)
}

// DeleteWorker deactivates a worker, keeping the row and its history.
func (c *WorkerController) DeleteWorker(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid worker ID"})
	}

	if err := Models.DeactivateWorker(c.DB, uint(id)); err != nil {
		if errors.Is(err, Models.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete worker"})
	}
	return ctx.JSON(fiber.Map{"message": "Worker deleted successfully"})
}

// GetAdmins lists workers holding the admin flag.
func (c *WorkerController) GetAdmins(ctx *fiber.Ctx) error {
	admins, err := Models.GetAdmins(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve admins"})
	}
	return ctx.JSON(admins)
}

// GrantAdmin promotes a worker by phone and notifies them in chat when bound.
func (c *WorkerController) GrantAdmin(ctx *fiber.Ctx) error {
	var input adminPhoneRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	worker, err := Models.GetWorkerByPhone(c.DB, input.Phone)
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No worker with this phone number"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grant admin"})
	}
	if worker.IsAdmin {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This worker is already an admin"})
	}

	if err := Models.GrantAdmin(c.DB, input.Phone); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grant admin"})
	}

	if c.Bot != nil && worker.ChatID != 0 {
		notice := fmt.Sprintf("<b>%s</b> - sizga admin huquqi berildi!", worker.FullName)
		if err := c.Bot.SendMessage(worker.ChatID, notice); err != nil {
			log.Println("Error notifying new admin:", err)
		}
	}

	return ctx.JSON(fiber.Map{"message": "Admin granted", "phone": Stats.FormatPhone(input.Phone)})
}

// RevokeAdmin demotes an admin by phone.
func (c *WorkerController) RevokeAdmin(ctx *fiber.Ctx) error {
	var input adminPhoneRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.RevokeAdmin(c.DB, input.Phone); err != nil {
		if errors.Is(err, Models.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No admin with this phone number"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke admin"})
	}
	return ctx.JSON(fiber.Map{"message": "Admin revoked"})
}
