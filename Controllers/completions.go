package Controllers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Workly/Models"
	"Workly/Stats"
	"Workly/Telegram"
)

// CompletionController handles the worker-facing due-task view and evidence
// submission.
type CompletionController struct {
	DB  *gorm.DB
	Bot *Telegram.Client
}

func NewCompletionController(db *gorm.DB, bot *Telegram.Client) *CompletionController {
	return &CompletionController{DB: db, Bot: bot}
}

type completeTaskRequest struct {
	TaskID      uint   `json:"task_id" validate:"required"`
	MediaType   string `json:"media_type" validate:"required,oneof=photo video voice audio document text"`
	MediaFileID string `json:"media_file_id"`
	TextMessage string `json:"text_message"`
}

// GetDueTasks returns the session worker's task list for today (or ?date=).
func (c *CompletionController) GetDueTasks(ctx *fiber.Ctx) error {
	worker := ctx.Locals("worker").(Models.Worker)

	date, err := parseDateQuery(ctx, time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	tasks, err := Models.DueTasks(c.DB, worker.ID, date)
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}

	return ctx.JSON(fiber.Map{
		"date":    Models.DateOnly(date),
		"tasks":   tasks,
		"message": Stats.FormatWorkerTasks(&worker, tasks, date),
	})
}

// CompleteTask records completion evidence for today. The evidence is
// forwarded to the branch group first; a failed delivery is reported to the
// caller and nothing is recorded, so the worker can retry. Resubmission
// within the same day overwrites the earlier evidence.
//
// The endpoint accepts either a JSON body carrying a chat file_id (bot
// gateway) or a multipart upload with a "file" part (dashboard).
func (c *CompletionController) CompleteTask(ctx *fiber.Ctx) error {
	worker := ctx.Locals("worker").(Models.Worker)

	input, err := c.parseEvidence(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := Models.GetTask(c.DB, input.TaskID)
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve task"})
	}
	if !task.IsActive {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	now := time.Now()
	caption := Stats.FormatCompletionCaption(&worker, task.Text, now)

	if c.Bot != nil && worker.BranchID != nil {
		chatID, err := Models.GetGroupChatID(c.DB, *worker.BranchID)
		if errors.Is(err, Models.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No group bound for your branch"})
		}
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve branch group"})
		}

		// Archived uploads have no chat file_id to forward, so the group gets
		// the caption with a pointer to the stored file instead.
		mediaType, text := input.MediaType, input.TextMessage
		if strings.HasPrefix(input.MediaFileID, "uploads"+string(os.PathSeparator)) {
			mediaType = Telegram.MediaText
			text = fmt.Sprintf("📎 Fayl arxivlandi: %s", filepath.Base(input.MediaFileID))
		}

		if err := c.Bot.SendCompletionEvidence(chatID, mediaType, input.MediaFileID, text, caption); err != nil {
			log.Println("Error forwarding evidence to group:", err)
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Could not deliver evidence to the branch group, please try again",
			})
		}
	}

	if err := Models.CompleteTask(c.DB, task.ID, worker.ID, now, input.MediaType, input.MediaFileID, input.TextMessage); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record completion"})
	}

	return ctx.JSON(fiber.Map{
		"message":   "Task marked as completed",
		"task_id":   task.ID,
		"date":      Models.DateOnly(now),
		"delivered": c.Bot != nil,
	})
}

// parseEvidence reads the evidence either from a multipart upload or a JSON
// body. Uploaded photos are archived under uploads/ with a thumbnail.
func (c *CompletionController) parseEvidence(ctx *fiber.Ctx) (*completeTaskRequest, error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		// No upload - plain JSON body with a chat file_id or text evidence.
		var input completeTaskRequest
		if err := ctx.BodyParser(&input); err != nil {
			return nil, err
		}
		if input.MediaType == Telegram.MediaText && input.TextMessage == "" {
			return nil, errors.New("text evidence requires text_message")
		}
		if input.MediaType != Telegram.MediaText && input.MediaFileID == "" {
			return nil, errors.New("media evidence requires media_file_id")
		}
		return &input, nil
	}

	taskID, err := parseUint(ctx.FormValue("task_id"))
	if err != nil || taskID == 0 {
		return nil, errors.New("task_id form field is required with uploads")
	}

	if err := os.MkdirAll("uploads", 0755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(),
		strings.ReplaceAll(filepath.Base(file.Filename), " ", "_"))
	path := filepath.Join("uploads", name)
	if err := ctx.SaveFile(file, path); err != nil {
		return nil, err
	}

	// Archived photos get a thumbnail for the dashboard gallery. Failure to
	// decode just means the upload was not an image.
	if img, err := imaging.Open(path); err == nil {
		thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
		thumbPath := filepath.Join("uploads", "thumb_"+name)
		if err := imaging.Save(thumb, thumbPath); err != nil {
			log.Println("Error saving thumbnail:", err)
		}
		return &completeTaskRequest{
			TaskID:      taskID,
			MediaType:   Telegram.MediaPhoto,
			MediaFileID: path,
		}, nil
	}

	return &completeTaskRequest{
		TaskID:      taskID,
		MediaType:   Telegram.MediaDocument,
		MediaFileID: path,
	}, nil
}

func parseDateQuery(ctx *fiber.Ctx, fallback time.Time) (time.Time, error) {
	raw := ctx.Query("date")
	if raw == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseUint(raw string) (uint, error) {
	var value uint
	_, err := fmt.Sscanf(raw, "%d", &value)
	return value, err
}
