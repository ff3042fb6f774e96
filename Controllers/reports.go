package Controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Workly/Models"
	"Workly/Stats"
	"Workly/Telegram"
)

// ReportController handles the admin statistics endpoints
type ReportController struct {
	DB   *gorm.DB
	Bot  *Telegram.Client
	Opts Stats.ReportOptions
}

func NewReportController(db *gorm.DB, bot *Telegram.Client, opts Stats.ReportOptions) *ReportController {
	return &ReportController{DB: db, Bot: bot, Opts: opts}
}

// GetDailyReport returns the computed statistics for one branch, defaulting
// to yesterday's period like the nightly delivery.
func (c *ReportController) GetDailyReport(ctx *fiber.Ctx) error {
	branchID, err := strconv.Atoi(ctx.Params("branch_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	date, err := parseDateQuery(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	branch, err := Models.GetBranch(c.DB, uint(branchID))
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve branch"})
	}

	roleStats, workerStats, err := Stats.DailyStatistics(c.DB, branch.ID, date)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	return ctx.JSON(fiber.Map{
		"branch":  branch.Name,
		"date":    Models.DateOnly(date),
		"roles":   roleStats,
		"workers": workerStats,
		"message": Stats.FormatDailyReport(branch.Name, roleStats, workerStats, date, c.Opts),
	})
}

// SendReports triggers delivery for all branches, defaulting to yesterday.
func (c *ReportController) SendReports(ctx *fiber.Ctx) error {
	if c.Bot == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Bot is not configured"})
	}

	date, err := parseDateQuery(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	c.Bot.SendDailyStatistics(c.DB, date, c.Opts)
	return ctx.JSON(fiber.Map{"message": "Report delivery finished", "date": Models.DateOnly(date)})
}

// ExportReport streams the daily report as an .xlsx download.
func (c *ReportController) ExportReport(ctx *fiber.Ctx) error {
	branchID, err := strconv.Atoi(ctx.Params("branch_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	date, err := parseDateQuery(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	branch, err := Models.GetBranch(c.DB, uint(branchID))
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve branch"})
	}

	roleStats, workerStats, err := Stats.DailyStatistics(c.DB, branch.ID, date)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	file, err := Stats.BuildDailyReportWorkbook(branch.Name, roleStats, workerStats, date, c.Opts)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	filename := fmt.Sprintf("report_%s_%s.xlsx", branch.Name, Models.DateOnly(date))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write workbook"})
	}
	return nil
}

// GetReportLogs lists recent delivery attempts for a branch.
func (c *ReportController) GetReportLogs(ctx *fiber.Ctx) error {
	branchID, err := strconv.Atoi(ctx.Params("branch_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	logs, err := Models.GetReportLogs(c.DB, uint(branchID), 30)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve report logs"})
	}
	return ctx.JSON(logs)
}

// GetSummary returns the system settings overview: branches, roles, worker
// and task counts, admins and group bindings.
func (c *ReportController) GetSummary(ctx *fiber.Ctx) error {
	branches, err := Models.GetAllBranches(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve summary"})
	}
	roles, _ := Models.GetAllRoles(c.DB)
	admins, _ := Models.GetAdmins(c.DB)
	groups, _ := Models.GetAllGroupChats(c.DB)

	var workerCount, taskCount int64
	c.DB.Model(&Models.Worker{}).Where("is_active = ?", true).Count(&workerCount)
	c.DB.Model(&Models.Task{}).Where("is_active = ?", true).Count(&taskCount)

	return ctx.JSON(fiber.Map{
		"branches": branches,
		"roles":    roles,
		"admins":   admins,
		"groups":   groups,
		"workers":  workerCount,
		"tasks":    taskCount,
	})
}
