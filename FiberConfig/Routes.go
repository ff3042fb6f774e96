package FiberConfig

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"Workly/Controllers"
	"Workly/Models"
	"Workly/Stats"
	"Workly/Telegram"
	"Workly/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, bot *Telegram.Client, opts Stats.ReportOptions) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	workerController := Controllers.NewWorkerController(db, bot)
	taskController := Controllers.NewTaskController(db)
	completionController := Controllers.NewCompletionController(db, bot)
	reportController := Controllers.NewReportController(db, bot, opts)

	// API group
	api := app.Group("/api")

	// Session routes
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Post("/bind", authController.BindChat)
	api.Get("/me", middleware.Verify(false), authController.Me)
	api.Post("/password", middleware.Verify(true), authController.SetPassword)

	// Worker-facing routes
	api.Get("/tasks/due", middleware.Verify(false), completionController.GetDueTasks)
	api.Post("/completions", middleware.Verify(false), completionController.CompleteTask)

	// Task catalog - admin only
	tasks := api.Group("/tasks", middleware.Verify(true))
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Delete("/:id", taskController.DeleteTask)

	// Worker roster - admin only
	workers := api.Group("/workers", middleware.Verify(true))
	workers.Get("/", workerController.GetWorkers)
	workers.Post("/", workerController.CreateWorker)
	workers.Delete("/:id", workerController.DeleteWorker)

	// Admin management
	admins := api.Group("/admins", middleware.Verify(true))
	admins.Get("/", workerController.GetAdmins)
	admins.Post("/", workerController.GrantAdmin)
	admins.Delete("/", workerController.RevokeAdmin)

	// Reports
	api.Get("/summary", middleware.Verify(true), reportController.GetSummary)
	reports := api.Group("/reports", middleware.Verify(true))
	reports.Post("/send", reportController.SendReports)
	reports.Get("/:branch_id", reportController.GetDailyReport)
	reports.Get("/:branch_id/export", reportController.ExportReport)
	reports.Get("/:branch_id/logs", reportController.GetReportLogs)

	// Dashboard page
	app.Get("/", func(c *fiber.Ctx) error {
		var branchCount, roleCount, workerCount, taskCount, adminCount int64
		db.Model(&Models.Branch{}).Count(&branchCount)
		db.Model(&Models.Role{}).Count(&roleCount)
		db.Model(&Models.Worker{}).Where("is_active = ?", true).Count(&workerCount)
		db.Model(&Models.Task{}).Where("is_active = ?", true).Count(&taskCount)
		db.Model(&Models.Worker{}).Where("is_admin = ?", true).Count(&adminCount)

		return c.Render("index", fiber.Map{
			"Branches": branchCount,
			"Roles":    roleCount,
			"Workers":  workerCount,
			"Tasks":    taskCount,
			"Admins":   adminCount,
		})
	})
}

func FiberConfig(bot *Telegram.Client, opts Stats.ReportOptions) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
	}))

	// Serve archived evidence files
	app.Static("/uploads", "./uploads", fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	SetupRoutes(app, Models.DB, bot, opts)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
