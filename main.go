package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/go-sql-driver/mysql"

	"Workly/CronJobs"
	"Workly/FiberConfig"
	"Workly/Models"
	"Workly/Stats"
	"Workly/Telegram"
)

func main() {
	// Load .env if present (do not overwrite already-set environment variables).
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	// Validate required environment variables
	requiredEnvVars := []string{"BOT_TOKEN", "JWT_SECRET"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	Models.Connect()

	opts := Stats.DefaultReportOptions()
	if os.Getenv("REPORT_WORST_FIRST") == "1" {
		opts.WorstFirst = true
	}

	bot := Telegram.NewClient(os.Getenv("BOT_TOKEN"))

	scheduler := CronJobs.NewReportScheduler(Models.DB, bot, opts)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start report scheduler:", err)
	}
	defer scheduler.Stop()

	FiberConfig.FiberConfig(bot, opts)
}
