package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"Workly/Stats"
	"Workly/Telegram"
)

// ReportScheduler delivers the per-branch compliance report on a schedule.
type ReportScheduler struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	bot           *Telegram.Client
	opts          Stats.ReportOptions
	jobID         cron.EntryID
}

// NewReportScheduler creates a scheduler for nightly report delivery.
func NewReportScheduler(db *gorm.DB, bot *Telegram.Client, opts Stats.ReportOptions) *ReportScheduler {
	return &ReportScheduler{
		cronScheduler: cron.New(cron.WithSeconds()),
		db:            db,
		bot:           bot,
		opts:          opts,
	}
}

// Start schedules the nightly run. At midnight the job reports on the day
// that just ended.
func (s *ReportScheduler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 0 * * *", func() {
		log.Println("Running scheduled daily report delivery")
		s.runDailyReport()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Report scheduler started - will run daily at 00:00")
	return nil
}

// Stop terminates the scheduler
func (s *ReportScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Report scheduler stopped")
	}
}

// UpdateSchedule changes the delivery schedule.
// Format: "0 0 0 * * *" = every day at midnight
func (s *ReportScheduler) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled daily report delivery")
		s.runDailyReport()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Report schedule updated to: %s\n", schedule)
	return nil
}

// RunManualReport delivers the report for a specific date on demand.
func (s *ReportScheduler) RunManualReport(date time.Time) {
	log.Println("Running manual report delivery for", date.Format("2006-01-02"))
	s.bot.SendDailyStatistics(s.db, date, s.opts)
}

func (s *ReportScheduler) runDailyReport() {
	yesterday := time.Now().AddDate(0, 0, -1)
	s.bot.SendDailyStatistics(s.db, yesterday, s.opts)
}
