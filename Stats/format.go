package Stats

import (
	"fmt"
	"strings"
	"time"

	"Workly/Models"
)

// Status bands for the percentage classification. The exact cut-offs are a
// product setting, not a fixed rule.
type Thresholds struct {
	Good int // at or above: "good"
	Warn int // at or above: "warning"
	Poor int // at or above: "poor"; below: "none"
}

func DefaultThresholds() Thresholds {
	return Thresholds{Good: 80, Warn: 50, Poor: 1}
}

// ReportOptions controls report rendering. WorstFirst flips the order of the
// "needs attention" list; the default (false) reproduces the long-standing
// behavior of listing the highest-percentage underperformers first.
type ReportOptions struct {
	WorstFirst bool
	Bands      Thresholds
}

func DefaultReportOptions() ReportOptions {
	return ReportOptions{WorstFirst: false, Bands: DefaultThresholds()}
}

const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusPoor    = "poor"
	StatusNone    = "none"
)

// StatusOf classifies a percentage into one of the four bands.
func (t Thresholds) StatusOf(percentage int) string {
	switch {
	case percentage >= t.Good:
		return StatusGood
	case percentage >= t.Warn:
		return StatusWarning
	case percentage >= t.Poor:
		return StatusPoor
	default:
		return StatusNone
	}
}

var statusEmoji = map[string]string{
	StatusGood:    "✅",
	StatusWarning: "✅",
	StatusPoor:    "⚠️",
	StatusNone:    "❌",
}

func (t Thresholds) Emoji(percentage int) string {
	return statusEmoji[t.StatusOf(percentage)]
}

var uzbekWeekdays = map[time.Weekday]string{
	time.Monday:    "Dushanba",
	time.Tuesday:   "Seshanba",
	time.Wednesday: "Chorshanba",
	time.Thursday:  "Payshanba",
	time.Friday:    "Juma",
	time.Saturday:  "Shanba",
	time.Sunday:    "Yakshanba",
}

var uzbekMonths = map[time.Month]string{
	time.January:   "Yanvar",
	time.February:  "Fevral",
	time.March:     "Mart",
	time.April:     "Aprel",
	time.May:       "May",
	time.June:      "Iyun",
	time.July:      "Iyul",
	time.August:    "Avgust",
	time.September: "Sentabr",
	time.October:   "Oktabr",
	time.November:  "Noyabr",
	time.December:  "Dekabr",
}

var taskTypeHeaders = map[string]string{
	Models.TaskTypeDaily:   "🔴 HAR KUNLIK VAZIFALAR:",
	Models.TaskTypeMonday:  "🔵 HAR DUSHANBA VAZIFALAR:",
	Models.TaskTypeMonthly: "🟢 HAR OY VAZIFALAR:",
}

// TaskTypeLabel is the short label used in admin listings.
var taskTypeLabels = map[string]string{
	Models.TaskTypeDaily:   "🔴 HAR KUNLIK",
	Models.TaskTypeMonday:  "🔵 HAR DUSHANBA",
	Models.TaskTypeMonthly: "🟢 HAR OY",
}

func TaskTypeLabel(taskType string) string {
	if label, ok := taskTypeLabels[taskType]; ok {
		return label
	}
	return taskType
}

// FormatDate renders a date in the Uzbek style, e.g. "1-Mart, 2024-yil (Juma)".
func FormatDate(d time.Time) string {
	return fmt.Sprintf("%d-%s, %d-yil (%s)",
		d.Day(), uzbekMonths[d.Month()], d.Year(), uzbekWeekdays[d.Weekday()])
}

func FormatPhone(phone string) string {
	return "+" + phone
}

// FormatWorkerTasks renders a worker's task list for a date, grouped by
// recurrence class, with an incomplete-count footer.
func FormatWorkerTasks(worker *Models.Worker, tasks []Models.DueTask, date time.Time) string {
	var b strings.Builder

	b.WriteString("<b>📋 SIZNING VAZIFALARINGIZ</b>\n\n")
	b.WriteString(fmt.Sprintf("Filial: %s\n", workerBranchName(worker)))
	b.WriteString(fmt.Sprintf("Rol: %s\n", workerRoleName(worker)))
	b.WriteString(fmt.Sprintf("Sana: %s\n\n", FormatDate(date)))

	incomplete := 0
	for _, taskType := range []string{Models.TaskTypeDaily, Models.TaskTypeMonday, Models.TaskTypeMonthly} {
		wroteHeader := false
		n := 0
		for _, due := range tasks {
			if due.Task.TaskType != taskType {
				continue
			}
			if !wroteHeader {
				b.WriteString(taskTypeHeaders[taskType] + "\n")
				wroteHeader = true
			}
			n++
			mark := "❗"
			if due.Completed {
				mark = "✅"
			} else {
				incomplete++
			}
			b.WriteString(fmt.Sprintf("%d. [%s] %s\n", n, mark, due.Task.Text))
		}
		if wroteHeader {
			b.WriteString("\n")
		}
	}

	if incomplete > 0 {
		b.WriteString(fmt.Sprintf("Jami bajarilmagan: %d ta vazifa", incomplete))
	} else {
		b.WriteString("✅ Barcha vazifalar bajarildi!")
	}
	return b.String()
}

// FormatCompletionCaption renders the evidence caption forwarded to the
// branch group.
func FormatCompletionCaption(worker *Models.Worker, taskText string, completedAt time.Time) string {
	timeStr := fmt.Sprintf("%d-%s-%d, %02d:%02d",
		completedAt.Day(), uzbekMonths[completedAt.Month()], completedAt.Year(),
		completedAt.Hour(), completedAt.Minute())

	return fmt.Sprintf(`<b>📌 VAZIFA BAJARILDI</b>

🏪 Filial: %s
👤 Ishchi: %s
📱 Telefon: %s
🎭 Rol: %s
📝 Vazifa: %s
⏰ Bajarilgan vaqt: %s`,
		workerBranchName(worker), worker.FullName, FormatPhone(worker.Phone),
		workerRoleName(worker), taskText, timeStr)
}

// FormatDailyReport renders the branch compliance report: per-role blocks
// with per-worker banding lines, overall totals, the top-3 ranking (only with
// three or more ranked workers) and the below-threshold attention list capped
// at three entries.
func FormatDailyReport(branchName string, roleStats []RoleStat, workerStats []WorkerStat, date time.Time, opts ReportOptions) string {
	var b strings.Builder

	b.WriteString("<b>📊 KUNLIK HISOBOT</b>\n")
	b.WriteString(fmt.Sprintf("📅 Sana: %s\n", FormatDate(date)))
	b.WriteString(fmt.Sprintf("🏪 Filial: %s\n\n", branchName))

	totalWorkers := 0
	totalTasks := 0
	totalCompleted := 0

	for _, role := range roleStats {
		if role.WorkerCount == 0 {
			continue
		}
		totalWorkers += role.WorkerCount
		totalTasks += role.Total
		totalCompleted += role.Completed

		b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
		b.WriteString(fmt.Sprintf("👨‍💼 %s (%d ta ishchi)\n", strings.ToUpper(role.RoleName), role.WorkerCount))
		b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n\n")

		for _, worker := range workerStats {
			if worker.RoleName != role.RoleName {
				continue
			}
			b.WriteString(fmt.Sprintf("%s %s - %d/%d (%d%%)\n",
				opts.Bands.Emoji(worker.Percentage), worker.FullName,
				worker.Completed, worker.Total, worker.Percentage))
		}

		b.WriteString(fmt.Sprintf("\nJAMI: %d/%d (%d%%)\n\n", role.Completed, role.Total, role.Percentage))
	}

	overall := Percentage(totalCompleted, totalTasks)

	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("📈 UMUMIY NATIJA\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString(fmt.Sprintf("Jami ishchilar: %d ta\n", totalWorkers))
	b.WriteString(fmt.Sprintf("Jami vazifalar: %d ta\n", totalTasks))
	b.WriteString(fmt.Sprintf("Bajarildi: %d ta (%d%%)\n", totalCompleted, overall))
	b.WriteString(fmt.Sprintf("Bajarilmagan: %d ta (%d%%)\n\n", totalTasks-totalCompleted, 100-overall))

	ranked := RankDescending(workerStats)

	if len(ranked) >= 3 {
		b.WriteString("🌟 TOP-3 ISHCHILAR:\n")
		for i, worker := range ranked[:3] {
			b.WriteString(fmt.Sprintf("%d. %s (%d%%)\n", i+1, worker.FullName, worker.Percentage))
		}
		b.WriteString("\n")
	}

	low := LowPerformers(ranked, opts.Bands.Warn, opts.WorstFirst)
	if len(low) > 0 {
		if len(low) > 3 {
			low = low[:3]
		}
		b.WriteString("📉 E'TIBOR BERISH KERAK:\n")
		for i, worker := range low {
			b.WriteString(fmt.Sprintf("%d. %s (%d%%)\n", i+1, worker.FullName, worker.Percentage))
		}
	}

	return b.String()
}

func workerBranchName(w *Models.Worker) string {
	if w.Branch == nil {
		return ""
	}
	return w.Branch.Name
}

func workerRoleName(w *Models.Worker) string {
	if w.Role == nil {
		return ""
	}
	return w.Role.Name
}
