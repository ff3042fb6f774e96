package Models

import "time"

// Task recurrence classes. Daily tasks are due every day, monday tasks on
// Mondays, monthly tasks on the first day of the month.
const (
	TaskTypeDaily   = "daily"
	TaskTypeMonday  = "monday"
	TaskTypeMonthly = "monthly"
)

// ActiveTaskTypes returns the recurrence classes due on the given date.
func ActiveTaskTypes(d time.Time) []string {
	types := []string{TaskTypeDaily}
	if d.Weekday() == time.Monday {
		types = append(types, TaskTypeMonday)
	}
	if d.Day() == 1 {
		types = append(types, TaskTypeMonthly)
	}
	return types
}

// TaskTypeOrder gives the stable display ordering: daily, monday, monthly.
func TaskTypeOrder(taskType string) int {
	switch taskType {
	case TaskTypeDaily:
		return 0
	case TaskTypeMonday:
		return 1
	case TaskTypeMonthly:
		return 2
	}
	return 3
}

// IsValidTaskType reports whether taskType is one of the known classes.
func IsValidTaskType(taskType string) bool {
	return TaskTypeOrder(taskType) < 3
}

// DateOnly truncates a timestamp to the calendar date used as the completion
// period key.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
