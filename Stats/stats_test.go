package Stats

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Workly/Models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:stats_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(&Models.Branch{}, &Models.Role{}, &Models.Worker{},
		&Models.Task{}, &Models.GroupChat{}, &Models.TaskCompletion{}, &Models.ReportLog{})
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedBranchRole(t *testing.T, db *gorm.DB, branchName, roleName string) (Models.Branch, Models.Role) {
	t.Helper()
	branch := Models.Branch{Name: branchName}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("creating branch: %v", err)
	}
	role := Models.Role{Name: roleName}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("creating role: %v", err)
	}
	return branch, role
}

func seedWorker(t *testing.T, db *gorm.DB, name, phone string, branchID, roleID uint) Models.Worker {
	t.Helper()
	worker, err := Models.CreateWorker(db, name, phone, branchID, roleID)
	if err != nil {
		t.Fatalf("creating worker: %v", err)
	}
	return *worker
}

func seedTask(t *testing.T, db *gorm.DB, text, taskType string, roleID, branchID uint) Models.Task {
	t.Helper()
	task, err := Models.CreateTask(db, text, taskType, roleID, branchID)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return *task
}

func TestDailyStatisticsRoleSummary(t *testing.T) {
	db := testDB(t)
	branch, oshpaz := seedBranchRole(t, db, "Gelyon", "Oshpaz")

	worker1 := seedWorker(t, db, "Aziz", "998900000001", branch.ID, oshpaz.ID)
	worker2 := seedWorker(t, db, "Bobur", "998900000002", branch.ID, oshpaz.ID)

	task1 := seedTask(t, db, "Vazifa 1", Models.TaskTypeDaily, oshpaz.ID, branch.ID)
	task2 := seedTask(t, db, "Vazifa 2", Models.TaskTypeDaily, oshpaz.ID, branch.ID)

	date := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

	// Worker 1 completes both tasks, worker 2 completes none.
	if err := Models.CompleteTask(db, task1.ID, worker1.ID, date, "photo", "f1", ""); err != nil {
		t.Fatalf("completing: %v", err)
	}
	if err := Models.CompleteTask(db, task2.ID, worker1.ID, date, "photo", "f2", ""); err != nil {
		t.Fatalf("completing: %v", err)
	}
	_ = worker2

	roleStats, workerStats, err := DailyStatistics(db, branch.ID, date)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}

	if len(roleStats) != 1 {
		t.Fatalf("got %d role rows, want 1", len(roleStats))
	}
	role := roleStats[0]
	if role.WorkerCount != 2 || role.Total != 4 || role.Completed != 2 || role.Percentage != 50 {
		t.Fatalf("unexpected role summary: %+v", role)
	}

	if len(workerStats) != 2 {
		t.Fatalf("got %d worker rows, want 2", len(workerStats))
	}
	// Ordered by role name then full name.
	if workerStats[0].FullName != "Aziz" || workerStats[0].Percentage != 100 {
		t.Fatalf("unexpected first worker row: %+v", workerStats[0])
	}
	if workerStats[1].FullName != "Bobur" || workerStats[1].Percentage != 0 {
		t.Fatalf("unexpected second worker row: %+v", workerStats[1])
	}
}

func TestDailyStatisticsExcludesEmptyRolesAndOtherBranches(t *testing.T) {
	db := testDB(t)
	branch, oshpaz := seedBranchRole(t, db, "Gelyon", "Oshpaz")
	kassa := Models.Role{Name: "Kassa"}
	if err := db.Create(&kassa).Error; err != nil {
		t.Fatalf("creating role: %v", err)
	}
	other := Models.Branch{Name: "Vogzal"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("creating branch: %v", err)
	}

	seedWorker(t, db, "Aziz", "998900000001", branch.ID, oshpaz.ID)
	seedTask(t, db, "Oshpaz vazifasi", Models.TaskTypeDaily, oshpaz.ID, branch.ID)

	// A task for a role with no workers in the branch, and a worker in a
	// different branch. Neither may surface in this branch's report.
	seedTask(t, db, "Kassa vazifasi", Models.TaskTypeDaily, kassa.ID, branch.ID)
	seedWorker(t, db, "Chetdagi", "998900000009", other.ID, oshpaz.ID)

	roleStats, workerStats, err := DailyStatistics(db, branch.ID, time.Now())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if len(roleStats) != 1 || roleStats[0].RoleID != oshpaz.ID {
		t.Fatalf("unexpected role rows: %+v", roleStats)
	}
	if len(workerStats) != 1 || workerStats[0].FullName != "Aziz" {
		t.Fatalf("unexpected worker rows: %+v", workerStats)
	}
}

func TestDailyStatisticsUnknownBranch(t *testing.T) {
	db := testDB(t)
	_, _, err := DailyStatistics(db, 42, time.Now())
	if !errors.Is(err, Models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{7, 8, 88},
	}
	for _, tc := range cases {
		if got := Percentage(tc.completed, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestRankDescending(t *testing.T) {
	stats := []WorkerStat{
		{FullName: "A", Percentage: 40},
		{FullName: "B", Percentage: 90},
		{FullName: "C", Percentage: 40},
		{FullName: "D", Percentage: 75},
	}
	ranked := RankDescending(stats)

	if ranked[0].FullName != "B" || ranked[1].FullName != "D" {
		t.Fatalf("unexpected head of ranking: %+v", ranked[:2])
	}
	// Stable: equal percentages keep input order.
	if ranked[2].FullName != "A" || ranked[3].FullName != "C" {
		t.Fatalf("ties reordered: %+v", ranked[2:])
	}
	// Input untouched.
	if stats[0].FullName != "A" {
		t.Fatal("input slice was mutated")
	}
}

func TestLowPerformers(t *testing.T) {
	ranked := []WorkerStat{
		{FullName: "B", Percentage: 90},
		{FullName: "D", Percentage: 45},
		{FullName: "A", Percentage: 30},
		{FullName: "C", Percentage: 10},
	}

	low := LowPerformers(ranked, 50, false)
	if len(low) != 3 {
		t.Fatalf("got %d low performers, want 3", len(low))
	}
	// Default order keeps the descending ranking.
	if low[0].FullName != "D" || low[1].FullName != "A" || low[2].FullName != "C" {
		t.Fatalf("unexpected default order: %+v", low)
	}

	worst := LowPerformers(ranked, 50, true)
	if worst[0].FullName != "C" || worst[2].FullName != "D" {
		t.Fatalf("unexpected worst-first order: %+v", worst)
	}
}

func TestStatusBands(t *testing.T) {
	bands := DefaultThresholds()
	cases := []struct {
		percentage int
		status     string
		emoji      string
	}{
		{100, StatusGood, "✅"},
		{80, StatusGood, "✅"},
		{79, StatusWarning, "✅"},
		{50, StatusWarning, "✅"},
		{49, StatusPoor, "⚠️"},
		{1, StatusPoor, "⚠️"},
		{0, StatusNone, "❌"},
	}
	for _, tc := range cases {
		if got := bands.StatusOf(tc.percentage); got != tc.status {
			t.Fatalf("StatusOf(%d) = %s, want %s", tc.percentage, got, tc.status)
		}
		if got := bands.Emoji(tc.percentage); got != tc.emoji {
			t.Fatalf("Emoji(%d) = %s, want %s", tc.percentage, got, tc.emoji)
		}
	}
}
