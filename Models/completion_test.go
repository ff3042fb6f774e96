package Models

import (
	"errors"
	"testing"
	"time"
)

func TestCompleteTaskUpsert(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Gelyon")
	role := makeRole(t, db, "Oshpaz")
	worker := makeWorker(t, db, "Aziz Karimov", "998901234567", branch.ID, role.ID)
	task := makeTask(t, db, "Oshxonani tozalash", TaskTypeDaily, role.ID, branch.ID)

	date := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	err := CompleteTask(db, task.ID, worker.ID, date, "photo", "file-1", "")
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}

	first, err := GetCompletion(db, task.ID, worker.ID, date)
	if err != nil {
		t.Fatalf("fetching first completion: %v", err)
	}
	if first.MediaFileID != "file-1" {
		t.Fatalf("got file id %q, want file-1", first.MediaFileID)
	}

	// Resubmission must overwrite evidence, not duplicate or fail.
	err = CompleteTask(db, task.ID, worker.ID, date, "video", "file-2", "qayta topshirildi")
	if err != nil {
		t.Fatalf("resubmission: %v", err)
	}

	var count int64
	db.Model(&TaskCompletion{}).
		Where("task_id = ? AND worker_id = ? AND completion_date = ?",
			task.ID, worker.ID, DateOnly(date)).
		Count(&count)
	if count != 1 {
		t.Fatalf("got %d rows after resubmission, want 1", count)
	}

	latest, err := GetCompletion(db, task.ID, worker.ID, date)
	if err != nil {
		t.Fatalf("fetching latest completion: %v", err)
	}
	if latest.MediaFileID != "file-2" || latest.MediaType != "video" {
		t.Fatalf("resubmission did not replace evidence: %+v", latest)
	}
	if latest.TextMessage != "qayta topshirildi" {
		t.Fatalf("got text %q", latest.TextMessage)
	}
}

func TestCompleteTaskSeparateDates(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Vogzal")
	role := makeRole(t, db, "Kassa")
	worker := makeWorker(t, db, "Dilnoza Rahimova", "998907654321", branch.ID, role.ID)
	task := makeTask(t, db, "Kassani hisoblash", TaskTypeDaily, role.ID, branch.ID)

	monday := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	if err := CompleteTask(db, task.ID, worker.ID, monday, "text", "", "bajarildi"); err != nil {
		t.Fatalf("monday completion: %v", err)
	}
	if err := CompleteTask(db, task.ID, worker.ID, tuesday, "text", "", "bajarildi"); err != nil {
		t.Fatalf("tuesday completion: %v", err)
	}

	var count int64
	db.Model(&TaskCompletion{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 2 {
		t.Fatalf("got %d rows, want one per date", count)
	}

	done, err := IsCompleted(db, task.ID, worker.ID, monday)
	if err != nil || !done {
		t.Fatalf("monday should be completed: done=%v err=%v", done, err)
	}
	wednesday := tuesday.AddDate(0, 0, 1)
	done, err = IsCompleted(db, task.ID, worker.ID, wednesday)
	if err != nil || done {
		t.Fatalf("wednesday should not be completed: done=%v err=%v", done, err)
	}
}

func TestCompletedTaskIDs(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Marxabo")
	role := makeRole(t, db, "Ofitsiant")
	worker := makeWorker(t, db, "Bobur Aliyev", "998911112233", branch.ID, role.ID)
	taskA := makeTask(t, db, "Stollarni artish", TaskTypeDaily, role.ID, branch.ID)
	taskB := makeTask(t, db, "Menyuni tekshirish", TaskTypeDaily, role.ID, branch.ID)
	taskC := makeTask(t, db, "Oylik inventarizatsiya", TaskTypeMonthly, role.ID, branch.ID)

	date := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	if err := CompleteTask(db, taskA.ID, worker.ID, date, "photo", "f1", ""); err != nil {
		t.Fatalf("completing task A: %v", err)
	}
	if err := CompleteTask(db, taskC.ID, worker.ID, date, "photo", "f2", ""); err != nil {
		t.Fatalf("completing task C: %v", err)
	}

	got, err := CompletedTaskIDs(db, worker.ID, date, []uint{taskA.ID, taskB.ID, taskC.ID})
	if err != nil {
		t.Fatalf("batch lookup: %v", err)
	}
	if !got[taskA.ID] || got[taskB.ID] || !got[taskC.ID] {
		t.Fatalf("unexpected completion map: %v", got)
	}

	empty, err := CompletedTaskIDs(db, worker.ID, date, nil)
	if err != nil {
		t.Fatalf("empty lookup: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty id list should yield empty map, got %v", empty)
	}
}

func TestGetCompletionNotFound(t *testing.T) {
	db := testDB(t)
	_, err := GetCompletion(db, 1, 1, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
