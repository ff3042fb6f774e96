package Models

import (
	"errors"
	"testing"
	"time"
)

func TestDueTasksFiltersByRecurrenceRoleAndBranch(t *testing.T) {
	db := testDB(t)
	gelyon := makeBranch(t, db, "Gelyon")
	vogzal := makeBranch(t, db, "Vogzal")
	oshpaz := makeRole(t, db, "Oshpaz")
	kassa := makeRole(t, db, "Kassa")

	worker := makeWorker(t, db, "Aziz Karimov", "998901234567", gelyon.ID, oshpaz.ID)

	daily := makeTask(t, db, "Oshxonani tozalash", TaskTypeDaily, oshpaz.ID, gelyon.ID)
	makeTask(t, db, "Haftalik tekshiruv", TaskTypeMonday, oshpaz.ID, gelyon.ID)
	makeTask(t, db, "Oylik inventarizatsiya", TaskTypeMonthly, oshpaz.ID, gelyon.ID)
	makeTask(t, db, "Boshqa rol vazifasi", TaskTypeDaily, kassa.ID, gelyon.ID)
	makeTask(t, db, "Boshqa filial vazifasi", TaskTypeDaily, oshpaz.ID, vogzal.ID)

	wednesday := time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)
	due, err := DueTasks(db, worker.ID, wednesday)
	if err != nil {
		t.Fatalf("due tasks: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("got %d due tasks on a wednesday, want 1: %v", len(due), due)
	}
	if due[0].Task.ID != daily.ID || due[0].Completed {
		t.Fatalf("unexpected due entry: %+v", due[0])
	}

	monday := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	due, err = DueTasks(db, worker.ID, monday)
	if err != nil {
		t.Fatalf("due tasks monday: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("got %d due tasks on a monday, want 2", len(due))
	}
	// Daily before monday in the listing.
	if due[0].Task.TaskType != TaskTypeDaily || due[1].Task.TaskType != TaskTypeMonday {
		t.Fatalf("unexpected order: %s, %s", due[0].Task.TaskType, due[1].Task.TaskType)
	}

	firstOfMonth := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC) // also a Monday
	due, err = DueTasks(db, worker.ID, firstOfMonth)
	if err != nil {
		t.Fatalf("due tasks first of month: %v", err)
	}
	if len(due) != 3 {
		t.Fatalf("got %d due tasks on June 1st, want 3", len(due))
	}
}

func TestDueTasksMarksCompleted(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Marxabo")
	role := makeRole(t, db, "Ofitsiant")
	worker := makeWorker(t, db, "Bobur Aliyev", "998911112233", branch.ID, role.ID)

	done := makeTask(t, db, "Stollarni artish", TaskTypeDaily, role.ID, branch.ID)
	pending := makeTask(t, db, "Menyuni tekshirish", TaskTypeDaily, role.ID, branch.ID)

	date := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	if err := CompleteTask(db, done.ID, worker.ID, date, "photo", "f1", ""); err != nil {
		t.Fatalf("completing: %v", err)
	}

	due, err := DueTasks(db, worker.ID, date)
	if err != nil {
		t.Fatalf("due tasks: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("got %d due tasks, want 2", len(due))
	}
	for _, entry := range due {
		switch entry.Task.ID {
		case done.ID:
			if !entry.Completed {
				t.Fatal("completed task not marked")
			}
		case pending.ID:
			if entry.Completed {
				t.Fatal("pending task marked completed")
			}
		default:
			t.Fatalf("unexpected task %d", entry.Task.ID)
		}
	}

	// Completion is scoped to its date.
	nextDay := date.AddDate(0, 0, 1)
	due, err = DueTasks(db, worker.ID, nextDay)
	if err != nil {
		t.Fatalf("due tasks next day: %v", err)
	}
	for _, entry := range due {
		if entry.Completed {
			t.Fatalf("task %d carried completion into the next day", entry.Task.ID)
		}
	}
}

func TestDueTasksExcludesRetired(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Gelyon")
	role := makeRole(t, db, "Oshpaz")
	worker := makeWorker(t, db, "Aziz Karimov", "998901234567", branch.ID, role.ID)
	task := makeTask(t, db, "Eski vazifa", TaskTypeDaily, role.ID, branch.ID)

	if err := RetireTask(db, task.ID); err != nil {
		t.Fatalf("retiring: %v", err)
	}

	due, err := DueTasks(db, worker.ID, time.Now())
	if err != nil {
		t.Fatalf("due tasks: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("retired task still due: %v", due)
	}
}

func TestDueTasksUnknownOrDeactivatedWorker(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Gelyon")
	role := makeRole(t, db, "Oshpaz")

	if _, err := DueTasks(db, 42, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown worker: got %v, want ErrNotFound", err)
	}

	worker := makeWorker(t, db, "Ketgan Ishchi", "998901230000", branch.ID, role.ID)
	if err := DeactivateWorker(db, worker.ID); err != nil {
		t.Fatalf("deactivating: %v", err)
	}
	if _, err := DueTasks(db, worker.ID, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deactivated worker: got %v, want ErrNotFound", err)
	}
}

func TestDueTasksUnassignedWorkerEmpty(t *testing.T) {
	db := testDB(t)
	admin := Worker{FullName: "Super Admin", Phone: "998770451117", IsAdmin: true, IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("creating admin: %v", err)
	}

	due, err := DueTasks(db, admin.ID, time.Now())
	if err != nil {
		t.Fatalf("due tasks: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("worker without branch/role should have no tasks: %v", due)
	}
}
