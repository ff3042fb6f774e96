package Models

import (
	"errors"
	"testing"
)

func TestCreateTaskValidation(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Gelyon")
	role := makeRole(t, db, "Oshpaz")

	if _, err := CreateTask(db, "Yarim yillik hisobot", "weekly", role.ID, branch.ID); err == nil {
		t.Fatal("unknown task type should be rejected")
	}
	if _, err := CreateTask(db, "X", TaskTypeDaily, 999, branch.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown role: got %v, want ErrNotFound", err)
	}
	if _, err := CreateTask(db, "X", TaskTypeDaily, role.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown branch: got %v, want ErrNotFound", err)
	}
}

func TestRetireTaskKeepsHistory(t *testing.T) {
	db := testDB(t)
	branch := makeBranch(t, db, "Vogzal")
	role := makeRole(t, db, "Kassa")
	task := makeTask(t, db, "Hisobotni topshirish", TaskTypeDaily, role.ID, branch.ID)

	if err := RetireTask(db, task.ID); err != nil {
		t.Fatalf("retiring: %v", err)
	}

	// Retired tasks vanish from listings.
	tasks, err := GetAllTasks(db, TaskFilter{})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("retired task still listed: %v", tasks)
	}

	// But stay resolvable by ID for completion history.
	got, err := GetTask(db, task.ID)
	if err != nil {
		t.Fatalf("fetching retired task: %v", err)
	}
	if got.IsActive {
		t.Fatal("retired task should be inactive")
	}

	if err := RetireTask(db, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second retirement: got %v, want ErrNotFound", err)
	}
}

func TestGetAllTasksFilters(t *testing.T) {
	db := testDB(t)
	gelyon := makeBranch(t, db, "Gelyon")
	vogzal := makeBranch(t, db, "Vogzal")
	oshpaz := makeRole(t, db, "Oshpaz")
	kassa := makeRole(t, db, "Kassa")

	makeTask(t, db, "Oshxonani tozalash", TaskTypeDaily, oshpaz.ID, gelyon.ID)
	makeTask(t, db, "Haftalik tekshiruv", TaskTypeMonday, oshpaz.ID, gelyon.ID)
	makeTask(t, db, "Kassani hisoblash", TaskTypeDaily, kassa.ID, vogzal.ID)

	branchScoped, err := GetAllTasks(db, TaskFilter{BranchID: &gelyon.ID})
	if err != nil {
		t.Fatalf("branch filter: %v", err)
	}
	if len(branchScoped) != 2 {
		t.Fatalf("got %d tasks for branch, want 2", len(branchScoped))
	}
	// Recurrence class orders daily before monday within the same role.
	if branchScoped[0].TaskType != TaskTypeDaily || branchScoped[1].TaskType != TaskTypeMonday {
		t.Fatalf("unexpected order: %s, %s", branchScoped[0].TaskType, branchScoped[1].TaskType)
	}

	daily := TaskTypeDaily
	typed, err := GetAllTasks(db, TaskFilter{TaskType: &daily})
	if err != nil {
		t.Fatalf("type filter: %v", err)
	}
	if len(typed) != 2 {
		t.Fatalf("got %d daily tasks, want 2", len(typed))
	}

	both, err := GetAllTasks(db, TaskFilter{BranchID: &vogzal.ID, RoleID: &kassa.ID})
	if err != nil {
		t.Fatalf("combined filter: %v", err)
	}
	if len(both) != 1 || both[0].Text != "Kassani hisoblash" {
		t.Fatalf("unexpected combined result: %v", both)
	}
}
