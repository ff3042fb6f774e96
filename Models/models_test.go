package Models

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database migrated with every entity.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(&Branch{}, &Role{}, &Worker{}, &Task{}, &GroupChat{}, &TaskCompletion{}, &ReportLog{})
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func makeBranch(t *testing.T, db *gorm.DB, name string) Branch {
	t.Helper()
	branch := Branch{Name: name}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("creating branch: %v", err)
	}
	return branch
}

func makeRole(t *testing.T, db *gorm.DB, name string) Role {
	t.Helper()
	role := Role{Name: name}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("creating role: %v", err)
	}
	return role
}

func makeWorker(t *testing.T, db *gorm.DB, name, phone string, branchID, roleID uint) Worker {
	t.Helper()
	worker, err := CreateWorker(db, name, phone, branchID, roleID)
	if err != nil {
		t.Fatalf("creating worker: %v", err)
	}
	return *worker
}

func makeTask(t *testing.T, db *gorm.DB, text, taskType string, roleID, branchID uint) Task {
	t.Helper()
	task, err := CreateTask(db, text, taskType, roleID, branchID)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return *task
}
