package Models

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model
	Text     string `json:"text" gorm:"not null"`
	TaskType string `json:"task_type" gorm:"not null"`
	RoleID   uint   `json:"role_id" gorm:"index"`
	BranchID uint   `json:"branch_id" gorm:"index"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	Branch *Branch `json:"branch" gorm:"foreignKey:BranchID"`
	Role   *Role   `json:"role" gorm:"foreignKey:RoleID"`
}

// TaskFilter narrows GetAllTasks. Nil fields match everything.
type TaskFilter struct {
	BranchID *uint
	RoleID   *uint
	TaskType *string
}

func CreateTask(db *gorm.DB, text, taskType string, roleID, branchID uint) (*Task, error) {
	if !IsValidTaskType(taskType) {
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}
	if _, err := GetRole(db, roleID); err != nil {
		return nil, err
	}
	if _, err := GetBranch(db, branchID); err != nil {
		return nil, err
	}

	task := Task{
		Text:     text,
		TaskType: taskType,
		RoleID:   roleID,
		BranchID: branchID,
		IsActive: true,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask returns a task by ID regardless of its active flag, so historical
// completions stay resolvable after retirement.
func GetTask(db *gorm.DB, id uint) (*Task, error) {
	var task Task
	err := db.Preload("Branch").Preload("Role").First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetAllTasks lists active tasks matching the filter, ordered by branch name,
// role name, recurrence class, then ID for stable listings.
func GetAllTasks(db *gorm.DB, filter TaskFilter) ([]Task, error) {
	query := db.Preload("Branch").Preload("Role").Where("is_active = ?", true)
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.TaskType != nil {
		query = query.Where("task_type = ?", *filter.TaskType)
	}

	var tasks []Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		bi, bj := taskBranchName(&tasks[i]), taskBranchName(&tasks[j])
		if bi != bj {
			return bi < bj
		}
		ri, rj := taskRoleName(&tasks[i]), taskRoleName(&tasks[j])
		if ri != rj {
			return ri < rj
		}
		oi, oj := TaskTypeOrder(tasks[i].TaskType), TaskTypeOrder(tasks[j].TaskType)
		if oi != oj {
			return oi < oj
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// RetireTask soft-deletes a task. Retired tasks disappear from listings and
// due-task views but keep their completion history.
func RetireTask(db *gorm.DB, id uint) error {
	result := db.Model(&Task{}).Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func taskBranchName(t *Task) string {
	if t.Branch == nil {
		return ""
	}
	return t.Branch.Name
}

func taskRoleName(t *Task) string {
	if t.Role == nil {
		return ""
	}
	return t.Role.Name
}
