package Models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// DueTask is one entry of a worker's task list for a date.
type DueTask struct {
	Task      Task `json:"task"`
	Completed bool `json:"completed"`
}

// DueTasks composes the recurrence resolver, task catalog and completion
// ledger into the worker's task list for a date. An empty list is a normal
// "nothing due" state; an unknown or deactivated worker is ErrNotFound.
func DueTasks(db *gorm.DB, workerID uint, date time.Time) ([]DueTask, error) {
	worker, err := GetWorker(db, workerID)
	if err != nil {
		return nil, err
	}

	// The super admin seed row has no branch/role and owns no tasks.
	if worker.BranchID == nil || worker.RoleID == nil {
		return []DueTask{}, nil
	}

	var tasks []Task
	err = db.Where("role_id = ? AND branch_id = ? AND task_type IN ? AND is_active = ?",
		*worker.RoleID, *worker.BranchID, ActiveTaskTypes(date), true).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	taskIDs := make([]uint, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.ID
	}
	completed, err := CompletedTaskIDs(db, workerID, date, taskIDs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		oi, oj := TaskTypeOrder(tasks[i].TaskType), TaskTypeOrder(tasks[j].TaskType)
		if oi != oj {
			return oi < oj
		}
		return tasks[i].ID < tasks[j].ID
	})

	due := make([]DueTask, len(tasks))
	for i, task := range tasks {
		due[i] = DueTask{Task: task, Completed: completed[task.ID]}
	}
	return due, nil
}
