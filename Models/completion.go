package Models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// TaskCompletion is the evidence that a worker satisfied a task for one
// calendar date. At most one row per (task, worker, date); resubmission
// overwrites the evidence and timestamp.
type TaskCompletion struct {
	gorm.Model
	TaskID         uint      `json:"task_id" gorm:"uniqueIndex:idx_task_worker_date;not null"`
	WorkerID       uint      `json:"worker_id" gorm:"uniqueIndex:idx_task_worker_date;not null"`
	CompletionDate string    `json:"completion_date" gorm:"uniqueIndex:idx_task_worker_date;not null"`
	CompletedAt    time.Time `json:"completed_at"`
	MediaType      string    `json:"media_type"`
	MediaFileID    string    `json:"media_file_id"`
	TextMessage    string    `json:"text_message"`
}

// CompleteTask records a completion for the given calendar date with upsert
// semantics: a resubmission replaces the evidence rather than duplicating or
// failing. The period is always the date the completion is recorded for,
// never a backdated one.
func CompleteTask(db *gorm.DB, taskID, workerID uint, date time.Time, mediaType, mediaFileID, textMessage string) error {
	day := DateOnly(date)

	var existing TaskCompletion
	err := db.Where("task_id = ? AND worker_id = ? AND completion_date = ?",
		taskID, workerID, day).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		completion := TaskCompletion{
			TaskID:         taskID,
			WorkerID:       workerID,
			CompletionDate: day,
			CompletedAt:    time.Now(),
			MediaType:      mediaType,
			MediaFileID:    mediaFileID,
			TextMessage:    textMessage,
		}
		return db.Create(&completion).Error
	}
	if err != nil {
		return err
	}

	existing.CompletedAt = time.Now()
	existing.MediaType = mediaType
	existing.MediaFileID = mediaFileID
	existing.TextMessage = textMessage
	return db.Save(&existing).Error
}

func IsCompleted(db *gorm.DB, taskID, workerID uint, date time.Time) (bool, error) {
	var count int64
	err := db.Model(&TaskCompletion{}).
		Where("task_id = ? AND worker_id = ? AND completion_date = ?",
			taskID, workerID, DateOnly(date)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompletedTaskIDs is the batch lookup used by the due-task view and the
// statistics aggregator to avoid one query per task.
func CompletedTaskIDs(db *gorm.DB, workerID uint, date time.Time, taskIDs []uint) (map[uint]bool, error) {
	completed := make(map[uint]bool)
	if len(taskIDs) == 0 {
		return completed, nil
	}

	var rows []TaskCompletion
	err := db.Where("worker_id = ? AND completion_date = ? AND task_id IN ?",
		workerID, DateOnly(date), taskIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		completed[row.TaskID] = true
	}
	return completed, nil
}

// GetCompletion fetches the evidence row for one (task, worker, date) triple.
func GetCompletion(db *gorm.DB, taskID, workerID uint, date time.Time) (*TaskCompletion, error) {
	var completion TaskCompletion
	err := db.Where("task_id = ? AND worker_id = ? AND completion_date = ?",
		taskID, workerID, DateOnly(date)).First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}
