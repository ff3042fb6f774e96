package Models

import (
	"errors"
	"sort"

	"gorm.io/gorm"
)

type Worker struct {
	gorm.Model
	ChatID   int64  `json:"chat_id" gorm:"index"`
	FullName string `json:"full_name" gorm:"not null"`
	Phone    string `json:"phone" gorm:"uniqueIndex;not null"`
	BranchID *uint  `json:"branch_id"`
	RoleID   *uint  `json:"role_id"`
	IsAdmin  bool   `json:"is_admin" gorm:"default:false"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
	Password []byte `json:"-"`

	Branch *Branch `json:"branch" gorm:"foreignKey:BranchID"`
	Role   *Role   `json:"role" gorm:"foreignKey:RoleID"`
}

// CreateWorker registers a new worker. The phone uniqueness check deliberately
// includes deactivated rows so a fired worker's number can never be reassigned
// behind their history.
func CreateWorker(db *gorm.DB, fullName, phone string, branchID, roleID uint) (*Worker, error) {
	var existing Worker
	err := db.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return nil, ErrPhoneTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := GetBranch(db, branchID); err != nil {
		return nil, err
	}
	if _, err := GetRole(db, roleID); err != nil {
		return nil, err
	}

	worker := Worker{
		FullName: fullName,
		Phone:    phone,
		BranchID: &branchID,
		RoleID:   &roleID,
		IsActive: true,
	}
	if err := db.Create(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func GetWorker(db *gorm.DB, id uint) (*Worker, error) {
	var worker Worker
	err := db.Preload("Branch").Preload("Role").
		Where("id = ? AND is_active = ?", id, true).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func GetWorkerByPhone(db *gorm.DB, phone string) (*Worker, error) {
	var worker Worker
	err := db.Preload("Branch").Preload("Role").
		Where("phone = ? AND is_active = ?", phone, true).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func GetWorkerByChatID(db *gorm.DB, chatID int64) (*Worker, error) {
	var worker Worker
	err := db.Preload("Branch").Preload("Role").
		Where("chat_id = ? AND is_active = ?", chatID, true).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// BindChatID attaches the messaging identity to an active worker on first
// successful phone login. A deactivated worker's phone does not bind.
func BindChatID(db *gorm.DB, phone string, chatID int64) error {
	result := db.Model(&Worker{}).Where("phone = ? AND is_active = ?", phone, true).
		Update("chat_id", chatID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAllWorkers lists active workers, optionally scoped to one branch,
// ordered by branch name, role name, then full name.
func GetAllWorkers(db *gorm.DB, branchID *uint) ([]Worker, error) {
	var workers []Worker
	query := db.Preload("Branch").Preload("Role").Where("is_active = ?", true)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	if err := query.Find(&workers).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(workers, func(i, j int) bool {
		bi, bj := branchName(&workers[i]), branchName(&workers[j])
		if bi != bj {
			return bi < bj
		}
		ri, rj := roleName(&workers[i]), roleName(&workers[j])
		if ri != rj {
			return ri < rj
		}
		return workers[i].FullName < workers[j].FullName
	})
	return workers, nil
}

func DeactivateWorker(db *gorm.DB, id uint) error {
	result := db.Model(&Worker{}).Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func GrantAdmin(db *gorm.DB, phone string) error {
	result := db.Model(&Worker{}).Where("phone = ?", phone).Update("is_admin", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func RevokeAdmin(db *gorm.DB, phone string) error {
	result := db.Model(&Worker{}).Where("phone = ?", phone).Update("is_admin", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func GetAdmins(db *gorm.DB) ([]Worker, error) {
	var admins []Worker
	if err := db.Where("is_admin = ?", true).Order("full_name").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func branchName(w *Worker) string {
	if w.Branch == nil {
		return ""
	}
	return w.Branch.Name
}

func roleName(w *Worker) string {
	if w.Role == nil {
		return ""
	}
	return w.Role.Name
}
