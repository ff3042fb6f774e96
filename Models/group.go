package Models

import (
	"errors"

	"gorm.io/gorm"
)

// GroupChat binds a branch to its Telegram group. At most one active binding
// per branch; evidence forwards and daily reports are delivered there.
type GroupChat struct {
	gorm.Model
	BranchID  uint   `json:"branch_id" gorm:"uniqueIndex;not null"`
	ChatID    int64  `json:"chat_id" gorm:"not null"`
	ChatTitle string `json:"chat_title"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

// GetGroupChatID resolves the delivery target for a branch. The stored binding
// table is the canonical mechanism; the positional GROUP_LINKS list is only
// used once at seed time.
func GetGroupChatID(db *gorm.DB, branchID uint) (int64, error) {
	var group GroupChat
	err := db.Where("branch_id = ? AND is_active = ?", branchID, true).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return group.ChatID, nil
}

func GetAllGroupChats(db *gorm.DB) ([]GroupChat, error) {
	var groups []GroupChat
	if err := db.Where("is_active = ?", true).Order("branch_id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
