package Models

import (
	"errors"

	"gorm.io/gorm"
)

type Role struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`
}

func GetAllRoles(db *gorm.DB) ([]Role, error) {
	var roles []Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func GetRole(db *gorm.DB, id uint) (*Role, error) {
	var role Role
	err := db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}
