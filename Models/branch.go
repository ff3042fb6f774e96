package Models

import (
	"errors"

	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`
}

func GetAllBranches(db *gorm.DB) ([]Branch, error) {
	var branches []Branch
	if err := db.Order("id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func GetBranch(db *gorm.DB, id uint) (*Branch, error) {
	var branch Branch
	err := db.First(&branch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
