package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportLog records one daily-report delivery attempt per branch. The computed
// summary is kept as JSON so a failed send can be resent without recomputing.
type ReportLog struct {
	gorm.Model
	BranchID   uint           `json:"branch_id" gorm:"index;not null"`
	ReportDate string         `json:"report_date" gorm:"index;not null"`
	Summary    datatypes.JSON `json:"summary"`
	Delivered  bool           `json:"delivered" gorm:"default:false"`
	Error      string         `json:"error"`
}

func LogReport(db *gorm.DB, branchID uint, date time.Time, summary []byte, delivered bool, deliveryErr string) error {
	entry := ReportLog{
		BranchID:   branchID,
		ReportDate: DateOnly(date),
		Summary:    datatypes.JSON(summary),
		Delivered:  delivered,
		Error:      deliveryErr,
	}
	return db.Create(&entry).Error
}

func GetReportLogs(db *gorm.DB, branchID uint, limit int) ([]ReportLog, error) {
	var logs []ReportLog
	query := db.Where("branch_id = ?", branchID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
