package Stats

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// BuildDailyReportWorkbook renders the daily statistics into an .xlsx file
// for download from the admin dashboard.
func BuildDailyReportWorkbook(branchName string, roleStats []RoleStat, workerStats []WorkerStat, date time.Time, opts ReportOptions) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := "Report"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	file.SetCellValue(sheet, "A1", "Filial")
	file.SetCellValue(sheet, "B1", branchName)
	file.SetCellValue(sheet, "A2", "Sana")
	file.SetCellValue(sheet, "B2", date.Format("2006-01-02"))

	headers := []string{"Ishchi", "Rol", "Bajarildi", "Jami", "Foiz", "Holat"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		file.SetCellValue(sheet, cell, header)
	}

	row := 5
	for _, worker := range workerStats {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), worker.FullName)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), worker.RoleName)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), worker.Completed)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), worker.Total)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), worker.Percentage)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), opts.Bands.StatusOf(worker.Percentage))
		row++
	}

	row++
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "ROL BO'YICHA")
	row++
	for _, role := range roleStats {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), role.RoleName)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d ta ishchi", role.WorkerCount))
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), role.Completed)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), role.Total)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), role.Percentage)
		row++
	}

	return file, nil
}
