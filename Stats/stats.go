package Stats

import (
	"math"
	"sort"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"Workly/Models"
)

// RoleStat summarizes one role inside a branch for one date. Roles with no
// active workers in the branch are not reported at all.
type RoleStat struct {
	RoleID      uint   `json:"role_id"`
	RoleName    string `json:"role_name"`
	WorkerCount int    `json:"worker_count"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Percentage  int    `json:"percentage"`
}

// WorkerStat is one worker's completion count for one date.
type WorkerStat struct {
	WorkerID   uint   `json:"worker_id"`
	FullName   string `json:"full_name"`
	RoleName   string `json:"role_name"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
}

// DailyStatistics computes per-role and per-worker completion counts for a
// branch and date. Worker rows are ordered by role name then full name; role
// rows by role ID.
func DailyStatistics(db *gorm.DB, branchID uint, date time.Time) ([]RoleStat, []WorkerStat, error) {
	if _, err := Models.GetBranch(db, branchID); err != nil {
		return nil, nil, err
	}

	var workers []Models.Worker
	err := db.Preload("Role").
		Where("branch_id = ? AND is_active = ? AND role_id IS NOT NULL", branchID, true).
		Find(&workers).Error
	if err != nil {
		return nil, nil, err
	}

	activeTypes := Models.ActiveTaskTypes(date)

	// Due tasks per role, fetched once per role rather than per worker.
	dueByRole := make(map[uint][]uint)
	roleNames := make(map[uint]string)
	for _, worker := range workers {
		roleID := *worker.RoleID
		if worker.Role != nil {
			roleNames[roleID] = worker.Role.Name
		}
		if _, ok := dueByRole[roleID]; ok {
			continue
		}
		var tasks []Models.Task
		err := db.Where("role_id = ? AND branch_id = ? AND task_type IN ? AND is_active = ?",
			roleID, branchID, activeTypes, true).Find(&tasks).Error
		if err != nil {
			return nil, nil, err
		}
		taskIDs := make([]uint, len(tasks))
		for i, task := range tasks {
			taskIDs[i] = task.ID
		}
		dueByRole[roleID] = taskIDs
	}

	roleTotals := make(map[uint]*RoleStat)
	var workerStats []WorkerStat

	for _, worker := range workers {
		roleID := *worker.RoleID
		taskIDs := dueByRole[roleID]

		completedSet, err := Models.CompletedTaskIDs(db, worker.ID, date, taskIDs)
		if err != nil {
			return nil, nil, err
		}

		total := len(taskIDs)
		completed := len(completedSet)

		workerStats = append(workerStats, WorkerStat{
			WorkerID:   worker.ID,
			FullName:   worker.FullName,
			RoleName:   roleNames[roleID],
			Total:      total,
			Completed:  completed,
			Percentage: Percentage(completed, total),
		})

		stat, ok := roleTotals[roleID]
		if !ok {
			stat = &RoleStat{RoleID: roleID, RoleName: roleNames[roleID]}
			roleTotals[roleID] = stat
		}
		stat.WorkerCount++
		stat.Total += total
		stat.Completed += completed
	}

	var roleStats []RoleStat
	for _, stat := range roleTotals {
		stat.Percentage = Percentage(stat.Completed, stat.Total)
		roleStats = append(roleStats, *stat)
	}
	sort.Slice(roleStats, func(i, j int) bool { return roleStats[i].RoleID < roleStats[j].RoleID })

	sort.SliceStable(workerStats, func(i, j int) bool {
		if workerStats[i].RoleName != workerStats[j].RoleName {
			return workerStats[i].RoleName < workerStats[j].RoleName
		}
		return workerStats[i].FullName < workerStats[j].FullName
	})

	return roleStats, workerStats, nil
}

// Percentage rounds completed/total to a whole percent. A worker with nothing
// due scores 0, never a division error.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// RankDescending returns the worker stats sorted by percentage, best first.
// Order within equal percentages follows the input order.
func RankDescending(stats []WorkerStat) []WorkerStat {
	ranked := slices.Clone(stats)
	slices.SortStableFunc(ranked, func(a, b WorkerStat) int {
		return b.Percentage - a.Percentage
	})
	return ranked
}

// LowPerformers filters the already-descending ranking to workers below the
// threshold. With worstFirst the order is reversed so the weakest results
// come first; the default keeps the historical descending order, which
// surfaces the best of the underperformers (see ReportOptions).
func LowPerformers(ranked []WorkerStat, threshold int, worstFirst bool) []WorkerStat {
	var low []WorkerStat
	for _, stat := range ranked {
		if stat.Percentage < threshold {
			low = append(low, stat)
		}
	}
	if worstFirst {
		slices.Reverse(low)
	}
	return low
}
