package Models

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "workly.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	// 1. Base tables first
	DB.AutoMigrate(
		&Branch{},
		&Role{},
	)

	// 2. Tables referencing branches/roles
	DB.AutoMigrate(
		&Worker{},
		&Task{},
		&GroupChat{},
	)

	// 3. Ledger and report audit tables
	DB.AutoMigrate(
		&TaskCompletion{},
		&ReportLog{},
	)

	seedInitialData(DB)
}

// seedInitialData inserts branches, roles, group bindings and the super admin
// on an empty database. Group chat IDs come from the GROUP_LINKS env variable
// (comma separated, one chat per branch in order).
func seedInitialData(db *gorm.DB) {
	var branchCount int64
	db.Model(&Branch{}).Count(&branchCount)
	if branchCount == 0 {
		branches := []Branch{
			{Name: "Gelyon"},
			{Name: "Marxabo"},
			{Name: "Vogzal"},
		}
		if err := db.Create(&branches).Error; err != nil {
			log.Println("Error seeding branches:", err)
		}

		groupLinks := strings.Split(os.Getenv("GROUP_LINKS"), ",")
		for i, branch := range branches {
			if i >= len(groupLinks) {
				break
			}
			chatID, err := strconv.ParseInt(strings.TrimSpace(groupLinks[i]), 10, 64)
			if err != nil || chatID == 0 {
				continue
			}
			group := GroupChat{
				BranchID:  branch.ID,
				ChatID:    chatID,
				ChatTitle: branch.Name + " Guruh",
				IsActive:  true,
			}
			if err := db.Create(&group).Error; err != nil {
				log.Println("Error seeding group chat:", err)
			}
		}
	}

	var roleCount int64
	db.Model(&Role{}).Count(&roleCount)
	if roleCount == 0 {
		roles := []Role{
			{Name: "Oshpaz"},
			{Name: "Ofitsiant"},
			{Name: "Kassa"},
			{Name: "Menejer"},
		}
		if err := db.Create(&roles).Error; err != nil {
			log.Println("Error seeding roles:", err)
		}
	}

	var adminCount int64
	db.Model(&Worker{}).Where("is_admin = ?", true).Count(&adminCount)
	if adminCount == 0 {
		admin := Worker{
			FullName: "Super Admin",
			Phone:    "998770451117",
			IsAdmin:  true,
			IsActive: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Println("Error seeding super admin:", err)
		}
	}
}

// SetupWorkers imports a worker roster from Workers.xlsx. Columns:
// full name, phone, branch name, role name. Phones already registered are skipped.
func SetupWorkers() {
	f, err := excelize.OpenFile("Workers.xlsx")
	if err != nil {
		log.Println(err)
		return
	}

	var branches []Branch
	var roles []Role
	DB.Find(&branches)
	DB.Find(&roles)

	branchMap := make(map[string]uint)
	for _, branch := range branches {
		branchMap[branch.Name] = branch.ID
	}
	roleMap := make(map[string]uint)
	for _, role := range roles {
		roleMap[role.Name] = role.ID
	}

	imported := 0
	rows := f.GetRows("Sheet1")
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		fullName := strings.TrimSpace(row[0])
		phone := strings.TrimSpace(row[1])
		branchID, ok := branchMap[strings.TrimSpace(row[2])]
		if !ok {
			log.Printf("Unknown branch %q for worker %s, skipping", row[2], fullName)
			continue
		}
		roleID, ok := roleMap[strings.TrimSpace(row[3])]
		if !ok {
			log.Printf("Unknown role %q for worker %s, skipping", row[3], fullName)
			continue
		}

		if _, err := CreateWorker(DB, fullName, phone, branchID, roleID); err != nil {
			log.Printf("Skipping worker %s (%s): %v", fullName, phone, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d workers from Workers.xlsx", imported)
}
