package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DefaultDSN keeps writers queued instead of failing with SQLITE_BUSY when
// entry/exit requests race on the same database file.
const DefaultDSN = "database.db?_busy_timeout=10000&_txlock=immediate"

func Connect() {
	dsn := os.Getenv("PARKSYS_DB")
	if dsn == "" {
		dsn = DefaultDSN
	}
	if err := ConnectTo(dsn); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
}

// ConnectTo opens the database at the given DSN and runs migrations.
// Tests point this at a temp file.
func ConnectTo(dsn string) error {
	connection, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Vehicle{},
		&InvoiceSequence{},
	)

	// 2. Then tables with foreign key relationships
	DB.AutoMigrate(
		&Invoice{}, // Depends on Vehicle
		&AuditLog{},
	)

	// 3. After migrations, set up any special indexes.
	// A plate may own many historical sessions but only one open one; the
	// partial unique index is what rejects the second of two concurrent
	// entries at commit time.
	if err := DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_plate_inside ON vehicles(license_plate) WHERE is_inside = 1 AND deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	seedAdminUser(DB)
	return nil
}

// seedAdminUser creates the initial operator account so a fresh install can
// log in. No-op once any user exists.
func seedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&User{}).Count(&count)
	if count > 0 {
		return
	}
	admin := User{
		Username:   "admin",
		Email:      "admin@parksys.local",
		Permission: PermissionAdmin,
		IsActive:   true,
	}
	password := os.Getenv("PARKSYS_ADMIN_PASSWORD")
	if password == "" {
		password = "123456"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Println("Failed to seed admin user:", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("Failed to seed admin user:", err)
	}
}
