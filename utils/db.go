package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// InitDB stores the shared database handle once at startup.
func InitDB(database *gorm.DB) {
	dbOnce.Do(func() {
		db = database
	})
}

// GetDB hands the shared handle to code that is not wired through a
// controller constructor.
func GetDB() *gorm.DB {
	return db
}
