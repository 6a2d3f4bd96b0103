// Package testutil provides an in-memory database for repository and
// service tests.
package testutil

import (
	"testing"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. The connection pool is capped at one connection so the
// in-memory database is not silently duplicated per connection.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Table{},
		&entities.Dish{},
		&entities.Ingredient{},
		&entities.DishIngredient{},
		&entities.InventoryLog{},
		&entities.Order{},
		&entities.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}
