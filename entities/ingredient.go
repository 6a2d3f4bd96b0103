package entities

import (
	"time"
)

type Ingredient struct {
	ID                uint    `gorm:"primarykey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	Unit              string  `gorm:"not null" json:"unit"`
	Stock             float64 `gorm:"not null" json:"stock"`
	LowStockThreshold float64 `gorm:"not null" json:"low_stock_threshold"`

	Timestamp
}

func (i *Ingredient) NeedsRestock() bool {
	return i.Stock <= i.LowStockThreshold
}

// InventoryLog is an append-only audit record of a single stock change.
// Rows are never updated or deleted.
type InventoryLog struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	IngredientID uint                `gorm:"not null" json:"ingredient_id"`
	ChangeType   InventoryChangeType `gorm:"not null" json:"change_type"`
	Quantity     float64             `gorm:"not null" json:"quantity"`
	OldStock     float64             `gorm:"not null" json:"old_stock"`
	NewStock     float64             `gorm:"not null" json:"new_stock"`
	Reason       string              `json:"reason"`
	CreatedBy    string              `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}
