package entities

type Table struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	TableNumber string      `gorm:"uniqueIndex;not null" json:"table_number"`
	Capacity    int         `gorm:"not null" json:"capacity"`
	Status      TableStatus `gorm:"not null;default:Free" json:"status"`

	Timestamp
}
