package entities

import (
	"time"
)

type Order struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	TableID        uint        `gorm:"not null" json:"table_id"`
	CreatedBy      string      `gorm:"not null" json:"created_by"`
	OrderDate      time.Time   `gorm:"not null" json:"order_date"`
	TotalAmount    float64     `gorm:"not null;default:0" json:"total_amount"`
	Status         OrderStatus `gorm:"not null;default:Placed" json:"status"`
	CheckoutTime   *time.Time  `json:"checkout_time,omitempty"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	ReceivedAmount float64     `json:"received_amount"`
	ChangeAmount   float64     `json:"change_amount"`

	Table *Table      `gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	Timestamp
}

// OrderItem keeps its subtotal frozen at add time, so later price edits on
// the dish never change historical orders.
type OrderItem struct {
	ID       uint            `gorm:"primarykey" json:"id"`
	OrderID  uint            `gorm:"not null" json:"order_id"`
	DishID   uint            `gorm:"not null" json:"dish_id"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Subtotal float64         `gorm:"not null" json:"subtotal"`
	Status   OrderItemStatus `gorm:"not null;default:Pending" json:"status"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Dish  *Dish  `gorm:"foreignKey:DishID" json:"-"`

	Timestamp
}
