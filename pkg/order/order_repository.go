package order

import (
	"context"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id uint) (*entities.Order, error)
		GetOrderWithItems(ctx context.Context, id uint) (*entities.Order, error)
		GetItemByID(ctx context.Context, id uint) (*entities.OrderItem, error)
		GetPendingItems(ctx context.Context, orderID uint) ([]*entities.OrderItem, error)
		AddItem(ctx context.Context, item *entities.OrderItem) error
		RemoveItem(ctx context.Context, itemID uint) (orderDeleted bool, newTotal float64, err error)
		UpdateOrderStatus(ctx context.Context, id uint, status entities.OrderStatus) error
		TransitionItemStatus(ctx context.Context, id uint, from, to entities.OrderItemStatus) (bool, error)
		CompleteItem(ctx context.Context, itemID uint) (orderServed bool, err error)
		GetOrdersForTable(ctx context.Context, tableID uint, status entities.OrderStatus) ([]*entities.Order, error)
		GetKitchenQueue(ctx context.Context, status entities.OrderItemStatus) ([]*KitchenQueueRow, error)
	}

	orderRepository struct {
		db *gorm.DB
	}

	KitchenQueueRow struct {
		ItemID      uint
		OrderID     uint
		TableNumber string
		DishName    string
		Quantity    int
		Status      entities.OrderItemStatus
		OrderDate   time.Time
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder inserts the order and flips its table to Occupied in one
// transaction, so a created order is never observable on a Free table.
func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Table{}).
			Where("id = ?", order.TableID).
			Update("status", entities.TableOccupied).Error
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uint) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrderWithItems(ctx context.Context, id uint) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Dish").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetItemByID(ctx context.Context, id uint) (*entities.OrderItem, error) {
	var item entities.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Dish").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) GetPendingItems(ctx context.Context, orderID uint) ([]*entities.OrderItem, error) {
	var items []*entities.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("Dish").
		Where("order_id = ? AND status = ?", orderID, entities.ItemPending).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem appends the line item and bumps the parent order's total in
// one transaction, keeping total_amount equal to the sum of subtotals.
// The total update re-asserts the order is still active, so an item can
// never land on an order a concurrent checkout just settled.
func (r *orderRepository) AddItem(ctx context.Context, item *entities.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		res := tx.Model(&entities.Order{}).
			Where("id = ? AND status IN ?", item.OrderID, entities.ActiveOrderStatuses).
			Update("total_amount", gorm.Expr("total_amount + ?", item.Subtotal))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RemoveItem deletes the item, recomputes the order total from the
// remaining rows, and collapses the order entirely when nothing of value
// remains. If the collapsed order was the table's last active one, the
// table reverts to Free. All of it is one transaction.
func (r *orderRepository) RemoveItem(ctx context.Context, itemID uint) (bool, float64, error) {
	var orderDeleted bool
	var newTotal float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The Pending status is re-asserted inside the transaction; an
		// item a concurrent caller already claimed reads as not found.
		var item entities.OrderItem
		if err := tx.Where("id = ? AND status = ?", itemID, entities.ItemPending).First(&item).Error; err != nil {
			return err
		}

		if err := tx.Delete(&entities.OrderItem{}, "id = ?", itemID).Error; err != nil {
			return err
		}

		var total float64
		if err := tx.Model(&entities.OrderItem{}).
			Where("order_id = ?", item.OrderID).
			Select("COALESCE(SUM(subtotal), 0)").
			Scan(&total).Error; err != nil {
			return err
		}
		newTotal = total

		if total > 0 {
			return tx.Model(&entities.Order{}).
				Where("id = ?", item.OrderID).
				Update("total_amount", total).Error
		}

		// Nothing left to collect: the order cannot exist as an empty shell.
		var order entities.Order
		if err := tx.Where("id = ?", item.OrderID).First(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", item.OrderID).Delete(&entities.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entities.Order{}, "id = ?", item.OrderID).Error; err != nil {
			return err
		}
		orderDeleted = true

		var remaining int64
		if err := tx.Model(&entities.Order{}).
			Where("table_id = ? AND status IN ?", order.TableID, entities.ActiveOrderStatuses).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Model(&entities.Table{}).
				Where("id = ?", order.TableID).
				Update("status", entities.TableFree).Error
		}
		return nil
	})

	return orderDeleted, newTotal, err
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uint, status entities.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// TransitionItemStatus moves the item to a new status only while it
// still holds the expected one, reporting whether the row was claimed.
// Concurrent callers racing on the same item see exactly one true.
func (r *orderRepository) TransitionItemStatus(ctx context.Context, id uint, from, to entities.OrderItemStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteItem marks the item Completed and, when it was the last
// incomplete item of its order, promotes the order to Served in the same
// transaction.
func (r *orderRepository) CompleteItem(ctx context.Context, itemID uint) (bool, error) {
	var orderServed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entities.OrderItem
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.OrderItem{}).
			Where("id = ?", itemID).
			Update("status", entities.ItemCompleted).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&entities.OrderItem{}).
			Where("order_id = ? AND status != ?", item.OrderID, entities.ItemCompleted).
			Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 {
			if err := tx.Model(&entities.Order{}).
				Where("id = ?", item.OrderID).
				Update("status", entities.OrderServed).Error; err != nil {
				return err
			}
			orderServed = true
		}
		return nil
	})

	return orderServed, err
}

func (r *orderRepository) GetOrdersForTable(ctx context.Context, tableID uint, status entities.OrderStatus) ([]*entities.Order, error) {
	var orders []*entities.Order

	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Dish").
		Where("table_id = ?", tableID)
	if status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status IN ?", entities.ActiveOrderStatuses)
	}

	if err := query.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetKitchenQueue(ctx context.Context, status entities.OrderItemStatus) ([]*KitchenQueueRow, error) {
	var rows []*KitchenQueueRow

	query := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id AS item_id, orders.id AS order_id, tables.table_number, dishes.name AS dish_name, order_items.quantity, order_items.status, orders.order_date").
		Joins("JOIN orders ON order_items.order_id = orders.id").
		Joins("JOIN tables ON orders.table_id = tables.id").
		Joins("JOIN dishes ON order_items.dish_id = dishes.id")
	if status != "" {
		query = query.Where("order_items.status = ?", status)
	}

	if err := query.
		Order("orders.order_date DESC, order_items.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
