package checkout

import (
	"context"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	CheckoutRepository interface {
		GetActiveOrdersForTable(ctx context.Context, tableID uint) ([]*entities.Order, error)
		SettleOrders(ctx context.Context, tableID uint, orderIDs []uint, settlement SettlementUpdate) error
	}

	checkoutRepository struct {
		db *gorm.DB
	}

	SettlementUpdate struct {
		PaymentMethod  string
		ReceivedAmount float64
		ChangeAmount   float64
		CheckoutTime   time.Time
	}
)

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) GetActiveOrdersForTable(ctx context.Context, tableID uint) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Dish").
		Where("table_id = ? AND status IN ?", tableID, entities.ActiveOrderStatuses).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SettleOrders stamps every order Paid and frees the table in a single
// transaction, so the table can never be left Occupied with all its
// orders already settled, nor Free with an unsettled one.
func (r *checkoutRepository) SettleOrders(ctx context.Context, tableID uint, orderIDs []uint, settlement SettlementUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Order{}).
			Where("id IN ?", orderIDs).
			Updates(map[string]interface{}{
				"status":          entities.OrderPaid,
				"checkout_time":   settlement.CheckoutTime,
				"payment_method":  settlement.PaymentMethod,
				"received_amount": settlement.ReceivedAmount,
				"change_amount":   settlement.ChangeAmount,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Table{}).
			Where("id = ?", tableID).
			Update("status", entities.TableFree).Error
	})
}
