package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/table"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CheckoutService interface {
		Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Settlement, error)
	}

	checkoutService struct {
		checkoutRepository CheckoutRepository
		tableRepository    table.TableRepository
	}
)

func NewCheckoutService(checkoutRepository CheckoutRepository, tableRepository table.TableRepository) CheckoutService {
	return &checkoutService{
		checkoutRepository: checkoutRepository,
		tableRepository:    tableRepository,
	}
}

func validPaymentMethod(method string) bool {
	switch method {
	case domain.PaymentCash, domain.PaymentWeChat, domain.PaymentAlipay:
		return true
	}
	return false
}

// Checkout settles every active order on the table at once. Cash must
// cover the full balance and yields change; non-cash methods collect
// the exact amount due.
func (s *checkoutService) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Settlement, error) {
	if !validPaymentMethod(req.PaymentMethod) {
		return domain.Settlement{}, domain.ErrInvalidPaymentMethod
	}

	diningTable, err := s.tableRepository.GetTableByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Settlement{}, domain.ErrTableNotFound
		}
		return domain.Settlement{}, err
	}

	orders, err := s.checkoutRepository.GetActiveOrdersForTable(ctx, req.TableID)
	if err != nil {
		return domain.Settlement{}, err
	}
	if len(orders) == 0 {
		return domain.Settlement{}, domain.ErrNoActiveOrders
	}

	var total float64
	orderIDs := make([]uint, 0, len(orders))
	var lines []domain.SettlementLine
	for _, order := range orders {
		total += order.TotalAmount
		orderIDs = append(orderIDs, order.ID)
		for _, item := range order.Items {
			line := domain.SettlementLine{
				Quantity: item.Quantity,
				Subtotal: item.Subtotal,
			}
			if item.Dish != nil {
				line.DishName = item.Dish.Name
			}
			lines = append(lines, line)
		}
	}
	if total <= 0 {
		return domain.Settlement{}, domain.ErrZeroBalance
	}

	received := req.ReceivedAmount
	var change float64
	if req.PaymentMethod == domain.PaymentCash {
		if received < total {
			return domain.Settlement{}, domain.ErrInsufficientPayment
		}
		change = received - total
	} else {
		received = total
		change = 0
	}

	checkoutTime := time.Now()
	err = s.checkoutRepository.SettleOrders(ctx, req.TableID, orderIDs, SettlementUpdate{
		PaymentMethod:  req.PaymentMethod,
		ReceivedAmount: received,
		ChangeAmount:   change,
		CheckoutTime:   checkoutTime,
	})
	if err != nil {
		return domain.Settlement{}, err
	}

	return domain.Settlement{
		ReceiptNumber:  uuid.New().String(),
		TableNumber:    diningTable.TableNumber,
		OrderIDs:       orderIDs,
		Lines:          lines,
		TotalAmount:    total,
		PaymentMethod:  req.PaymentMethod,
		ReceivedAmount: received,
		ChangeAmount:   change,
		CheckoutTime:   checkoutTime,
	}, nil
}
