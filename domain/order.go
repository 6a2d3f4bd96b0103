package domain

import (
	"errors"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
)

var (
	MessageSuccessCreateOrder      = "order created successfully"
	MessageSuccessAddItem          = "dish added to order successfully"
	MessageSuccessRemoveItem       = "dish removed, order total updated"
	MessageSuccessSubmitOrder      = "order submitted successfully"
	MessageSuccessStartPreparation = "preparation started"
	MessageSuccessCompleteItem     = "dish marked as completed"
	MessageSuccessGetOrders        = "orders retrieved successfully"
	MessageSuccessGetKitchenQueue  = "kitchen queue retrieved successfully"
	MessageOrderCollapsed          = "order total reached zero, order has been deleted"

	MessageFailedCreateOrder      = "failed to create order"
	MessageFailedAddItem          = "failed to add dish to order"
	MessageFailedRemoveItem       = "failed to remove dish from order"
	MessageFailedSubmitOrder      = "failed to submit order"
	MessageFailedStartPreparation = "failed to start preparation"
	MessageFailedCompleteItem     = "failed to complete dish"
	MessageFailedGetOrders        = "failed to retrieve orders"
	MessageFailedGetKitchenQueue  = "failed to retrieve kitchen queue"

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrOrderPaid         = errors.New("order is paid and can no longer be modified")
	ErrOrderNotPlaced    = errors.New("only placed orders can be submitted")
	ErrNoPendingItems    = errors.New("order has no pending dishes to submit")
	ErrItemNotPending    = errors.New("only pending dishes allow this operation")
	ErrItemNotInProgress = errors.New("only dishes in progress can be completed")
)

type (
	CreateOrderRequest struct {
		TableID uint `json:"table_id" validate:"required"`
	}

	AddOrderItemRequest struct {
		DishID   uint `json:"dish_id" validate:"required"`
		Quantity int  `json:"quantity" validate:"omitempty,min=1"`
	}

	OrderItemResponse struct {
		ID       uint                     `json:"id"`
		DishID   uint                     `json:"dish_id"`
		DishName string                   `json:"dish_name"`
		Price    float64                  `json:"price"`
		Quantity int                      `json:"quantity"`
		Subtotal float64                  `json:"subtotal"`
		Status   entities.OrderItemStatus `json:"status"`
	}

	OrderResponse struct {
		ID          uint                 `json:"id"`
		TableID     uint                 `json:"table_id"`
		CreatedBy   string               `json:"created_by"`
		OrderDate   time.Time            `json:"order_date"`
		TotalAmount float64              `json:"total_amount"`
		Status      entities.OrderStatus `json:"status"`
		Items       []OrderItemResponse  `json:"items"`
	}

	// RemoveItemResult reports whether the removal collapsed the whole
	// order (the last dish was removed, so the order was deleted).
	RemoveItemResult struct {
		OrderDeleted bool    `json:"order_deleted"`
		NewTotal     float64 `json:"new_total"`
	}

	KitchenQueueEntry struct {
		ItemID      uint                     `json:"item_id"`
		OrderID     uint                     `json:"order_id"`
		TableNumber string                   `json:"table_number"`
		DishName    string                   `json:"dish_name"`
		Quantity    int                      `json:"quantity"`
		Status      entities.OrderItemStatus `json:"status"`
		OrderDate   time.Time                `json:"order_date"`
	}
)
