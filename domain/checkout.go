package domain

import (
	"errors"
	"time"
)

const (
	PaymentCash   = "Cash"
	PaymentWeChat = "WeChat Pay"
	PaymentAlipay = "Alipay"
)

var (
	MessageSuccessCheckout = "checkout completed successfully"
	MessageFailedCheckout  = "failed to checkout"

	ErrNoActiveOrders       = errors.New("no orders available for checkout at this table")
	ErrZeroBalance          = errors.New("order total is zero, nothing to collect")
	ErrInsufficientPayment  = errors.New("received amount is less than the total due")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

type (
	CheckoutRequest struct {
		TableID        uint    `json:"table_id" validate:"required"`
		PaymentMethod  string  `json:"payment_method" validate:"required"`
		ReceivedAmount float64 `json:"received_amount" validate:"omitempty,min=0"`
	}

	SettlementLine struct {
		DishName string  `json:"dish_name"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	}

	// Settlement is the finalized checkout record handed to receipt
	// rendering. Rendering itself lives outside the core.
	Settlement struct {
		ReceiptNumber  string           `json:"receipt_number"`
		TableNumber    string           `json:"table_number"`
		OrderIDs       []uint           `json:"order_ids"`
		Lines          []SettlementLine `json:"lines"`
		TotalAmount    float64          `json:"total_amount"`
		PaymentMethod  string           `json:"payment_method"`
		ReceivedAmount float64          `json:"received_amount"`
		ChangeAmount   float64          `json:"change_amount"`
		CheckoutTime   time.Time        `json:"checkout_time"`
	}
)
