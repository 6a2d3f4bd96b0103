package entities

// Status values are persisted as-is, so the constants double as the
// database representation.

type TableStatus string

const (
	TableFree             TableStatus = "Free"
	TableOccupied         TableStatus = "Occupied"
	TableReserved         TableStatus = "Reserved"
	TableUnderMaintenance TableStatus = "Under Maintenance"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableFree, TableOccupied, TableReserved, TableUnderMaintenance:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPlaced     OrderStatus = "Placed"
	OrderInProgress OrderStatus = "In Progress"
	OrderServed     OrderStatus = "Served"
	OrderPaid       OrderStatus = "Paid"
)

// ActiveOrderStatuses are the non-terminal states: an order in any of them
// keeps its table occupied and is collected at checkout.
var ActiveOrderStatuses = []OrderStatus{OrderPlaced, OrderInProgress, OrderServed}

func (s OrderStatus) Terminal() bool {
	return s == OrderPaid
}

// CanTransition reports whether next is the legal successor of s. Order
// states form a linear chain with no regression.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderPlaced:
		return next == OrderInProgress
	case OrderInProgress:
		return next == OrderServed
	case OrderServed:
		return next == OrderPaid
	}
	return false
}

type OrderItemStatus string

const (
	ItemPending    OrderItemStatus = "Pending"
	ItemInProgress OrderItemStatus = "In Progress"
	ItemCompleted  OrderItemStatus = "Completed"
)

func (s OrderItemStatus) CanTransition(next OrderItemStatus) bool {
	switch s {
	case ItemPending:
		return next == ItemInProgress
	case ItemInProgress:
		return next == ItemCompleted
	}
	return false
}

type InventoryChangeType string

const (
	ChangeInbound    InventoryChangeType = "Inbound"
	ChangeOutbound   InventoryChangeType = "Outbound"
	ChangeAdjustment InventoryChangeType = "Adjustment"
)
