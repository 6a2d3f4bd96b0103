package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/catalog"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/inventory"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/table"
	"gorm.io/gorm"
)

type (
	OrderService interface {
		CreateOrder(ctx context.Context, req domain.CreateOrderRequest, actor string) (domain.OrderResponse, error)
		AddItem(ctx context.Context, orderID uint, req domain.AddOrderItemRequest) (domain.OrderItemResponse, error)
		RemoveItem(ctx context.Context, itemID uint) (domain.RemoveItemResult, error)
		SubmitOrder(ctx context.Context, orderID uint) error
		StartPreparation(ctx context.Context, itemID uint, actor string) error
		CompleteItem(ctx context.Context, itemID uint) error
		ListOrdersForTable(ctx context.Context, tableID uint, status string) ([]domain.OrderResponse, error)
		KitchenQueue(ctx context.Context, status string) ([]domain.KitchenQueueEntry, error)
	}

	orderService struct {
		orderRepository   OrderRepository
		tableRepository   table.TableRepository
		catalogRepository catalog.CatalogRepository
		inventoryService  inventory.InventoryService
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	tableRepository table.TableRepository,
	catalogRepository catalog.CatalogRepository,
	inventoryService inventory.InventoryService,
) OrderService {
	return &orderService{
		orderRepository:   orderRepository,
		tableRepository:   tableRepository,
		catalogRepository: catalogRepository,
		inventoryService:  inventoryService,
	}
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	response := domain.OrderResponse{
		ID:          order.ID,
		TableID:     order.TableID,
		CreatedBy:   order.CreatedBy,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Items:       make([]domain.OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		line := domain.OrderItemResponse{
			ID:       item.ID,
			DishID:   item.DishID,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
			Status:   item.Status,
		}
		if item.Dish != nil {
			line.DishName = item.Dish.Name
			line.Price = item.Dish.Price
		}
		response.Items = append(response.Items, line)
	}
	return response
}

func (s *orderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, actor string) (domain.OrderResponse, error) {
	if _, err := s.tableRepository.GetTableByID(ctx, req.TableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrTableNotFound
		}
		return domain.OrderResponse{}, err
	}

	order := &entities.Order{
		TableID:   req.TableID,
		CreatedBy: actor,
		OrderDate: time.Now(),
		Status:    entities.OrderPlaced,
	}

	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

// AddItem deliberately skips any inventory check: adding to an order is
// cheap and reversible, inventory commitment happens at submission and
// preparation time.
func (s *orderService) AddItem(ctx context.Context, orderID uint, req domain.AddOrderItemRequest) (domain.OrderItemResponse, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderItemResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderItemResponse{}, err
	}
	if order.Status.Terminal() {
		return domain.OrderItemResponse{}, domain.ErrOrderPaid
	}

	dish, err := s.catalogRepository.GetDishByID(ctx, req.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderItemResponse{}, domain.ErrDishNotFound
		}
		return domain.OrderItemResponse{}, err
	}
	if !dish.IsAvailable {
		return domain.OrderItemResponse{}, domain.ErrDishNotAvailable
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return domain.OrderItemResponse{}, domain.ErrInvalidQuantity
	}

	item := &entities.OrderItem{
		OrderID:  orderID,
		DishID:   dish.ID,
		Quantity: quantity,
		Subtotal: dish.Price * float64(quantity),
		Status:   entities.ItemPending,
	}

	if err := s.orderRepository.AddItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderItemResponse{}, domain.ErrOrderPaid
		}
		return domain.OrderItemResponse{}, err
	}

	return domain.OrderItemResponse{
		ID:       item.ID,
		DishID:   dish.ID,
		DishName: dish.Name,
		Price:    dish.Price,
		Quantity: quantity,
		Subtotal: item.Subtotal,
		Status:   item.Status,
	}, nil
}

func (s *orderService) RemoveItem(ctx context.Context, itemID uint) (domain.RemoveItemResult, error) {
	item, err := s.orderRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RemoveItemResult{}, domain.ErrOrderItemNotFound
		}
		return domain.RemoveItemResult{}, err
	}
	if item.Status != entities.ItemPending {
		return domain.RemoveItemResult{}, domain.ErrItemNotPending
	}

	orderDeleted, newTotal, err := s.orderRepository.RemoveItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RemoveItemResult{}, domain.ErrItemNotPending
		}
		return domain.RemoveItemResult{}, err
	}

	return domain.RemoveItemResult{
		OrderDeleted: orderDeleted,
		NewTotal:     newTotal,
	}, nil
}

// SubmitOrder validates stock for every pending item without deducting
// anything. A single short dish rejects the whole submission; actual
// deduction is deferred to StartPreparation.
func (s *orderService) SubmitOrder(ctx context.Context, orderID uint) error {
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if order.Status != entities.OrderPlaced {
		return domain.ErrOrderNotPlaced
	}

	items, err := s.orderRepository.GetPendingItems(ctx, orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrNoPendingItems
	}

	var shortfalls []domain.Shortfall
	for _, item := range items {
		result, err := s.inventoryService.CheckSufficiency(ctx, item.DishID, item.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrUnconfiguredRecipe) && item.Dish != nil {
				return fmt.Errorf("dish %q: %w", item.Dish.Name, domain.ErrUnconfiguredRecipe)
			}
			return err
		}
		shortfalls = append(shortfalls, result.Shortfalls...)
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	return s.orderRepository.UpdateOrderStatus(ctx, orderID, entities.OrderInProgress)
}

// StartPreparation commits the inventory for one item. The item is
// claimed with a conditional Pending to In Progress update before the
// ledger is touched, so two concurrent calls can never both deduct for
// the same line. If the ledger fails the claim is reverted and the item
// stays Pending with the shortfall reported.
func (s *orderService) StartPreparation(ctx context.Context, itemID uint, actor string) error {
	item, err := s.orderRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderItemNotFound
		}
		return err
	}
	if item.Status != entities.ItemPending {
		return domain.ErrItemNotPending
	}

	claimed, err := s.orderRepository.TransitionItemStatus(ctx, itemID, entities.ItemPending, entities.ItemInProgress)
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrItemNotPending
	}

	reason := fmt.Sprintf("order %d consumption", item.OrderID)
	if err := s.inventoryService.Deduct(ctx, item.DishID, item.Quantity, actor, reason); err != nil {
		if _, revertErr := s.orderRepository.TransitionItemStatus(ctx, itemID, entities.ItemInProgress, entities.ItemPending); revertErr != nil {
			return revertErr
		}
		return err
	}
	return nil
}

func (s *orderService) CompleteItem(ctx context.Context, itemID uint) error {
	item, err := s.orderRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderItemNotFound
		}
		return err
	}
	if item.Status != entities.ItemInProgress {
		return domain.ErrItemNotInProgress
	}

	_, err = s.orderRepository.CompleteItem(ctx, itemID)
	return err
}

func (s *orderService) ListOrdersForTable(ctx context.Context, tableID uint, status string) ([]domain.OrderResponse, error) {
	if _, err := s.tableRepository.GetTableByID(ctx, tableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}

	var statusFilter entities.OrderStatus
	if status != "" && status != "All" {
		statusFilter = entities.OrderStatus(status)
	}

	orders, err := s.orderRepository.GetOrdersForTable(ctx, tableID, statusFilter)
	if err != nil {
		return nil, err
	}

	response := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	return response, nil
}

func (s *orderService) KitchenQueue(ctx context.Context, status string) ([]domain.KitchenQueueEntry, error) {
	var statusFilter entities.OrderItemStatus
	if status != "" && status != "All" {
		statusFilter = entities.OrderItemStatus(status)
	}

	rows, err := s.orderRepository.GetKitchenQueue(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.KitchenQueueEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.KitchenQueueEntry{
			ItemID:      row.ItemID,
			OrderID:     row.OrderID,
			TableNumber: row.TableNumber,
			DishName:    row.DishName,
			Quantity:    row.Quantity,
			Status:      row.Status,
			OrderDate:   row.OrderDate,
		})
	}
	return entries, nil
}
