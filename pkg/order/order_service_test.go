package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/testutil"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/catalog"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/inventory"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/table"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service OrderService

	tableID uint
	dishID  uint
	kitchen uint // ingredient id
}

// newFixture seeds one free table and one available dish whose recipe
// consumes 0.3kg of a single ingredient per serving.
func newFixture(t *testing.T, stock float64) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	diningTable := entities.Table{TableNumber: "Table 1", Capacity: 4, Status: entities.TableFree}
	if err := db.Create(&diningTable).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	ingredient := entities.Ingredient{Name: "Chicken", Unit: "kg", Stock: stock, LowStockThreshold: 1}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	dish := entities.Dish{Name: "Kung Pao Chicken", Price: 38.0, IsAvailable: true}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}
	entry := entities.DishIngredient{DishID: dish.ID, IngredientID: ingredient.ID, Quantity: 0.3}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}

	inventoryService := inventory.NewInventoryService(inventory.NewInventoryRepository(db))
	service := NewOrderService(
		NewOrderRepository(db),
		table.NewTableRepository(db),
		catalog.NewCatalogRepository(db),
		inventoryService,
	)

	return &fixture{
		db:      db,
		service: service,
		tableID: diningTable.ID,
		dishID:  dish.ID,
		kitchen: ingredient.ID,
	}
}

func (f *fixture) tableStatus(t *testing.T) entities.TableStatus {
	t.Helper()
	var diningTable entities.Table
	if err := f.db.First(&diningTable, f.tableID).Error; err != nil {
		t.Fatalf("load table: %v", err)
	}
	return diningTable.Status
}

func (f *fixture) orderStatus(t *testing.T, orderID uint) entities.OrderStatus {
	t.Helper()
	var order entities.Order
	if err := f.db.First(&order, orderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	return order.Status
}

func (f *fixture) itemStatus(t *testing.T, itemID uint) entities.OrderItemStatus {
	t.Helper()
	var item entities.OrderItem
	if err := f.db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	return item.Status
}

func TestCreateOrderOccupiesTable(t *testing.T) {
	f := newFixture(t, 10)

	res, err := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.Status != entities.OrderPlaced {
		t.Fatalf("status = %s, want Placed", res.Status)
	}
	if res.TotalAmount != 0 {
		t.Fatalf("total = %v, want 0", res.TotalAmount)
	}
	if res.CreatedBy != "alice" {
		t.Fatalf("created by = %q", res.CreatedBy)
	}

	if got := f.tableStatus(t); got != entities.TableOccupied {
		t.Fatalf("table status = %s, want Occupied", got)
	}
}

func TestCreateOrderTableNotFound(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: 999}, "alice")
	if !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
}

func TestAddItemFreezesSubtotal(t *testing.T) {
	f := newFixture(t, 10)

	order, err := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	item, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Subtotal != 76.0 {
		t.Fatalf("subtotal = %v, want 76.0", item.Subtotal)
	}

	// A later price change must not alter the recorded subtotal.
	if err := f.db.Model(&entities.Dish{}).Where("id = ?", f.dishID).Update("price", 99.0).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}
	var stored entities.OrderItem
	if err := f.db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	if stored.Subtotal != 76.0 {
		t.Fatalf("stored subtotal = %v, want 76.0", stored.Subtotal)
	}

	var storedOrder entities.Order
	if err := f.db.First(&storedOrder, order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if storedOrder.TotalAmount != 76.0 {
		t.Fatalf("order total = %v, want 76.0", storedOrder.TotalAmount)
	}
}

func TestAddItemDefaultQuantity(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", item.Quantity)
	}
}

func TestAddItemUnavailableDish(t *testing.T) {
	f := newFixture(t, 10)

	if err := f.db.Model(&entities.Dish{}).Where("id = ?", f.dishID).Update("is_available", false).Error; err != nil {
		t.Fatalf("update dish: %v", err)
	}

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	_, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if !errors.Is(err, domain.ErrDishNotAvailable) {
		t.Fatalf("err = %v, want ErrDishNotAvailable", err)
	}
}

func TestAddItemPaidOrder(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if err := f.db.Model(&entities.Order{}).Where("id = ?", order.ID).Update("status", entities.OrderPaid).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}

	_, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("err = %v, want ErrOrderPaid", err)
	}
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	first, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 1})
	if _, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	res, err := f.service.RemoveItem(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if res.OrderDeleted {
		t.Fatal("order deleted with items remaining")
	}
	if res.NewTotal != 76.0 {
		t.Fatalf("new total = %v, want 76.0", res.NewTotal)
	}
}

func TestRemoveLastItemCollapsesOrder(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})

	res, err := f.service.RemoveItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !res.OrderDeleted {
		t.Fatal("order not deleted after last item removed")
	}

	var count int64
	if err := f.db.Model(&entities.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatal("collapsed order still present")
	}

	// The collapsed order was the table's only one, so the table frees up.
	if got := f.tableStatus(t); got != entities.TableFree {
		t.Fatalf("table status = %s, want Free", got)
	}
}

func TestRemoveItemNotPending(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if err := f.db.Model(&entities.OrderItem{}).Where("id = ?", item.ID).Update("status", entities.ItemInProgress).Error; err != nil {
		t.Fatalf("update item: %v", err)
	}

	_, err := f.service.RemoveItem(context.Background(), item.ID)
	if !errors.Is(err, domain.ErrItemNotPending) {
		t.Fatalf("err = %v, want ErrItemNotPending", err)
	}
}

func TestSubmitOrder(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if _, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if got := f.orderStatus(t, order.ID); got != entities.OrderInProgress {
		t.Fatalf("order status = %s, want In Progress", got)
	}

	// Submission checks stock but never deducts it.
	var ingredient entities.Ingredient
	if err := f.db.First(&ingredient, f.kitchen).Error; err != nil {
		t.Fatalf("load ingredient: %v", err)
	}
	if ingredient.Stock != 10 {
		t.Fatalf("stock = %v, want 10 untouched", ingredient.Stock)
	}
}

func TestSubmitOrderNoPendingItems(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	err := f.service.SubmitOrder(context.Background(), order.ID)
	if !errors.Is(err, domain.ErrNoPendingItems) {
		t.Fatalf("err = %v, want ErrNoPendingItems", err)
	}
}

func TestSubmitOrderInsufficientStock(t *testing.T) {
	f := newFixture(t, 0.3)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if _, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	err := f.service.SubmitOrder(context.Background(), order.ID)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) || len(stockErr.Shortfalls) != 1 {
		t.Fatalf("missing shortfall detail: %v", err)
	}

	// A rejected submission leaves the order where it was.
	if got := f.orderStatus(t, order.ID); got != entities.OrderPlaced {
		t.Fatalf("order status = %s, want Placed", got)
	}
}

func TestSubmitOrderNotPlaced(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if err := f.db.Model(&entities.Order{}).Where("id = ?", order.ID).Update("status", entities.OrderInProgress).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}

	err := f.service.SubmitOrder(context.Background(), order.ID)
	if !errors.Is(err, domain.ErrOrderNotPlaced) {
		t.Fatalf("err = %v, want ErrOrderNotPlaced", err)
	}
}

func TestStartPreparationDeductsStock(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2})
	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	if err := f.service.StartPreparation(context.Background(), item.ID, "cook"); err != nil {
		t.Fatalf("StartPreparation: %v", err)
	}

	if got := f.itemStatus(t, item.ID); got != entities.ItemInProgress {
		t.Fatalf("item status = %s, want In Progress", got)
	}

	var ingredient entities.Ingredient
	if err := f.db.First(&ingredient, f.kitchen).Error; err != nil {
		t.Fatalf("load ingredient: %v", err)
	}
	if ingredient.Stock != 9.4 {
		t.Fatalf("stock = %v, want 9.4", ingredient.Stock)
	}

	var logCount int64
	if err := f.db.Model(&entities.InventoryLog{}).Where("change_type = ?", entities.ChangeOutbound).Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 1 {
		t.Fatalf("outbound logs = %d, want 1", logCount)
	}
}

func TestStartPreparationInsufficientLeavesPending(t *testing.T) {
	f := newFixture(t, 0.6)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2})
	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	// Another party consumes the stock between submission and preparation.
	if err := f.db.Model(&entities.Ingredient{}).Where("id = ?", f.kitchen).Update("stock", 0.1).Error; err != nil {
		t.Fatalf("drain stock: %v", err)
	}

	err := f.service.StartPreparation(context.Background(), item.ID, "cook")
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	if got := f.itemStatus(t, item.ID); got != entities.ItemPending {
		t.Fatalf("item status = %s, want Pending", got)
	}

	var ingredient entities.Ingredient
	if err := f.db.First(&ingredient, f.kitchen).Error; err != nil {
		t.Fatalf("load ingredient: %v", err)
	}
	if ingredient.Stock != 0.1 {
		t.Fatalf("stock = %v, want 0.1 untouched", ingredient.Stock)
	}
}

func TestStartPreparationConcurrentDeductsOnce(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 2})
	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	// Racing cooks claim the same item; the conditional transition lets
	// exactly one of them reach the ledger.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- f.service.StartPreparation(context.Background(), item.ID, "cook")
		}()
	}
	wg.Wait()
	close(results)

	var successes, rejected int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrItemNotPending):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || rejected != 1 {
		t.Fatalf("successes = %d, rejected = %d, want 1 and 1", successes, rejected)
	}

	var ingredient entities.Ingredient
	if err := f.db.First(&ingredient, f.kitchen).Error; err != nil {
		t.Fatalf("load ingredient: %v", err)
	}
	if ingredient.Stock != 9.4 {
		t.Fatalf("stock = %v, want 9.4 deducted once", ingredient.Stock)
	}

	var logCount int64
	if err := f.db.Model(&entities.InventoryLog{}).Where("change_type = ?", entities.ChangeOutbound).Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 1 {
		t.Fatalf("outbound logs = %d, want 1", logCount)
	}
}

func TestStartPreparationNotPending(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if err := f.service.StartPreparation(context.Background(), item.ID, "cook"); err != nil {
		t.Fatalf("StartPreparation: %v", err)
	}

	err := f.service.StartPreparation(context.Background(), item.ID, "cook")
	if !errors.Is(err, domain.ErrItemNotPending) {
		t.Fatalf("err = %v, want ErrItemNotPending", err)
	}
}

func TestCompleteItemPromotesOrder(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	first, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	second, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if err := f.service.SubmitOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	for _, id := range []uint{first.ID, second.ID} {
		if err := f.service.StartPreparation(context.Background(), id, "cook"); err != nil {
			t.Fatalf("StartPreparation: %v", err)
		}
	}

	if err := f.service.CompleteItem(context.Background(), first.ID); err != nil {
		t.Fatalf("CompleteItem: %v", err)
	}
	if got := f.orderStatus(t, order.ID); got != entities.OrderInProgress {
		t.Fatalf("order promoted early: %s", got)
	}

	if err := f.service.CompleteItem(context.Background(), second.ID); err != nil {
		t.Fatalf("CompleteItem: %v", err)
	}
	if got := f.orderStatus(t, order.ID); got != entities.OrderServed {
		t.Fatalf("order status = %s, want Served", got)
	}
}

func TestCompleteItemNotInProgress(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})

	err := f.service.CompleteItem(context.Background(), item.ID)
	if !errors.Is(err, domain.ErrItemNotInProgress) {
		t.Fatalf("err = %v, want ErrItemNotInProgress", err)
	}
}

func TestListOrdersForTableDefaultsToActive(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if _, err := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	paid := entities.Order{TableID: f.tableID, CreatedBy: "alice", Status: entities.OrderPaid}
	if err := f.db.Create(&paid).Error; err != nil {
		t.Fatalf("seed paid order: %v", err)
	}

	orders, err := f.service.ListOrdersForTable(context.Background(), f.tableID, "")
	if err != nil {
		t.Fatalf("ListOrdersForTable: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1 active", len(orders))
	}
	if orders[0].ID != order.ID {
		t.Fatalf("unexpected order %d", orders[0].ID)
	}

	all, err := f.service.ListOrdersForTable(context.Background(), f.tableID, string(entities.OrderPaid))
	if err != nil {
		t.Fatalf("ListOrdersForTable paid: %v", err)
	}
	if len(all) != 1 || all[0].ID != paid.ID {
		t.Fatalf("paid filter returned %d orders", len(all))
	}
}

func TestKitchenQueue(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID, Quantity: 3})

	entries, err := f.service.KitchenQueue(context.Background(), "")
	if err != nil {
		t.Fatalf("KitchenQueue: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.ItemID != item.ID || entry.TableNumber != "Table 1" || entry.DishName != "Kung Pao Chicken" || entry.Quantity != 3 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	filtered, err := f.service.KitchenQueue(context.Background(), string(entities.ItemCompleted))
	if err != nil {
		t.Fatalf("KitchenQueue filtered: %v", err)
	}
	if len(filtered) != 0 {
		t.Fatalf("completed filter returned %d entries", len(filtered))
	}
}

func TestKitchenQueueFiltersByItemStatusOnly(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})

	// The queue shows items by their own status, regardless of what the
	// parent order has moved on to.
	if err := f.db.Model(&entities.Order{}).Where("id = ?", order.ID).Update("status", entities.OrderPaid).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}

	entries, err := f.service.KitchenQueue(context.Background(), string(entities.ItemPending))
	if err != nil {
		t.Fatalf("KitchenQueue: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemID != item.ID {
		t.Fatalf("entries = %+v, want the pending item", entries)
	}
}

func TestRemoveItemReassertsPendingInTransaction(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	item, _ := f.service.AddItem(context.Background(), order.ID, domain.AddOrderItemRequest{DishID: f.dishID})
	if err := f.db.Model(&entities.OrderItem{}).Where("id = ?", item.ID).Update("status", entities.ItemInProgress).Error; err != nil {
		t.Fatalf("update item: %v", err)
	}

	// Straight to the repository, bypassing the service gate: the
	// transaction itself must refuse an item that is no longer Pending.
	repo := NewOrderRepository(f.db)
	if _, _, err := repo.RemoveItem(context.Background(), item.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}

	var count int64
	if err := f.db.Model(&entities.OrderItem{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Fatal("non-pending item was removed")
	}
}

func TestAddItemReassertsActiveOrderInTransaction(t *testing.T) {
	f := newFixture(t, 10)

	order, _ := f.service.CreateOrder(context.Background(), domain.CreateOrderRequest{TableID: f.tableID}, "alice")
	if err := f.db.Model(&entities.Order{}).Where("id = ?", order.ID).Update("status", entities.OrderPaid).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}

	repo := NewOrderRepository(f.db)
	item := &entities.OrderItem{OrderID: order.ID, DishID: f.dishID, Quantity: 1, Subtotal: 38.0, Status: entities.ItemPending}
	if err := repo.AddItem(context.Background(), item); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}

	// The insert rolls back with the refused total update.
	var count int64
	if err := f.db.Model(&entities.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Fatal("item landed on a settled order")
	}
}
