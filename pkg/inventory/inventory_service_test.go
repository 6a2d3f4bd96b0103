package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/testutil"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (InventoryService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewInventoryService(NewInventoryRepository(db)), db
}

func seedDishWithRecipe(t *testing.T, db *gorm.DB, stock float64, perServing float64) (dishID, ingredientID uint) {
	t.Helper()

	ingredient := entities.Ingredient{Name: "Chicken", Unit: "kg", Stock: stock, LowStockThreshold: 1}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	dish := entities.Dish{Name: "Kung Pao Chicken", Price: 38.0, IsAvailable: true}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}
	entry := entities.DishIngredient{DishID: dish.ID, IngredientID: ingredient.ID, Quantity: perServing}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return dish.ID, ingredient.ID
}

func currentStock(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var ingredient entities.Ingredient
	if err := db.First(&ingredient, id).Error; err != nil {
		t.Fatalf("load ingredient: %v", err)
	}
	return ingredient.Stock
}

func TestCheckSufficiency(t *testing.T) {
	tests := []struct {
		name           string
		stock          float64
		perServing     float64
		quantity       int
		wantSufficient bool
	}{
		{name: "enough stock", stock: 10, perServing: 0.3, quantity: 2, wantSufficient: true},
		{name: "exactly enough", stock: 0.6, perServing: 0.3, quantity: 2, wantSufficient: true},
		{name: "short", stock: 0.5, perServing: 0.3, quantity: 2, wantSufficient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, db := newTestService(t)
			dishID, ingredientID := seedDishWithRecipe(t, db, tt.stock, tt.perServing)

			result, err := service.CheckSufficiency(context.Background(), dishID, tt.quantity)
			if err != nil {
				t.Fatalf("CheckSufficiency: %v", err)
			}
			if result.Sufficient != tt.wantSufficient {
				t.Fatalf("Sufficient = %v, want %v", result.Sufficient, tt.wantSufficient)
			}
			if !tt.wantSufficient {
				if len(result.Shortfalls) != 1 {
					t.Fatalf("shortfalls = %d, want 1", len(result.Shortfalls))
				}
				s := result.Shortfalls[0]
				if s.IngredientID != ingredientID || s.Available != tt.stock {
					t.Fatalf("unexpected shortfall: %+v", s)
				}
			}

			// A pure check must not touch the stock.
			if got := currentStock(t, db, ingredientID); got != tt.stock {
				t.Fatalf("stock changed to %v during check", got)
			}
		})
	}
}

func TestCheckSufficiencyUnconfiguredRecipe(t *testing.T) {
	service, db := newTestService(t)

	dish := entities.Dish{Name: "Mystery Dish", Price: 10, IsAvailable: true}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}

	_, err := service.CheckSufficiency(context.Background(), dish.ID, 1)
	if !errors.Is(err, domain.ErrUnconfiguredRecipe) {
		t.Fatalf("err = %v, want ErrUnconfiguredRecipe", err)
	}
}

func TestDeductUnconfiguredRecipe(t *testing.T) {
	service, db := newTestService(t)

	dish := entities.Dish{Name: "Mystery Dish", Price: 10, IsAvailable: true}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}

	err := service.Deduct(context.Background(), dish.ID, 1, "alice", "order 1 consumption")
	if !errors.Is(err, domain.ErrUnconfiguredRecipe) {
		t.Fatalf("err = %v, want ErrUnconfiguredRecipe", err)
	}

	var logCount int64
	if err := db.Model(&entities.InventoryLog{}).Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 0 {
		t.Fatalf("logs = %d, want none", logCount)
	}
}

func TestDeduct(t *testing.T) {
	service, db := newTestService(t)
	dishID, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	if err := service.Deduct(context.Background(), dishID, 2, "alice", "order 1 consumption"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	if got := currentStock(t, db, ingredientID); got != 9.4 {
		t.Fatalf("stock = %v, want 9.4", got)
	}

	var logs []entities.InventoryLog
	if err := db.Where("ingredient_id = ?", ingredientID).Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	entry := logs[0]
	if entry.ChangeType != entities.ChangeOutbound {
		t.Fatalf("change type = %s, want Outbound", entry.ChangeType)
	}
	if entry.OldStock != 10 || entry.NewStock != 9.4 || entry.Quantity != 0.6 {
		t.Fatalf("unexpected log: %+v", entry)
	}
	if entry.CreatedBy != "alice" {
		t.Fatalf("created by = %q, want alice", entry.CreatedBy)
	}
}

func TestDeductInsufficientRollsBack(t *testing.T) {
	service, db := newTestService(t)
	dishID, ingredientID := seedDishWithRecipe(t, db, 0.5, 0.3)

	err := service.Deduct(context.Background(), dishID, 2, "alice", "order 1 consumption")
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("error does not carry shortfall detail: %v", err)
	}
	if len(stockErr.Shortfalls) != 1 || stockErr.Shortfalls[0].Required != 0.6 {
		t.Fatalf("unexpected shortfalls: %+v", stockErr.Shortfalls)
	}

	if got := currentStock(t, db, ingredientID); got != 0.5 {
		t.Fatalf("stock = %v, want 0.5 after rollback", got)
	}

	var count int64
	if err := db.Model(&entities.InventoryLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("logs = %d, want 0 after rollback", count)
	}
}

func TestDeductPartialRecipeRollsBack(t *testing.T) {
	service, db := newTestService(t)

	plenty := entities.Ingredient{Name: "Pork", Unit: "kg", Stock: 10, LowStockThreshold: 1}
	scarce := entities.Ingredient{Name: "Garlic", Unit: "kg", Stock: 0.01, LowStockThreshold: 1}
	if err := db.Create(&plenty).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&scarce).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	dish := entities.Dish{Name: "Twice-Cooked Pork", Price: 36, IsAvailable: true}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	entries := []entities.DishIngredient{
		{DishID: dish.ID, IngredientID: plenty.ID, Quantity: 0.3},
		{DishID: dish.ID, IngredientID: scarce.ID, Quantity: 0.02},
	}
	if err := db.Create(&entries).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := service.Deduct(context.Background(), dish.ID, 1, "bob", "order 2 consumption")
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// The ingredient with plenty of stock must not have been deducted.
	if got := currentStock(t, db, plenty.ID); got != 10 {
		t.Fatalf("pork stock = %v, want 10", got)
	}
}

func TestDeductInvalidQuantity(t *testing.T) {
	service, db := newTestService(t)
	dishID, _ := seedDishWithRecipe(t, db, 10, 0.3)

	for _, quantity := range []int{0, -1} {
		if err := service.Deduct(context.Background(), dishID, quantity, "alice", ""); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: err = %v, want ErrInvalidQuantity", quantity, err)
		}
	}
}

func TestDeductConcurrent(t *testing.T) {
	service, db := newTestService(t)
	// Stock covers exactly one serving.
	dishID, ingredientID := seedDishWithRecipe(t, db, 0.3, 0.3)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- service.Deduct(context.Background(), dishID, 1, "alice", "race")
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else if errors.Is(err, domain.ErrInsufficientStock) {
			failed++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Fatalf("succeeded = %d, failed = %d, want exactly one of each", succeeded, failed)
	}

	if got := currentStock(t, db, ingredientID); got != 0 {
		t.Fatalf("stock = %v, want 0", got)
	}
}

func TestAdjustStock(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	err := service.AdjustStock(context.Background(), ingredientID, domain.AdjustStockRequest{NewStock: 4}, "alice")
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}

	if got := currentStock(t, db, ingredientID); got != 4 {
		t.Fatalf("stock = %v, want 4", got)
	}

	var entry entities.InventoryLog
	if err := db.Where("ingredient_id = ?", ingredientID).First(&entry).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if entry.ChangeType != entities.ChangeAdjustment || entry.OldStock != 10 || entry.NewStock != 4 || entry.Quantity != -6 {
		t.Fatalf("unexpected log: %+v", entry)
	}
	if entry.Reason != "manual stock adjustment" {
		t.Fatalf("reason = %q", entry.Reason)
	}
}

func TestAdjustStockNegative(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	err := service.AdjustStock(context.Background(), ingredientID, domain.AdjustStockRequest{NewStock: -1}, "alice")
	if !errors.Is(err, domain.ErrNegativeStock) {
		t.Fatalf("err = %v, want ErrNegativeStock", err)
	}
}

func TestAdjustStockNotFound(t *testing.T) {
	service, _ := newTestService(t)

	err := service.AdjustStock(context.Background(), 999, domain.AdjustStockRequest{NewStock: 5}, "alice")
	if !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("err = %v, want ErrIngredientNotFound", err)
	}
}

func TestRestock(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	err := service.Restock(context.Background(), ingredientID, domain.RestockRequest{Quantity: 5, Reason: "weekly delivery"}, "bob")
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}

	if got := currentStock(t, db, ingredientID); got != 15 {
		t.Fatalf("stock = %v, want 15", got)
	}

	var entry entities.InventoryLog
	if err := db.Where("ingredient_id = ?", ingredientID).First(&entry).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if entry.ChangeType != entities.ChangeInbound || entry.OldStock != 10 || entry.NewStock != 15 {
		t.Fatalf("unexpected log: %+v", entry)
	}
	if entry.Reason != "weekly delivery" {
		t.Fatalf("reason = %q", entry.Reason)
	}
}

func TestRestockInvalidQuantity(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	err := service.Restock(context.Background(), ingredientID, domain.RestockRequest{Quantity: 0}, "bob")
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestListLogsPagination(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 100, 0.3)

	for i := 0; i < 5; i++ {
		if err := service.Restock(context.Background(), ingredientID, domain.RestockRequest{Quantity: 1}, "bob"); err != nil {
			t.Fatalf("Restock: %v", err)
		}
	}

	logs, count, err := service.ListLogs(context.Background(), ingredientID, 1, 3)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
	if len(logs) != 3 {
		t.Fatalf("page size = %d, want 3", len(logs))
	}

	logs, _, err = service.ListLogs(context.Background(), ingredientID, 2, 3)
	if err != nil {
		t.Fatalf("ListLogs page 2: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("page 2 size = %d, want 2", len(logs))
	}
}

func TestDeleteIngredientRemovesRecipeEntries(t *testing.T) {
	service, db := newTestService(t)
	_, ingredientID := seedDishWithRecipe(t, db, 10, 0.3)

	if err := service.DeleteIngredient(context.Background(), ingredientID); err != nil {
		t.Fatalf("DeleteIngredient: %v", err)
	}

	var count int64
	if err := db.Model(&entities.DishIngredient{}).Where("ingredient_id = ?", ingredientID).Count(&count).Error; err != nil {
		t.Fatalf("count recipe entries: %v", err)
	}
	if count != 0 {
		t.Fatalf("recipe entries = %d, want 0", count)
	}
}
