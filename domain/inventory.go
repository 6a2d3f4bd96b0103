package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
)

var (
	MessageSuccessCreateIngredient = "ingredient added successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessAdjustStock      = "stock adjusted successfully"
	MessageSuccessRestock          = "stock replenished successfully"
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessGetInventoryLogs = "inventory logs retrieved successfully"
	MessageSuccessLowStockAlert    = "low stock report sent"

	MessageFailedCreateIngredient = "failed to add ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedAdjustStock      = "failed to adjust stock"
	MessageFailedRestock          = "failed to replenish stock"
	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedGetInventoryLogs = "failed to retrieve inventory logs"
	MessageFailedLowStockAlert    = "failed to send low stock report"

	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrNegativeStock      = errors.New("stock cannot be negative")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrUnconfiguredRecipe = errors.New("dish has no ingredients configured")
	ErrInsufficientStock  = errors.New("insufficient ingredient stock")
)

// Shortfall describes one ingredient that cannot cover the required
// quantity. Callers display the full list, never a bare boolean.
type Shortfall struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Required       float64 `json:"required"`
	Available      float64 `json:"available"`
	Unit           string  `json:"unit"`
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s short by %.2f%s (required %.2f%s, available %.2f%s)",
		s.IngredientName, s.Required-s.Available, s.Unit, s.Required, s.Unit, s.Available, s.Unit)
}

// InsufficientStockError carries the per-ingredient shortfall detail.
// errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, s.String())
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type (
	CreateIngredientRequest struct {
		Name              string  `json:"name" validate:"required"`
		Unit              string  `json:"unit" validate:"required"`
		Stock             float64 `json:"stock" validate:"min=0"`
		LowStockThreshold float64 `json:"low_stock_threshold" validate:"min=0"`
	}

	AdjustStockRequest struct {
		NewStock float64 `json:"new_stock"`
		Reason   string  `json:"reason"`
	}

	RestockRequest struct {
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Reason   string  `json:"reason"`
	}

	IngredientResponse struct {
		ID                uint    `json:"id"`
		Name              string  `json:"name"`
		Unit              string  `json:"unit"`
		Stock             float64 `json:"stock"`
		LowStockThreshold float64 `json:"low_stock_threshold"`
		NeedsRestock      bool    `json:"needs_restock"`
	}

	SufficiencyResult struct {
		Sufficient bool        `json:"sufficient"`
		Shortfalls []Shortfall `json:"shortfalls,omitempty"`
	}

	InventoryLogResponse struct {
		ID             uint                         `json:"id"`
		IngredientID   uint                         `json:"ingredient_id"`
		IngredientName string                       `json:"ingredient_name"`
		ChangeType     entities.InventoryChangeType `json:"change_type"`
		Quantity       float64                      `json:"quantity"`
		OldStock       float64                      `json:"old_stock"`
		NewStock       float64                      `json:"new_stock"`
		Reason         string                       `json:"reason"`
		CreatedBy      string                       `json:"created_by"`
		CreatedAt      string                       `json:"created_at"`
	}
)
