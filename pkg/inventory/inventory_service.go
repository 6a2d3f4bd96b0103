package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils/mailing"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id uint) error
		ListIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		CheckSufficiency(ctx context.Context, dishID uint, quantity int) (domain.SufficiencyResult, error)
		Deduct(ctx context.Context, dishID uint, quantity int, actor, reason string) error
		AdjustStock(ctx context.Context, id uint, req domain.AdjustStockRequest, actor string) error
		Restock(ctx context.Context, id uint, req domain.RestockRequest, actor string) error
		ListLogs(ctx context.Context, ingredientID uint, page, limit int) ([]domain.InventoryLogResponse, int64, error)
		SendLowStockAlert(ctx context.Context) (int, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
	}
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:                ingredient.ID,
		Name:              ingredient.Name,
		Unit:              ingredient.Unit,
		Stock:             ingredient.Stock,
		LowStockThreshold: ingredient.LowStockThreshold,
		NeedsRestock:      ingredient.NeedsRestock(),
	}
}

func (s *inventoryService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	if req.Stock < 0 {
		return domain.IngredientResponse{}, domain.ErrNegativeStock
	}

	ingredient := &entities.Ingredient{
		Name:              req.Name,
		Unit:              req.Unit,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	}

	if err := s.inventoryRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

func (s *inventoryService) DeleteIngredient(ctx context.Context, id uint) error {
	if _, err := s.inventoryRepository.GetIngredientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return s.inventoryRepository.DeleteIngredient(ctx, id)
}

func (s *inventoryService) ListIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.inventoryRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, toIngredientResponse(ingredient))
	}
	return response, nil
}

// CheckSufficiency is the read-only half of the two-phase inventory
// commitment: it compares required quantities against current stock
// without mutating anything. The authoritative re-check happens inside
// Deduct.
func (s *inventoryService) CheckSufficiency(ctx context.Context, dishID uint, quantity int) (domain.SufficiencyResult, error) {
	entries, err := s.inventoryRepository.GetRecipeEntries(ctx, dishID)
	if err != nil {
		return domain.SufficiencyResult{}, err
	}
	if len(entries) == 0 {
		return domain.SufficiencyResult{}, domain.ErrUnconfiguredRecipe
	}

	var shortfalls []domain.Shortfall
	for _, entry := range entries {
		required := entry.Quantity * float64(quantity)
		if entry.Ingredient.Stock < required {
			shortfalls = append(shortfalls, domain.Shortfall{
				IngredientID:   entry.IngredientID,
				IngredientName: entry.Ingredient.Name,
				Required:       required,
				Available:      entry.Ingredient.Stock,
				Unit:           entry.Ingredient.Unit,
			})
		}
	}

	return domain.SufficiencyResult{
		Sufficient: len(shortfalls) == 0,
		Shortfalls: shortfalls,
	}, nil
}

func (s *inventoryService) Deduct(ctx context.Context, dishID uint, quantity int, actor, reason string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return s.inventoryRepository.DeductForDish(ctx, dishID, quantity, actor, reason)
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uint, req domain.AdjustStockRequest, actor string) error {
	if req.NewStock < 0 {
		return domain.ErrNegativeStock
	}

	if _, err := s.inventoryRepository.GetIngredientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual stock adjustment"
	}
	return s.inventoryRepository.SetStock(ctx, id, req.NewStock, actor, reason)
}

func (s *inventoryService) Restock(ctx context.Context, id uint, req domain.RestockRequest, actor string) error {
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	if _, err := s.inventoryRepository.GetIngredientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	reason := req.Reason
	if reason == "" {
		reason = "stock replenishment"
	}
	return s.inventoryRepository.AddStock(ctx, id, req.Quantity, actor, reason)
}

func (s *inventoryService) ListLogs(ctx context.Context, ingredientID uint, page, limit int) ([]domain.InventoryLogResponse, int64, error) {
	logs, count, err := s.inventoryRepository.GetLogs(ctx, ingredientID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.InventoryLogResponse, 0, len(logs))
	for _, logEntry := range logs {
		item := domain.InventoryLogResponse{
			ID:           logEntry.ID,
			IngredientID: logEntry.IngredientID,
			ChangeType:   logEntry.ChangeType,
			Quantity:     logEntry.Quantity,
			OldStock:     logEntry.OldStock,
			NewStock:     logEntry.NewStock,
			Reason:       logEntry.Reason,
			CreatedBy:    logEntry.CreatedBy,
			CreatedAt:    logEntry.CreatedAt.Format(time.DateTime),
		}
		if logEntry.Ingredient != nil {
			item.IngredientName = logEntry.Ingredient.Name
		}
		response = append(response, item)
	}
	return response, count, nil
}

// SendLowStockAlert mails the configured address a summary of every
// ingredient at or below its threshold. Returns how many ingredients
// were reported; sending is skipped when there is nothing to report or
// no recipient is configured.
func (s *inventoryService) SendLowStockAlert(ctx context.Context) (int, error) {
	ingredients, err := s.inventoryRepository.GetLowStockIngredients(ctx)
	if err != nil {
		return 0, err
	}
	if len(ingredients) == 0 {
		return 0, nil
	}

	recipient := utils.GetConfig("STOCK_ALERT_EMAIL")
	if recipient == "" {
		return len(ingredients), nil
	}

	var body strings.Builder
	body.WriteString("<p>The following ingredients need restocking:</p><ul>")
	for _, ingredient := range ingredients {
		body.WriteString(fmt.Sprintf("<li>%s: %.2f%s left (threshold %.2f%s)</li>",
			ingredient.Name, ingredient.Stock, ingredient.Unit,
			ingredient.LowStockThreshold, ingredient.Unit))
	}
	body.WriteString("</ul>")

	if err := mailing.SendMail(recipient, "Low stock alert", body.String()); err != nil {
		return len(ingredients), err
	}
	return len(ingredients), nil
}
