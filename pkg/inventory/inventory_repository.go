package inventory

import (
	"context"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id uint) error
		GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetLowStockIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetRecipeEntries(ctx context.Context, dishID uint) ([]*entities.DishIngredient, error)
		DeductForDish(ctx context.Context, dishID uint, quantity int, actor, reason string) error
		SetStock(ctx context.Context, id uint, newStock float64, actor, reason string) error
		AddStock(ctx context.Context, id uint, quantity float64, actor, reason string) error
		GetLogs(ctx context.Context, ingredientID uint, page, limit int) ([]*entities.InventoryLog, int64, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *inventoryRepository) DeleteIngredient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Recipe entries referencing the ingredient go with it.
		if err := tx.Where("ingredient_id = ?", id).Delete(&entities.DishIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Ingredient{}, "id = ?", id).Error
	})
}

func (r *inventoryRepository) GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *inventoryRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *inventoryRepository) GetLowStockIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("stock <= low_stock_threshold").
		Order("id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *inventoryRepository) GetRecipeEntries(ctx context.Context, dishID uint) ([]*entities.DishIngredient, error) {
	var entries []*entities.DishIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("dish_id = ?", dishID).
		Order("ingredient_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeductForDish re-validates sufficiency and decrements every recipe
// ingredient of the dish inside one transaction. The decrement is a
// conditional update (stock >= required), so two concurrent deductions
// sharing an ingredient can never jointly overdraw it: the loser's update
// matches zero rows and the whole transaction rolls back.
func (r *inventoryRepository) DeductForDish(ctx context.Context, dishID uint, quantity int, actor, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries []*entities.DishIngredient
		if err := tx.Preload("Ingredient").Where("dish_id = ?", dishID).Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrUnconfiguredRecipe
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
		if len(shortfalls) > 0 {
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		for _, entry := range entries {
			required := entry.Quantity * float64(quantity)

			res := tx.Model(&entities.Ingredient{}).
				Where("id = ? AND stock >= ?", entry.IngredientID, required).
				Update("stock", gorm.Expr("stock - ?", required))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Stock was consumed between the check above and this
				// update; report the current state and roll back.
				var current entities.Ingredient
				if err := tx.First(&current, entry.IngredientID).Error; err != nil {
					return err
				}
				return &domain.InsufficientStockError{Shortfalls: []domain.Shortfall{{
					IngredientID:   entry.IngredientID,
					IngredientName: current.Name,
					Required:       required,
					Available:      current.Stock,
					Unit:           current.Unit,
				}}}
			}

			var updated entities.Ingredient
			if err := tx.First(&updated, entry.IngredientID).Error; err != nil {
				return err
			}

			logEntry := entities.InventoryLog{
				IngredientID: entry.IngredientID,
				ChangeType:   entities.ChangeOutbound,
				Quantity:     required,
				OldStock:     updated.Stock + required,
				NewStock:     updated.Stock,
				Reason:       reason,
				CreatedBy:    actor,
			}
			if err := tx.Create(&logEntry).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *inventoryRepository) SetStock(ctx context.Context, id uint, newStock float64, actor, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient entities.Ingredient
		if err := tx.Where("id = ?", id).First(&ingredient).Error; err != nil {
			return err
		}

		oldStock := ingredient.Stock
		if err := tx.Model(&ingredient).Update("stock", newStock).Error; err != nil {
			return err
		}

		logEntry := entities.InventoryLog{
			IngredientID: id,
			ChangeType:   entities.ChangeAdjustment,
			Quantity:     newStock - oldStock,
			OldStock:     oldStock,
			NewStock:     newStock,
			Reason:       reason,
			CreatedBy:    actor,
		}
		return tx.Create(&logEntry).Error
	})
}

func (r *inventoryRepository) AddStock(ctx context.Context, id uint, quantity float64, actor, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient entities.Ingredient
		if err := tx.Where("id = ?", id).First(&ingredient).Error; err != nil {
			return err
		}

		oldStock := ingredient.Stock
		if err := tx.Model(&ingredient).Update("stock", gorm.Expr("stock + ?", quantity)).Error; err != nil {
			return err
		}

		logEntry := entities.InventoryLog{
			IngredientID: id,
			ChangeType:   entities.ChangeInbound,
			Quantity:     quantity,
			OldStock:     oldStock,
			NewStock:     oldStock + quantity,
			Reason:       reason,
			CreatedBy:    actor,
		}
		return tx.Create(&logEntry).Error
	})
}

func (r *inventoryRepository) GetLogs(ctx context.Context, ingredientID uint, page, limit int) ([]*entities.InventoryLog, int64, error) {
	var logs []*entities.InventoryLog
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.InventoryLog{})
	if ingredientID != 0 {
		query = query.Where("ingredient_id = ?", ingredientID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Ingredient").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, count, nil
}
