package catalog

import (
	"context"
	"errors"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		CreateDish(ctx context.Context, dish *entities.Dish) error
		UpdateDish(ctx context.Context, dish *entities.Dish) error
		GetDishByID(ctx context.Context, id uint) (*entities.Dish, error)
		GetAvailableDishes(ctx context.Context, category string) ([]*entities.Dish, error)
		GetRecipe(ctx context.Context, dishID uint) ([]*entities.DishIngredient, error)
		UpsertRecipeEntry(ctx context.Context, entry *entities.DishIngredient) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateDish(ctx context.Context, dish *entities.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *catalogRepository) UpdateDish(ctx context.Context, dish *entities.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

func (r *catalogRepository) GetDishByID(ctx context.Context, id uint) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *catalogRepository) GetAvailableDishes(ctx context.Context, category string) ([]*entities.Dish, error) {
	var dishes []*entities.Dish

	query := r.db.WithContext(ctx).Where("is_available = ?", true)
	if category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("id ASC").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *catalogRepository) GetRecipe(ctx context.Context, dishID uint) ([]*entities.DishIngredient, error) {
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

func (r *catalogRepository) UpsertRecipeEntry(ctx context.Context, entry *entities.DishIngredient) error {
	var existing entities.DishIngredient
	err := r.db.WithContext(ctx).
		Where("dish_id = ? AND ingredient_id = ?", entry.DishID, entry.IngredientID).
		First(&existing).Error
	if err == nil {
		existing.Quantity = entry.Quantity
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
