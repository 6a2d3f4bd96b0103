package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/utils/storage"
	"gorm.io/gorm"
)

type (
	CatalogService interface {
		CreateDish(ctx context.Context, req domain.CreateDishRequest) (domain.DishResponse, error)
		UpdateDish(ctx context.Context, id uint, req domain.UpdateDishRequest) error
		GetDish(ctx context.Context, id uint) (domain.DishResponse, error)
		ListAvailableDishes(ctx context.Context, category string) ([]domain.DishResponse, error)
		GetRecipe(ctx context.Context, dishID uint) ([]domain.RecipeEntryResponse, error)
		SetRecipeEntry(ctx context.Context, dishID uint, req domain.SetRecipeEntryRequest) error
		UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest) (string, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		s3                storage.AwsS3
	}
)

func NewCatalogService(catalogRepository CatalogRepository, s3 storage.AwsS3) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

func toDishResponse(dish *entities.Dish) domain.DishResponse {
	return domain.DishResponse{
		ID:          dish.ID,
		Name:        dish.Name,
		Price:       dish.Price,
		Category:    dish.Category,
		Description: dish.Description,
		IsAvailable: dish.IsAvailable,
		ImageURL:    dish.ImageURL,
	}
}

func (s *catalogService) CreateDish(ctx context.Context, req domain.CreateDishRequest) (domain.DishResponse, error) {
	if req.Price < 0 {
		return domain.DishResponse{}, domain.ErrInvalidPrice
	}

	dish := &entities.Dish{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		IsAvailable: true,
	}

	if err := s.catalogRepository.CreateDish(ctx, dish); err != nil {
		return domain.DishResponse{}, err
	}

	return toDishResponse(dish), nil
}

func (s *catalogService) UpdateDish(ctx context.Context, id uint, req domain.UpdateDishRequest) error {
	dish, err := s.catalogRepository.GetDishByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDishNotFound
		}
		return err
	}

	if req.Name != "" {
		dish.Name = req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.ErrInvalidPrice
		}
		dish.Price = *req.Price
	}
	if req.Category != "" {
		dish.Category = req.Category
	}
	if req.Description != "" {
		dish.Description = req.Description
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}

	return s.catalogRepository.UpdateDish(ctx, dish)
}

func (s *catalogService) GetDish(ctx context.Context, id uint) (domain.DishResponse, error) {
	dish, err := s.catalogRepository.GetDishByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DishResponse{}, domain.ErrDishNotFound
		}
		return domain.DishResponse{}, err
	}
	return toDishResponse(dish), nil
}

func (s *catalogService) ListAvailableDishes(ctx context.Context, category string) ([]domain.DishResponse, error) {
	dishes, err := s.catalogRepository.GetAvailableDishes(ctx, category)
	if err != nil {
		return nil, err
	}

	response := make([]domain.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		response = append(response, toDishResponse(dish))
	}
	return response, nil
}

func (s *catalogService) GetRecipe(ctx context.Context, dishID uint) ([]domain.RecipeEntryResponse, error) {
	if _, err := s.catalogRepository.GetDishByID(ctx, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDishNotFound
		}
		return nil, err
	}

	entries, err := s.catalogRepository.GetRecipe(ctx, dishID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RecipeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		item := domain.RecipeEntryResponse{
			IngredientID: entry.IngredientID,
			Quantity:     entry.Quantity,
		}
		if entry.Ingredient != nil {
			item.IngredientName = entry.Ingredient.Name
			item.Unit = entry.Ingredient.Unit
		}
		response = append(response, item)
	}
	return response, nil
}

func (s *catalogService) SetRecipeEntry(ctx context.Context, dishID uint, req domain.SetRecipeEntryRequest) error {
	if _, err := s.catalogRepository.GetDishByID(ctx, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDishNotFound
		}
		return err
	}

	return s.catalogRepository.UpsertRecipeEntry(ctx, &entities.DishIngredient{
		DishID:       dishID,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
	})
}

func (s *catalogService) UploadDishImage(ctx context.Context, req domain.UploadDishImageRequest) (string, error) {
	dish, err := s.catalogRepository.GetDishByID(ctx, req.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrDishNotFound
		}
		return "", err
	}

	if dish.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(dish.ImageURL); key != "" {
			_ = s.s3.DeleteFile(key)
		}
	}

	objectKey := fmt.Sprintf("dishes/%d_%d%s", dish.ID, time.Now().Unix(), filepath.Ext(req.Image.Filename))
	url, err := s.s3.UploadFile(objectKey, req.Image)
	if err != nil {
		return "", err
	}

	dish.ImageURL = url
	if err := s.catalogRepository.UpdateDish(ctx, dish); err != nil {
		return "", err
	}
	return url, nil
}
