package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessCreateDish      = "dish created successfully"
	MessageSuccessUpdateDish      = "dish updated successfully"
	MessageSuccessGetDishes       = "dishes retrieved successfully"
	MessageSuccessGetRecipe       = "recipe retrieved successfully"
	MessageSuccessSetRecipe       = "recipe entry saved successfully"
	MessageSuccessUploadDishImage = "dish image uploaded successfully"

	MessageFailedCreateDish      = "failed to create dish"
	MessageFailedUpdateDish      = "failed to update dish"
	MessageFailedGetDishes       = "failed to retrieve dishes"
	MessageFailedGetRecipe       = "failed to retrieve recipe"
	MessageFailedSetRecipe       = "failed to save recipe entry"
	MessageFailedUploadDishImage = "failed to upload dish image"

	ErrDishNotFound     = errors.New("dish not found")
	ErrDishNotAvailable = errors.New("dish is not available")
	ErrInvalidPrice     = errors.New("price must not be negative")
)

type (
	CreateDishRequest struct {
		Name        string  `json:"name" validate:"required"`
		Price       float64 `json:"price" validate:"min=0"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}

	UpdateDishRequest struct {
		Name        string   `json:"name" validate:"omitempty"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		IsAvailable *bool    `json:"is_available"`
	}

	SetRecipeEntryRequest struct {
		IngredientID uint    `json:"ingredient_id" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	}

	UploadDishImageRequest struct {
		DishID uint                  `json:"dish_id" form:"dish_id" validate:"required"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	DishResponse struct {
		ID          uint    `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		IsAvailable bool    `json:"is_available"`
		ImageURL    string  `json:"image_url,omitempty"`
	}

	RecipeEntryResponse struct {
		IngredientID   uint    `json:"ingredient_id"`
		IngredientName string  `json:"ingredient_name"`
		Unit           string  `json:"unit"`
		Quantity       float64 `json:"quantity"`
	}
)
