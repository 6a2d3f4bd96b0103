package handlers

import (
	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/presenters"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/catalog"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		CreateDish(c *fiber.Ctx) error
		UpdateDish(c *fiber.Ctx) error
		GetDish(c *fiber.Ctx) error
		GetDishes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		SetRecipeEntry(c *fiber.Ctx) error
		UploadDishImage(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) CreateDish(c *fiber.Ctx) error {
	req := new(domain.CreateDishRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDish, err)
	}

	res, err := h.catalogService.CreateDish(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDish)
}

func (h *catalogHandler) UpdateDish(c *fiber.Ctx) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDish, err)
	}

	req := new(domain.UpdateDishRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDish, err)
	}

	if err := h.catalogService.UpdateDish(c.Context(), dishID, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDish, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateDish)
}

func (h *catalogHandler) GetDish(c *fiber.Ctx) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	dish, err := h.catalogService.GetDish(c.Context(), dishID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, dish, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *catalogHandler) GetDishes(c *fiber.Ctx) error {
	category := c.Query("category", "")

	dishes, err := h.catalogService.ListAvailableDishes(c.Context(), category)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, dishes, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *catalogHandler) GetRecipe(c *fiber.Ctx) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipe, err)
	}

	recipe, err := h.catalogService.GetRecipe(c.Context(), dishID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipe, err)
	}

	return presenters.SuccessResponse(c, recipe, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

func (h *catalogHandler) SetRecipeEntry(c *fiber.Ctx) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetRecipe, err)
	}

	req := new(domain.SetRecipeEntryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetRecipe, err)
	}

	if err := h.catalogService.SetRecipeEntry(c.Context(), dishID, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetRecipe)
}

func (h *catalogHandler) UploadDishImage(c *fiber.Ctx) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDishImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadDishImageRequest{
		DishID: dishID,
		Image:  file,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDishImage, err)
	}

	url, err := h.catalogService.UploadDishImage(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDishImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadDishImage)
}
