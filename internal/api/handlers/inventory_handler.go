package handlers

import (
	"strconv"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/presenters"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/inventory"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		CreateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		AdjustStock(c *fiber.Ctx) error
		Restock(c *fiber.Ctx) error
		GetInventoryLogs(c *fiber.Ctx) error
		SendLowStockAlert(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		userService      user.UserService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, userService user.UserService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		userService:      userService,
		validator:        validator,
	}
}

func (h *inventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.CreateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.inventoryService.CreateIngredient(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *inventoryHandler) DeleteIngredient(c *fiber.Ctx) error {
	ingredientID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}

	if err := h.inventoryService.DeleteIngredient(c.Context(), ingredientID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *inventoryHandler) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := h.inventoryService.ListIngredients(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, ingredients, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *inventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	ingredientID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustStock, err)
	}

	req := new(domain.AdjustStockRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustStock, err)
	}

	actor := h.userService.GetActorName(c.Context(), userID)
	if err := h.inventoryService.AdjustStock(c.Context(), ingredientID, *req, actor); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustStock, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAdjustStock)
}

func (h *inventoryHandler) Restock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	ingredientID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestock, err)
	}

	req := new(domain.RestockRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestock, err)
	}

	actor := h.userService.GetActorName(c.Context(), userID)
	if err := h.inventoryService.Restock(c.Context(), ingredientID, *req, actor); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestock, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRestock)
}

func (h *inventoryHandler) GetInventoryLogs(c *fiber.Ctx) error {
	var ingredientID uint
	if raw := c.Query("ingredient_id", ""); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInventoryLogs, err)
		}
		ingredientID = uint(parsed)
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	logs, count, err := h.inventoryService.ListLogs(c.Context(), ingredientID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInventoryLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetInventoryLogs)
}

func (h *inventoryHandler) SendLowStockAlert(c *fiber.Ctx) error {
	reported, err := h.inventoryService.SendLowStockAlert(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLowStockAlert, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"reported": reported}, fiber.StatusOK, domain.MessageSuccessLowStockAlert)
}
