package handlers

import (
	"errors"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/presenters"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/order"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		CreateOrder(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		RemoveItem(c *fiber.Ctx) error
		SubmitOrder(c *fiber.Ctx) error
		StartPreparation(c *fiber.Ctx) error
		CompleteItem(c *fiber.Ctx) error
		GetOrdersForTable(c *fiber.Ctx) error
		GetKitchenQueue(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		userService  user.UserService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, userService user.UserService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		userService:  userService,
		validator:    validator,
	}
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	actor := h.userService.GetActorName(c.Context(), userID)
	res, err := h.orderService.CreateOrder(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) AddItem(c *fiber.Ctx) error {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	req := new(domain.AddOrderItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	res, err := h.orderService.AddItem(c.Context(), orderID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddItem)
}

func (h *orderHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveItem, err)
	}

	res, err := h.orderService.RemoveItem(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveItem, err)
	}

	message := domain.MessageSuccessRemoveItem
	if res.OrderDeleted {
		message = domain.MessageOrderCollapsed
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, message)
}

func (h *orderHandler) SubmitOrder(c *fiber.Ctx) error {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitOrder, err)
	}

	if err := h.orderService.SubmitOrder(c.Context(), orderID); err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(presenters.Response{
				Success: false,
				Message: domain.MessageFailedSubmitOrder,
				Error:   stockErr.Error(),
				Data:    fiber.Map{"shortfalls": stockErr.Shortfalls},
			})
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitOrder, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSubmitOrder)
}

func (h *orderHandler) StartPreparation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStartPreparation, err)
	}

	actor := h.userService.GetActorName(c.Context(), userID)
	if err := h.orderService.StartPreparation(c.Context(), itemID, actor); err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(presenters.Response{
				Success: false,
				Message: domain.MessageFailedStartPreparation,
				Error:   stockErr.Error(),
				Data:    fiber.Map{"shortfalls": stockErr.Shortfalls},
			})
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStartPreparation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessStartPreparation)
}

func (h *orderHandler) CompleteItem(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteItem, err)
	}

	if err := h.orderService.CompleteItem(c.Context(), itemID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteItem)
}

func (h *orderHandler) GetOrdersForTable(c *fiber.Ctx) error {
	tableID, err := parseUintParam(c, "tableId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	status := c.Query("status", "")
	orders, err := h.orderService.ListOrdersForTable(c.Context(), tableID, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetKitchenQueue(c *fiber.Ctx) error {
	status := c.Query("status", "")

	entries, err := h.orderService.KitchenQueue(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetKitchenQueue, err)
	}

	return presenters.SuccessResponse(c, entries, fiber.StatusOK, domain.MessageSuccessGetKitchenQueue)
}
