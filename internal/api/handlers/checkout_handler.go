package handlers

import (
	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/presenters"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/checkout"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CheckoutHandler interface {
		Checkout(c *fiber.Ctx) error
	}

	checkoutHandler struct {
		checkoutService checkout.CheckoutService
		validator       *validator.Validate
	}
)

func NewCheckoutHandler(checkoutService checkout.CheckoutService, validator *validator.Validate) CheckoutHandler {
	return &checkoutHandler{
		checkoutService: checkoutService,
		validator:       validator,
	}
}

func (h *checkoutHandler) Checkout(c *fiber.Ctx) error {
	req := new(domain.CheckoutRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	settlement, err := h.checkoutService.Checkout(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	return presenters.SuccessResponse(c, settlement, fiber.StatusOK, domain.MessageSuccessCheckout)
}
