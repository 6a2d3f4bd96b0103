package handlers

import (
	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/internal/api/presenters"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/pkg/table"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TableHandler interface {
		CreateTable(c *fiber.Ctx) error
		DeleteTable(c *fiber.Ctx) error
		UpdateTableStatus(c *fiber.Ctx) error
		GetTables(c *fiber.Ctx) error
	}

	tableHandler struct {
		tableService table.TableService
		validator    *validator.Validate
	}
)

func NewTableHandler(tableService table.TableService, validator *validator.Validate) TableHandler {
	return &tableHandler{
		tableService: tableService,
		validator:    validator,
	}
}

func (h *tableHandler) CreateTable(c *fiber.Ctx) error {
	req := new(domain.CreateTableRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTable, err)
	}

	res, err := h.tableService.CreateTable(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTable, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTable)
}

func (h *tableHandler) DeleteTable(c *fiber.Ctx) error {
	tableID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTable, err)
	}

	if err := h.tableService.DeleteTable(c.Context(), tableID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTable, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTable)
}

func (h *tableHandler) UpdateTableStatus(c *fiber.Ctx) error {
	tableID, err := parseUintParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	req := new(domain.UpdateTableStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	if err := h.tableService.SetStatus(c.Context(), tableID, req.Status); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateTable)
}

func (h *tableHandler) GetTables(c *fiber.Ctx) error {
	status := c.Query("status", "All")
	search := c.Query("search", "")

	tables, err := h.tableService.ListTables(c.Context(), status, search)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTables, err)
	}

	return presenters.SuccessResponse(c, tables, fiber.StatusOK, domain.MessageSuccessGetTables)
}
