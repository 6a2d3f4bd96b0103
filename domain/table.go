package domain

import (
	"errors"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
)

var (
	MessageSuccessCreateTable = "table created successfully"
	MessageSuccessDeleteTable = "table deleted successfully"
	MessageSuccessUpdateTable = "table status updated successfully"
	MessageSuccessGetTables   = "tables retrieved successfully"

	MessageFailedCreateTable = "failed to create table"
	MessageFailedDeleteTable = "failed to delete table"
	MessageFailedUpdateTable = "failed to update table status"
	MessageFailedGetTables   = "failed to retrieve tables"

	ErrTableNotFound        = errors.New("table not found")
	ErrDuplicateTableNumber = errors.New("table number already exists")
	ErrTableHasActiveOrders = errors.New("table has unfinished orders and cannot be deleted")
	ErrInvalidTableStatus   = errors.New("invalid table status")
	ErrInvalidCapacity      = errors.New("capacity must be a positive integer")
)

type (
	CreateTableRequest struct {
		TableNumber string `json:"table_number" validate:"required"`
		Capacity    int    `json:"capacity" validate:"required,min=1"`
	}

	UpdateTableStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	TableResponse struct {
		ID          uint                 `json:"id"`
		TableNumber string               `json:"table_number"`
		Capacity    int                  `json:"capacity"`
		Status      entities.TableStatus `json:"status"`
	}
)
