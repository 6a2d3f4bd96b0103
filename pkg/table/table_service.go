package table

import (
	"context"
	"errors"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	TableService interface {
		CreateTable(ctx context.Context, req domain.CreateTableRequest) (domain.TableResponse, error)
		DeleteTable(ctx context.Context, id uint) error
		SetStatus(ctx context.Context, id uint, status string) error
		ListTables(ctx context.Context, status, numberSearch string) ([]domain.TableResponse, error)
	}

	tableService struct {
		tableRepository TableRepository
	}
)

func NewTableService(tableRepository TableRepository) TableService {
	return &tableService{
		tableRepository: tableRepository,
	}
}

func toTableResponse(table *entities.Table) domain.TableResponse {
	return domain.TableResponse{
		ID:          table.ID,
		TableNumber: table.TableNumber,
		Capacity:    table.Capacity,
		Status:      table.Status,
	}
}

func (s *tableService) CreateTable(ctx context.Context, req domain.CreateTableRequest) (domain.TableResponse, error) {
	if req.Capacity <= 0 {
		return domain.TableResponse{}, domain.ErrInvalidCapacity
	}

	count, err := s.tableRepository.CountByNumber(ctx, req.TableNumber)
	if err != nil {
		return domain.TableResponse{}, err
	}
	if count > 0 {
		return domain.TableResponse{}, domain.ErrDuplicateTableNumber
	}

	table := &entities.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      entities.TableFree,
	}

	if err := s.tableRepository.CreateTable(ctx, table); err != nil {
		return domain.TableResponse{}, err
	}
	return toTableResponse(table), nil
}

func (s *tableService) DeleteTable(ctx context.Context, id uint) error {
	if _, err := s.tableRepository.GetTableByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTableNotFound
		}
		return err
	}

	active, err := s.tableRepository.CountActiveOrders(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrTableHasActiveOrders
	}

	return s.tableRepository.DeleteTable(ctx, id)
}

func (s *tableService) SetStatus(ctx context.Context, id uint, status string) error {
	tableStatus := entities.TableStatus(status)
	if !tableStatus.Valid() {
		return domain.ErrInvalidTableStatus
	}

	if _, err := s.tableRepository.GetTableByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTableNotFound
		}
		return err
	}

	return s.tableRepository.UpdateStatus(ctx, id, tableStatus)
}

func (s *tableService) ListTables(ctx context.Context, status, numberSearch string) ([]domain.TableResponse, error) {
	var statusFilter entities.TableStatus
	if status != "" && status != "All" {
		statusFilter = entities.TableStatus(status)
		if !statusFilter.Valid() {
			return nil, domain.ErrInvalidTableStatus
		}
	}

	tables, err := s.tableRepository.GetTables(ctx, statusFilter, numberSearch)
	if err != nil {
		return nil, err
	}

	response := make([]domain.TableResponse, 0, len(tables))
	for _, table := range tables {
		response = append(response, toTableResponse(table))
	}
	return response, nil
}
