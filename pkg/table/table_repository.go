package table

import (
	"context"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/entities"
	"gorm.io/gorm"
)

type (
	TableRepository interface {
		CreateTable(ctx context.Context, table *entities.Table) error
		DeleteTable(ctx context.Context, id uint) error
		GetTableByID(ctx context.Context, id uint) (*entities.Table, error)
		GetTables(ctx context.Context, status entities.TableStatus, numberSearch string) ([]*entities.Table, error)
		UpdateStatus(ctx context.Context, id uint, status entities.TableStatus) error
		CountByNumber(ctx context.Context, number string) (int64, error)
		CountActiveOrders(ctx context.Context, tableID uint) (int64, error)
	}

	tableRepository struct {
		db *gorm.DB
	}
)

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) CreateTable(ctx context.Context, table *entities.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) DeleteTable(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Table{}, "id = ?", id).Error
}

func (r *tableRepository) GetTableByID(ctx context.Context, id uint) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetTables(ctx context.Context, status entities.TableStatus, numberSearch string) ([]*entities.Table, error) {
	var tables []*entities.Table

	query := r.db.WithContext(ctx).Model(&entities.Table{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if numberSearch != "" {
		query = query.Where("table_number LIKE ?", "%"+numberSearch+"%")
	}

	if err := query.Order("id ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uint, status entities.TableStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Table{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *tableRepository) CountByNumber(ctx context.Context, number string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Table{}).
		Where("table_number = ?", number).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tableRepository) CountActiveOrders(ctx context.Context, tableID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("table_id = ? AND status IN ?", tableID, entities.ActiveOrderStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
