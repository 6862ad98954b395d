package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	List(ctx context.Context) ([]model.ProductRow, error)
	Upsert(ctx context.Context, row *model.ProductRow) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]model.ProductRow, error) {
	var rows []model.ProductRow
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *productRepo) Upsert(ctx context.Context, row *model.ProductRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(row).Error
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ProductRow{}, "id = ?", id).Error
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.ProductRow{}).Count(&total).Error
	return total, err
}
