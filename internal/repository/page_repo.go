package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// PageRepository 页面仓储接口，slug 即主键
type PageRepository interface {
	List(ctx context.Context) ([]model.PageRow, error)
	Upsert(ctx context.Context, row *model.PageRow) error
	Delete(ctx context.Context, slug string) error
	Count(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type pageRepo struct {
	db *gorm.DB
}

// NewPageRepository 创建页面仓储
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepo{db: db}
}

func (r *pageRepo) List(ctx context.Context) ([]model.PageRow, error) {
	var rows []model.PageRow
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&rows).Error
	return rows, err
}

func (r *pageRepo) Upsert(ctx context.Context, row *model.PageRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(row).Error
}

func (r *pageRepo) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.PageRow{}).Error
}

func (r *pageRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.PageRow{}).Count(&total).Error
	return total, err
}
