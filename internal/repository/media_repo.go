package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// MediaRepository 媒体库仓储接口
type MediaRepository interface {
	List(ctx context.Context) ([]model.MediaRow, error)
	Upsert(ctx context.Context, row *model.MediaRow) error
	Delete(ctx context.Context, id string) error
}

// ==================== 仓储实现 ====================

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepository 创建媒体仓储
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) List(ctx context.Context) ([]model.MediaRow, error) {
	var rows []model.MediaRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *mediaRepo) Upsert(ctx context.Context, row *model.MediaRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(row).Error
}

func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.MediaRow{}, "id = ?", id).Error
}
