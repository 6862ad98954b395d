package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// PostRepository 文章仓储接口，blog 与 supplier 共表
type PostRepository interface {
	List(ctx context.Context) ([]model.PostRow, error)
	ListByType(ctx context.Context, postType model.PostType) ([]model.PostRow, error)
	Upsert(ctx context.Context, row *model.PostRow) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓储
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) List(ctx context.Context) ([]model.PostRow, error) {
	var rows []model.PostRow
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *postRepo) ListByType(ctx context.Context, postType model.PostType) ([]model.PostRow, error) {
	var rows []model.PostRow
	err := r.db.WithContext(ctx).
		Where("type = ?", postType).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *postRepo) Upsert(ctx context.Context, row *model.PostRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "data", "updated_at"}),
	}).Create(row).Error
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.PostRow{}, "id = ?", id).Error
}

func (r *postRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.PostRow{}).Count(&total).Error
	return total, err
}
