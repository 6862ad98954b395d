package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// SubmissionRepository 表单提交仓储接口，只增改不删
type SubmissionRepository interface {
	List(ctx context.Context) ([]model.SubmissionRow, error)
	Upsert(ctx context.Context, row *model.SubmissionRow) error
}

// ==================== 仓储实现 ====================

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建表单仓储
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) List(ctx context.Context) ([]model.SubmissionRow, error) {
	var rows []model.SubmissionRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *submissionRepo) Upsert(ctx context.Context, row *model.SubmissionRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "data"}),
	}).Create(row).Error
}
