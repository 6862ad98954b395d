package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// ConfigRepository 站点配置仓储接口
type ConfigRepository interface {
	// Get 按 key 查询，不存在时返回 (nil, nil)
	Get(ctx context.Context, key string) (*model.ConfigRow, error)
	Upsert(ctx context.Context, row *model.ConfigRow) error
}

// ==================== 仓储实现 ====================

type configRepo struct {
	db *gorm.DB
}

// NewConfigRepository 创建配置仓储
func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepo{db: db}
}

func (r *configRepo) Get(ctx context.Context, key string) (*model.ConfigRow, error) {
	var row model.ConfigRow
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *configRepo) Upsert(ctx context.Context, row *model.ConfigRow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(row).Error
}
