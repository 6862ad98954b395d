package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mctt_cms_v1/internal/model"
)

// ==================== 接口定义 ====================

// UserRepository 管理员账号仓储接口
type UserRepository interface {
	// GetByEmail 不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*model.SysUser, error)
	Create(ctx context.Context, user *model.SysUser) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建账号仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.SysUser, error) {
	var user model.SysUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&model.SysUser{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.SysUser{}).Count(&total).Error
	return total, err
}
