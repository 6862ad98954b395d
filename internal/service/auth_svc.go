package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/repository"
	"mctt_cms_v1/internal/store"
)

// AuthService 后台管理员认证：bcrypt 校验 + JWT 签发。
// 同时实现 store.CredentialVerifier，Store.Login 走同一套校验。
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService 工厂方法
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Verify 校验邮箱密码，失败统一返回 ErrInvalidCredentials，不区分账号不存在
func (s *AuthService) Verify(ctx context.Context, email, password string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("查询账号失败: %w", err)
	}
	if user == nil {
		return store.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return store.ErrInvalidCredentials
	}
	return nil
}

// IssueTokens 登录成功后签发 Token 对
func (s *AuthService) IssueTokens(ctx context.Context, email string) (access, refresh string, err error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", store.ErrInvalidCredentials
	}
	return middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
}

// RefreshTokens 用 Refresh Token 换新 Token 对
func (s *AuthService) RefreshTokens(refreshToken string) (access, refresh string, err error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("refresh token 无效: %w", err)
	}
	if claims.Subject != "refresh" {
		return "", "", fmt.Errorf("token 类型错误")
	}
	return middleware.GenerateTokenPair(claims.UserID, claims.Email, claims.Role)
}

// EnsureAdmin 启动引导：账号表为空时创建默认管理员。
// 默认凭证仅用于首次部署，上线后必须改密。
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	total, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("检查账号表失败: %w", err)
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &model.SysUser{Email: email, PasswordHash: string(hash), Role: "admin"}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("创建默认管理员失败: %w", err)
	}
	log.Printf("已创建默认管理员账号 [%s]，请尽快修改密码", email)
	return nil
}

// ChangePassword 修改当前管理员密码，需先校验旧密码
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if err := s.Verify(ctx, email, oldPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, email, string(hash))
}
