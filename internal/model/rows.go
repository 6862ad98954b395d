package model

import (
	"time"

	"gorm.io/datatypes"
)

// 数据库行模型：每张表只存一个 jsonb 载荷，结构校验在同步边界做，
// 数据库只保证表和列存在。

// PostType posts 表的类型判别列
type PostType string

const (
	PostTypeBlog     PostType = "blog"
	PostTypeSupplier PostType = "supplier"
)

// ConfigRow config 表，站点配置单例 key 固定为 "main"
type ConfigRow struct {
	Key   string         `gorm:"primaryKey;size:50"`
	Value datatypes.JSON `gorm:"type:jsonb"`
}

func (ConfigRow) TableName() string { return "config" }

// ConfigKeyMain 站点配置单例的 key
const ConfigKeyMain = "main"

// PageRow pages 表，slug 即主键
type PageRow struct {
	Slug      string         `gorm:"primaryKey;size:100"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (PageRow) TableName() string { return "pages" }

// ProductRow products 表
type ProductRow struct {
	ID        string         `gorm:"primaryKey;size:20"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (ProductRow) TableName() string { return "products" }

// PostRow posts 表，blog 与 supplier 共表，Type 列区分
type PostRow struct {
	ID        string         `gorm:"primaryKey;size:20"`
	Type      PostType       `gorm:"size:20;index;not null"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (PostRow) TableName() string { return "posts" }

// SubmissionRow submissions 表
type SubmissionRow struct {
	ID        string         `gorm:"primaryKey;size:20"`
	Type      SubmissionType `gorm:"size:30;index"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (SubmissionRow) TableName() string { return "submissions" }

// MediaRow media 表
type MediaRow struct {
	ID        string         `gorm:"primaryKey;size:20"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (MediaRow) TableName() string { return "media" }

// SysUser 后台管理员账号，邮箱+密码登录
type SysUser struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:20;default:admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SysUser) TableName() string { return "sys_users" }
