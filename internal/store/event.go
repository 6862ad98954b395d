package store

import (
	"encoding/json"
	"fmt"

	"mctt_cms_v1/internal/model"
)

// ==================== 变更事件 ====================

// EventKind 事件实体类型，与六张逻辑表一一对应
type EventKind string

const (
	KindConfig     EventKind = "config"
	KindPage       EventKind = "page"
	KindProduct    EventKind = "product"
	KindPost       EventKind = "post"
	KindSubmission EventKind = "submission"
	KindMedia      EventKind = "media"
)

// EventAction 事件动作
type EventAction string

const (
	ActionUpsert EventAction = "upsert"
	ActionDelete EventAction = "delete"
)

// Event 后端写入成功后广播的变更事件。
// Key 为主键：config 是固定 key，page 是 slug，其余为 id。
// Payload 仅 upsert 事件携带，为实体的完整 JSON。
type Event struct {
	Kind     EventKind       `json:"kind"`
	Action   EventAction     `json:"action"`
	Key      string          `json:"key"`
	PostType model.PostType  `json:"postType,omitempty"` // 仅 Kind == post
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// ==================== 错误定义 ====================

// SchemaError 同步边界的结构校验失败：载荷无法解析或不满足实体约束
type SchemaError struct {
	Kind EventKind
	Key  string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("载荷校验失败 [%s/%s]: %v", e.Kind, e.Key, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ErrInvalidCredentials 登录凭证错误，可安全重试
var ErrInvalidCredentials = fmt.Errorf("邮箱或密码错误")
