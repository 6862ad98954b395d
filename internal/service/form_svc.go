package service

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/store"
)

// ==================== 配置 ====================

// FormConfig 表单服务配置
type FormConfig struct {
	// WebhookURL 新提交转发地址（Zalo/Telegram 机器人网关等），为空则不转发
	WebhookURL string
	Timeout    time.Duration
}

// ==================== 服务 ====================

// FormService 公开表单受理：入库 + 可选的 webhook 通知。
// 通知是尽力而为，失败只记日志，不影响受理结果。
type FormService struct {
	config *FormConfig
	store  *store.Store
	client *resty.Client
}

// NewFormService 工厂方法
func NewFormService(cfg *FormConfig, st *store.Store) *FormService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "MCTT-CMS/1.0")

	return &FormService{
		config: cfg,
		store:  st,
		client: client,
	}
}

// Submit 受理一条表单提交，返回带生成 id 的记录
func (s *FormService) Submit(ctx context.Context, sub model.FormSubmission) (model.FormSubmission, error) {
	saved, err := s.store.AddSubmission(ctx, sub)
	if err != nil {
		// 远端写失败时记录已在缓存并标脏，受理仍算成功
		log.Printf("表单提交持久化失败 [%s]，已标脏等待补写: %v", saved.ID, err)
	}

	if s.config.WebhookURL != "" {
		go s.notifyWebhook(saved)
	}
	return saved, nil
}

// notifyWebhook 异步转发新提交
func (s *FormService) notifyWebhook(sub model.FormSubmission) {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post(s.config.WebhookURL)
	if err != nil {
		log.Printf("表单 webhook 转发失败 [%s]: %v", sub.ID, err)
		return
	}
	if resp.IsError() {
		log.Printf("表单 webhook 转发被拒 [%s]: HTTP %d", sub.ID, resp.StatusCode())
	}
}
