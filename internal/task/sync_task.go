package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"mctt_cms_v1/internal/store"
)

// ==================== SyncRetryTask 脏记录补写任务 ====================

// SyncRetryTask 定时扫描 Store 中标脏的记录并补写后端。
// 本地写成功远端写失败的记录靠它最终收敛。
type SyncRetryTask struct {
	store *store.Store
	cron  *cron.Cron
	spec  string
}

// NewSyncRetryTask 创建补写任务
func NewSyncRetryTask(st *store.Store) *SyncRetryTask {
	return &SyncRetryTask{
		store: st,
		cron:  cron.New(cron.WithSeconds()),
		spec:  "0 * * * * *", // 每分钟
	}
}

// SetSchedule 覆盖默认调度表达式（含秒位）
func (t *SyncRetryTask) SetSchedule(spec string) {
	t.spec = spec
}

// Start 启动定时任务
func (t *SyncRetryTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t.execute(ctx)
	})

	if err != nil {
		log.Fatalf("[SyncRetryTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[SyncRetryTask] 脏记录补写任务已启动 (每分钟检查)")
}

// Stop 停止任务
func (t *SyncRetryTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[SyncRetryTask] 已停止")
}

// execute 执行一次补写
func (t *SyncRetryTask) execute(ctx context.Context) {
	dirty := t.store.Dirty()
	if len(dirty) == 0 {
		return
	}

	log.Printf("[SyncRetryTask] 发现 %d 条失同步记录，开始补写", len(dirty))
	if err := t.store.RetryDirty(ctx); err != nil {
		log.Printf("[SyncRetryTask] 本轮补写未完全成功: %v", err)
		return
	}
	log.Printf("[SyncRetryTask] 补写完成")
}

// RunNow 手动触发一次补写
func (t *SyncRetryTask) RunNow(ctx context.Context) error {
	return t.store.RetryDirty(ctx)
}
