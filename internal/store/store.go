package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"mctt_cms_v1/internal/model"
)

// SyncState 记录与后端的同步状态
type SyncState string

const (
	// SyncPending 本地已变更，远端写入进行中
	SyncPending SyncState = "pending"
	// SyncDirty 远端写入失败，本地与后端不一致，等待重试
	SyncDirty SyncState = "dirty"
)

// recordRef 脏记录索引：实体类型 + 主键
type recordRef struct {
	Kind EventKind
	Key  string
}

// DirtyRecord 对外暴露的失同步记录
type DirtyRecord struct {
	Kind  EventKind `json:"kind"`
	Key   string    `json:"key"`
	State SyncState `json:"state"`
}

type listener struct {
	id int
	fn func()
}

// Store 内容存储：全部集合的内存快照 + 订阅通知 + 乐观写入。
// 通过 New 构造并显式注入，不做包级单例。
type Store struct {
	mu      sync.Mutex
	backend Backend

	initialized bool
	validate    *validator.Validate

	config        *model.SiteConfig
	pages         []model.PageData
	products      []model.Product
	blogPosts     []model.BlogPost
	supplierPosts []model.SupplierPost
	submissions   []model.FormSubmission
	media         []model.MediaItem

	authenticated bool
	sessionEmail  string

	listeners  []listener
	nextListen int

	sync map[recordRef]SyncState

	cancelRealtime func()
}

// New 创建 Store，尚未加载数据，需调用 Init
func New(backend Backend) *Store {
	return &Store{
		backend:  backend,
		validate: validator.New(),
		sync:     make(map[recordRef]SyncState),
	}
}

// ==================== 订阅通知 ====================

// Subscribe 注册监听器，返回解除函数。
// 任何变更（本地或远端）都会按注册顺序同步回调，无参数，
// 监听器自行重读所需集合，因此必须轻量且幂等。
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListen
	s.nextListen++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify 回调所有监听器。在锁外执行：监听器会反过来读 Store。
func (s *Store) notify() {
	s.mu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// ==================== 初始化 ====================

// Init 启动加载，幂等：重复调用为空操作。
// 后端不可达时回退到内存种子数据（标记为脏，等待重试），初始化仍然完成。
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		log.Printf("store 初始化失败，回退到内存种子数据: %v", err)
		s.seedOffline()
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	s.startRealtime()
	s.notify()
	return nil
}

// load 按序拉取全部集合，空表写入种子，home 页跑迁移
func (s *Store) load(ctx context.Context) error {
	sess, err := s.backend.Session(ctx)
	if err != nil {
		return err
	}

	// 配置单例，缺失则写入默认值
	cfg, err := s.backend.FetchConfig(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = model.DefaultConfig()
		if err := s.backend.SaveConfig(ctx, cfg); err != nil {
			return err
		}
	}
	if cfg.AIKeys == nil {
		cfg.AIKeys = &model.AIKeys{}
	}

	// 页面，空则批量写入种子集
	pages, err := s.backend.FetchPages(ctx)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		pages = model.InitialPages()
		for _, page := range pages {
			if err := s.backend.UpsertPage(ctx, page); err != nil {
				return err
			}
		}
	}
	pages, err = s.runMigrations(ctx, pages)
	if err != nil {
		return err
	}

	// 商品，空则写入示例
	products, err := s.backend.FetchProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		products = model.InitialProducts()
		for _, p := range products {
			if err := s.backend.UpsertProduct(ctx, p); err != nil {
				return err
			}
		}
	}

	// 文章，blog 为空则写入示例，supplier 不做种子
	blog, supplier, err := s.backend.FetchPosts(ctx)
	if err != nil {
		return err
	}
	if len(blog) == 0 {
		blog = model.InitialBlogPosts()
		for _, p := range blog {
			if err := s.backend.UpsertBlogPost(ctx, p); err != nil {
				return err
			}
		}
	}

	// 表单与媒体无种子
	subs, err := s.backend.FetchSubmissions(ctx)
	if err != nil {
		return err
	}
	sortSubmissions(subs)

	media, err := s.backend.FetchMedia(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.authenticated = sess.Authenticated
	s.sessionEmail = sess.Email
	s.config = cfg
	s.pages = pages
	s.products = products
	s.blogPosts = blog
	s.supplierPosts = supplier
	s.submissions = subs
	s.media = media
	s.mu.Unlock()
	return nil
}

// seedOffline 离线兜底：全部种子进内存并标脏，后续由重试任务补写
func (s *Store) seedOffline() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = model.DefaultConfig()
	s.pages = model.InitialPages()
	s.products = model.InitialProducts()
	s.blogPosts = model.InitialBlogPosts()
	s.supplierPosts = nil
	s.submissions = nil
	s.media = nil

	s.sync[recordRef{KindConfig, model.ConfigKeyMain}] = SyncDirty
	for _, page := range s.pages {
		s.sync[recordRef{KindPage, page.Slug}] = SyncDirty
	}
	for _, p := range s.products {
		s.sync[recordRef{KindProduct, p.ID}] = SyncDirty
	}
	for _, p := range s.blogPosts {
		s.sync[recordRef{KindPost, p.ID}] = SyncDirty
	}
}

// ==================== 实时同步 ====================

// startRealtime 挂接后端事件总线，远端变更持续落到快照
func (s *Store) startRealtime() {
	ch, cancel := s.backend.Events().Attach()
	s.mu.Lock()
	s.cancelRealtime = cancel
	s.mu.Unlock()

	go func() {
		for ev := range ch {
			if err := s.ApplyEvent(ev); err != nil {
				log.Printf("应用变更事件失败: %v", err)
			}
		}
	}()
}

// Close 解除实时订阅
func (s *Store) Close() {
	s.mu.Lock()
	cancel := s.cancelRealtime
	s.cancelRealtime = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// ApplyEvent 把一条变更事件落到快照：按实体类型穷举分发，
// upsert 载荷先解析校验（SchemaError），未知类型报错而非静默忽略。
// 幂等：同一事件应用两次结果不变。结束后通知订阅者。
func (s *Store) ApplyEvent(ev Event) error {
	switch ev.Kind {
	case KindConfig:
		if ev.Key != model.ConfigKeyMain {
			return nil
		}
		var cfg model.SiteConfig
		if err := s.decode(ev, &cfg); err != nil {
			return err
		}
		s.mu.Lock()
		s.config = &cfg
		s.mu.Unlock()

	case KindPage:
		if ev.Action == ActionDelete {
			s.mu.Lock()
			s.pages = removePage(s.pages, ev.Key)
			s.mu.Unlock()
			break
		}
		var page model.PageData
		if err := s.decode(ev, &page); err != nil {
			return err
		}
		s.mu.Lock()
		s.pages = upsertPage(s.pages, page)
		s.mu.Unlock()

	case KindProduct:
		if ev.Action == ActionDelete {
			s.mu.Lock()
			s.products = removeProduct(s.products, ev.Key)
			s.mu.Unlock()
			break
		}
		var p model.Product
		if err := s.decode(ev, &p); err != nil {
			return err
		}
		s.mu.Lock()
		s.products = upsertProduct(s.products, p)
		s.mu.Unlock()

	case KindPost:
		if err := s.applyPostEvent(ev); err != nil {
			return err
		}

	case KindSubmission:
		var sub model.FormSubmission
		if err := s.decode(ev, &sub); err != nil {
			return err
		}
		s.mu.Lock()
		s.submissions = upsertSubmission(s.submissions, sub)
		s.mu.Unlock()

	case KindMedia:
		if ev.Action == ActionDelete {
			s.mu.Lock()
			s.media = removeMedia(s.media, ev.Key)
			s.mu.Unlock()
			break
		}
		var item model.MediaItem
		if err := s.decode(ev, &item); err != nil {
			return err
		}
		s.mu.Lock()
		s.media = upsertMedia(s.media, item)
		s.mu.Unlock()

	default:
		return fmt.Errorf("未知事件类型: %q", ev.Kind)
	}

	s.notify()
	return nil
}

func (s *Store) applyPostEvent(ev Event) error {
	if ev.Action == ActionDelete {
		s.mu.Lock()
		switch ev.PostType {
		case model.PostTypeSupplier:
			s.supplierPosts = removeSupplierPost(s.supplierPosts, ev.Key)
		default:
			s.blogPosts = removeBlogPost(s.blogPosts, ev.Key)
		}
		s.mu.Unlock()
		return nil
	}

	switch ev.PostType {
	case model.PostTypeSupplier:
		var p model.SupplierPost
		if err := s.decode(ev, &p); err != nil {
			return err
		}
		s.mu.Lock()
		s.supplierPosts = upsertSupplierPost(s.supplierPosts, p)
		s.mu.Unlock()
	default:
		var p model.BlogPost
		if err := s.decode(ev, &p); err != nil {
			return err
		}
		s.mu.Lock()
		s.blogPosts = upsertBlogPost(s.blogPosts, p)
		s.mu.Unlock()
	}
	return nil
}

// decode 同步边界的解析 + 结构校验
func (s *Store) decode(ev Event, dst interface{}) error {
	if err := json.Unmarshal(ev.Payload, dst); err != nil {
		return &SchemaError{Kind: ev.Kind, Key: ev.Key, Err: err}
	}
	if err := s.validate.Struct(dst); err != nil {
		return &SchemaError{Kind: ev.Kind, Key: ev.Key, Err: err}
	}
	return nil
}

// ==================== 认证 ====================

// Login 委托后端校验凭证，成功后置位缓存标志并通知；失败不改状态
func (s *Store) Login(ctx context.Context, email, password string) error {
	sess, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w", ErrInvalidCredentials)
	}
	s.mu.Lock()
	s.authenticated = sess.Authenticated
	s.sessionEmail = sess.Email
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout 远端登出并清空标志
func (s *Store) Logout(ctx context.Context) error {
	err := s.backend.SignOut(ctx)
	s.mu.Lock()
	s.authenticated = false
	s.sessionEmail = ""
	s.mu.Unlock()
	s.notify()
	return err
}

// CheckAuth 同步读取缓存的认证标志
func (s *Store) CheckAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// ==================== 同步状态 ====================

func (s *Store) setSync(ref recordRef, state SyncState) {
	s.mu.Lock()
	s.sync[ref] = state
	s.mu.Unlock()
}

func (s *Store) clearSync(ref recordRef) {
	s.mu.Lock()
	delete(s.sync, ref)
	s.mu.Unlock()
}

// persist 先落缓存后持久化的统一收口：
// 远端失败不回滚缓存，只标脏，由 RetryDirty 补写。
func (s *Store) persist(ref recordRef, write func() error) error {
	s.setSync(ref, SyncPending)
	if err := write(); err != nil {
		s.setSync(ref, SyncDirty)
		return err
	}
	s.clearSync(ref)
	return nil
}

// Dirty 当前所有失同步记录
func (s *Store) Dirty() []DirtyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DirtyRecord, 0, len(s.sync))
	for ref, state := range s.sync {
		out = append(out, DirtyRecord{Kind: ref.Kind, Key: ref.Key, State: state})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RetryDirty 按当前快照补写所有脏记录，由后台任务周期调用
func (s *Store) RetryDirty(ctx context.Context) error {
	var firstErr error
	for _, rec := range s.Dirty() {
		if rec.State != SyncDirty {
			continue
		}
		if err := s.retryOne(ctx, rec); err != nil {
			log.Printf("补写失败 [%s/%s]: %v", rec.Kind, rec.Key, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Store) retryOne(ctx context.Context, rec DirtyRecord) error {
	ref := recordRef{rec.Kind, rec.Key}
	switch rec.Kind {
	case KindConfig:
		cfg := s.Config()
		return s.persist(ref, func() error { return s.backend.SaveConfig(ctx, &cfg) })
	case KindPage:
		page, ok := s.Page(rec.Key)
		if !ok {
			s.clearSync(ref)
			return nil
		}
		return s.persist(ref, func() error { return s.backend.UpsertPage(ctx, page) })
	case KindProduct:
		p, ok := s.Product(rec.Key)
		if !ok {
			return s.persist(ref, func() error { return s.backend.DeleteProduct(ctx, rec.Key) })
		}
		return s.persist(ref, func() error { return s.backend.UpsertProduct(ctx, p) })
	case KindPost:
		if p, ok := s.findBlogPost(rec.Key); ok {
			return s.persist(ref, func() error { return s.backend.UpsertBlogPost(ctx, p) })
		}
		if p, ok := s.findSupplierPost(rec.Key); ok {
			return s.persist(ref, func() error { return s.backend.UpsertSupplierPost(ctx, p) })
		}
		return s.persist(ref, func() error { return s.backend.DeletePost(ctx, model.PostTypeBlog, rec.Key) })
	case KindSubmission:
		if sub, ok := s.findSubmission(rec.Key); ok {
			return s.persist(ref, func() error { return s.backend.UpsertSubmission(ctx, sub) })
		}
		s.clearSync(ref)
		return nil
	case KindMedia:
		if item, ok := s.findMedia(rec.Key); ok {
			return s.persist(ref, func() error { return s.backend.UpsertMedia(ctx, item) })
		}
		return s.persist(ref, func() error { return s.backend.DeleteMedia(ctx, rec.Key) })
	}
	return nil
}
