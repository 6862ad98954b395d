package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"mctt_cms_v1/internal/model"
)

// ==================== 测试后端 ====================

var errBackendDown = errors.New("后端不可用")

// fakeBackend 内存后端，支持注入写失败和调用计数。
// publish 打开后与 GormBackend 一样在写入成功后广播事件。
type fakeBackend struct {
	mu         sync.Mutex
	failWrites bool
	publish    bool

	sessionCalls int
	saveCalls    int

	config   *model.SiteConfig
	pages    map[string]model.PageData
	products map[string]model.Product
	blog     map[string]model.BlogPost
	supplier map[string]model.SupplierPost
	subs     map[string]model.FormSubmission
	media    map[string]model.MediaItem

	bus *Bus
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		pages:    make(map[string]model.PageData),
		products: make(map[string]model.Product),
		blog:     make(map[string]model.BlogPost),
		supplier: make(map[string]model.SupplierPost),
		subs:     make(map[string]model.FormSubmission),
		media:    make(map[string]model.MediaItem),
		bus:      NewBus(),
	}
}

func (b *fakeBackend) setFail(fail bool) {
	b.mu.Lock()
	b.failWrites = fail
	b.mu.Unlock()
}

func (b *fakeBackend) write(fn func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveCalls++
	if b.failWrites {
		return errBackendDown
	}
	fn()
	return nil
}

func (b *fakeBackend) emit(ev Event) {
	if b.publish {
		b.bus.Publish(ev)
	}
}

func (b *fakeBackend) Events() *Bus { return b.bus }

func (b *fakeBackend) Session(ctx context.Context) (Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessionCalls++
	return Session{}, nil
}

func (b *fakeBackend) SignIn(ctx context.Context, email, password string) (Session, error) {
	if password != "admin123" {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Authenticated: true, Email: email}, nil
}

func (b *fakeBackend) SignOut(ctx context.Context) error { return nil }

func (b *fakeBackend) FetchConfig(ctx context.Context) (*model.SiteConfig, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.config == nil {
		return nil, nil
	}
	cfg := *b.config
	return &cfg, nil
}

func (b *fakeBackend) SaveConfig(ctx context.Context, cfg *model.SiteConfig) error {
	c := *cfg
	if err := b.write(func() { b.config = &c }); err != nil {
		return err
	}
	payload, _ := json.Marshal(cfg)
	b.emit(Event{Kind: KindConfig, Action: ActionUpsert, Key: model.ConfigKeyMain, Payload: payload})
	return nil
}

func (b *fakeBackend) FetchPages(ctx context.Context) ([]model.PageData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.PageData, 0, len(b.pages))
	for _, p := range b.pages {
		out = append(out, p)
	}
	return out, nil
}

func (b *fakeBackend) UpsertPage(ctx context.Context, page model.PageData) error {
	if err := b.write(func() { b.pages[page.Slug] = page }); err != nil {
		return err
	}
	payload, _ := json.Marshal(page)
	b.emit(Event{Kind: KindPage, Action: ActionUpsert, Key: page.Slug, Payload: payload})
	return nil
}

func (b *fakeBackend) FetchProducts(ctx context.Context) ([]model.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	return out, nil
}

func (b *fakeBackend) UpsertProduct(ctx context.Context, p model.Product) error {
	if err := b.write(func() { b.products[p.ID] = p }); err != nil {
		return err
	}
	payload, _ := json.Marshal(p)
	b.emit(Event{Kind: KindProduct, Action: ActionUpsert, Key: p.ID, Payload: payload})
	return nil
}

func (b *fakeBackend) DeleteProduct(ctx context.Context, id string) error {
	if err := b.write(func() { delete(b.products, id) }); err != nil {
		return err
	}
	b.emit(Event{Kind: KindProduct, Action: ActionDelete, Key: id})
	return nil
}

func (b *fakeBackend) FetchPosts(ctx context.Context) ([]model.BlogPost, []model.SupplierPost, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blog := make([]model.BlogPost, 0, len(b.blog))
	for _, p := range b.blog {
		blog = append(blog, p)
	}
	supplier := make([]model.SupplierPost, 0, len(b.supplier))
	for _, p := range b.supplier {
		supplier = append(supplier, p)
	}
	return blog, supplier, nil
}

func (b *fakeBackend) UpsertBlogPost(ctx context.Context, p model.BlogPost) error {
	if err := b.write(func() { b.blog[p.ID] = p }); err != nil {
		return err
	}
	payload, _ := json.Marshal(p)
	b.emit(Event{Kind: KindPost, Action: ActionUpsert, Key: p.ID, PostType: model.PostTypeBlog, Payload: payload})
	return nil
}

func (b *fakeBackend) UpsertSupplierPost(ctx context.Context, p model.SupplierPost) error {
	if err := b.write(func() { b.supplier[p.ID] = p }); err != nil {
		return err
	}
	payload, _ := json.Marshal(p)
	b.emit(Event{Kind: KindPost, Action: ActionUpsert, Key: p.ID, PostType: model.PostTypeSupplier, Payload: payload})
	return nil
}

func (b *fakeBackend) DeletePost(ctx context.Context, postType model.PostType, id string) error {
	err := b.write(func() {
		delete(b.blog, id)
		delete(b.supplier, id)
	})
	if err != nil {
		return err
	}
	b.emit(Event{Kind: KindPost, Action: ActionDelete, Key: id, PostType: postType})
	return nil
}

func (b *fakeBackend) FetchSubmissions(ctx context.Context) ([]model.FormSubmission, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.FormSubmission, 0, len(b.subs))
	for _, s := range b.subs {
		out = append(out, s)
	}
	return out, nil
}

func (b *fakeBackend) UpsertSubmission(ctx context.Context, sub model.FormSubmission) error {
	if err := b.write(func() { b.subs[sub.ID] = sub }); err != nil {
		return err
	}
	payload, _ := json.Marshal(sub)
	b.emit(Event{Kind: KindSubmission, Action: ActionUpsert, Key: sub.ID, Payload: payload})
	return nil
}

func (b *fakeBackend) FetchMedia(ctx context.Context) ([]model.MediaItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.MediaItem, 0, len(b.media))
	for _, m := range b.media {
		out = append(out, m)
	}
	return out, nil
}

func (b *fakeBackend) UpsertMedia(ctx context.Context, item model.MediaItem) error {
	if err := b.write(func() { b.media[item.ID] = item }); err != nil {
		return err
	}
	payload, _ := json.Marshal(item)
	b.emit(Event{Kind: KindMedia, Action: ActionUpsert, Key: item.ID, Payload: payload})
	return nil
}

func (b *fakeBackend) DeleteMedia(ctx context.Context, id string) error {
	if err := b.write(func() { delete(b.media, id) }); err != nil {
		return err
	}
	b.emit(Event{Kind: KindMedia, Action: ActionDelete, Key: id})
	return nil
}

// ==================== 测试辅助 ====================

func newTestStore(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	s := New(backend)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	t.Cleanup(s.Close)
	return s, backend
}

func testProduct(id string) model.Product {
	return model.Product{
		ID:     id,
		Name:   "Trà shan tuyết cổ thụ",
		Slug:   "tra-shan-tuyet",
		Status: model.ProductActive,
		Pricing: []model.PricingTier{
			{MinQuantity: 1, Price: 150000},
		},
	}
}

// ==================== 初始化 ====================

func TestInitSeedsEmptyBackend(t *testing.T) {
	s, backend := newTestStore(t)

	if got := s.Config().SiteName; got != "Alo Mua Chung" {
		t.Errorf("站点名 = %q, 期望 %q", got, "Alo Mua Chung")
	}
	if _, ok := s.Page("home"); !ok {
		t.Error("种子页面缺少 home")
	}
	if got := len(s.Products()); got != 1 {
		t.Errorf("种子商品数 = %d, 期望 1", got)
	}
	if got := len(s.BlogPosts()); got != 3 {
		t.Errorf("种子博客数 = %d, 期望 3", got)
	}

	// 种子已回写后端
	if backend.config == nil {
		t.Error("配置种子未写入后端")
	}
	if _, ok := backend.pages["home"]; !ok {
		t.Error("home 页种子未写入后端")
	}
}

func TestInitIdempotent(t *testing.T) {
	s, backend := newTestStore(t)

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("二次 Init 失败: %v", err)
	}
	if backend.sessionCalls != 1 {
		t.Errorf("二次 Init 仍在拉取数据: sessionCalls = %d", backend.sessionCalls)
	}
	if got := len(s.Products()); got != 1 {
		t.Errorf("二次 Init 后商品数 = %d, 期望 1", got)
	}
}

func TestInitFallsBackToSeedsWhenBackendDown(t *testing.T) {
	backend := newFakeBackend()
	backend.setFail(true)

	s := New(backend)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("后端不可用时 Init 应降级完成: %v", err)
	}
	t.Cleanup(s.Close)

	if got := s.Config().SiteName; got != "Alo Mua Chung" {
		t.Errorf("降级后站点名 = %q", got)
	}
	if len(s.Dirty()) == 0 {
		t.Error("降级种子应全部标脏")
	}

	// 后端恢复后补写收敛
	backend.setFail(false)
	if err := s.RetryDirty(context.Background()); err != nil {
		t.Fatalf("补写失败: %v", err)
	}
	if got := len(s.Dirty()); got != 0 {
		t.Errorf("补写后仍有 %d 条脏记录", got)
	}
	if _, ok := backend.pages["home"]; !ok {
		t.Error("补写后 home 页未落到后端")
	}
}

// ==================== 订阅通知 ====================

func TestNotifyFanOutInRegistrationOrder(t *testing.T) {
	s, _ := newTestStore(t)

	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	s.Subscribe(func() { order = append(order, "second") })

	if err := s.SaveConfig(context.Background(), s.Config()); err != nil {
		t.Fatalf("SaveConfig 失败: %v", err)
	}

	if len(order) != 2 {
		t.Fatalf("回调次数 = %d, 期望每个订阅者恰好一次", len(order))
	}
	if order[0] != "first" || order[1] != "second" {
		t.Errorf("回调顺序 = %v, 期望注册顺序", order)
	}
}

func TestUnsubscribeStopsCallbacks(t *testing.T) {
	s, _ := newTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.SaveConfig(context.Background(), s.Config())
	unsubscribe()
	s.SaveConfig(context.Background(), s.Config())

	if calls != 1 {
		t.Errorf("解除订阅后仍被回调: calls = %d", calls)
	}
}

// ==================== 乐观写入 ====================

func TestOptimisticVisibilityBeforeBackendSettles(t *testing.T) {
	s, backend := newTestStore(t)
	backend.setFail(true)

	p := testProduct("p-opt")
	saved, err := s.SaveProduct(context.Background(), p)
	if err == nil {
		t.Fatal("后端失败时 SaveProduct 应返回错误")
	}

	// 远端失败不影响本地可见
	got, ok := s.Product(saved.ID)
	if !ok {
		t.Fatal("乐观写入后商品应立即可读")
	}
	if got.Name != p.Name {
		t.Errorf("商品名 = %q", got.Name)
	}
}

func TestFailedWriteMarksDirtyNoRollback(t *testing.T) {
	s, backend := newTestStore(t)
	backend.setFail(true)

	cfg := s.Config()
	cfg.SiteName = "Tên mới"
	if err := s.SaveConfig(context.Background(), cfg); err == nil {
		t.Fatal("后端失败时 SaveConfig 应返回错误")
	}

	// 不回滚
	if got := s.Config().SiteName; got != "Tên mới" {
		t.Errorf("缓存被回滚: %q", got)
	}

	dirty := s.Dirty()
	if len(dirty) != 1 || dirty[0].Kind != KindConfig || dirty[0].State != SyncDirty {
		t.Fatalf("脏记录 = %+v, 期望 config/main dirty", dirty)
	}

	// 恢复后补写
	backend.setFail(false)
	if err := s.RetryDirty(context.Background()); err != nil {
		t.Fatalf("补写失败: %v", err)
	}
	if len(s.Dirty()) != 0 {
		t.Error("补写后脏记录未清空")
	}
	if backend.config.SiteName != "Tên mới" {
		t.Errorf("补写后后端配置 = %q", backend.config.SiteName)
	}
}

func TestRetryDirtyReplaysDeletes(t *testing.T) {
	s, backend := newTestStore(t)

	saved, err := s.SaveProduct(context.Background(), testProduct(""))
	if err != nil {
		t.Fatalf("SaveProduct 失败: %v", err)
	}

	backend.setFail(true)
	if err := s.DeleteProduct(context.Background(), saved.ID); err == nil {
		t.Fatal("后端失败时 DeleteProduct 应返回错误")
	}
	if _, ok := s.Product(saved.ID); ok {
		t.Fatal("本地删除未生效")
	}

	backend.setFail(false)
	if err := s.RetryDirty(context.Background()); err != nil {
		t.Fatalf("补写失败: %v", err)
	}
	if _, ok := backend.products[saved.ID]; ok {
		t.Error("补写后后端仍保留已删除商品")
	}
}

// ==================== 保存不校验 ====================

func TestPricingTiersRoundTripWithoutValidation(t *testing.T) {
	s, backend := newTestStore(t)

	p := testProduct("p-tiers")
	// 故意倒序：minQuantity 大的在前
	p.Pricing = []model.PricingTier{
		{MinQuantity: 50, Price: 100},
		{MinQuantity: 1, Price: 200},
	}

	if _, err := s.SaveProduct(context.Background(), p); err != nil {
		t.Fatalf("SaveProduct 失败: %v", err)
	}

	got, _ := s.Product("p-tiers")
	if got.Pricing[0].MinQuantity != 50 || got.Pricing[1].MinQuantity != 1 {
		t.Errorf("阶梯价被重排: %+v", got.Pricing)
	}
	persisted := backend.products["p-tiers"]
	if persisted.Pricing[0].MinQuantity != 50 {
		t.Errorf("持久化的阶梯价被重排: %+v", persisted.Pricing)
	}
}

func TestSectionOrderRoundTrip(t *testing.T) {
	s, backend := newTestStore(t)

	page := model.PageData{
		Slug:   "gioi-thieu",
		Title:  "Giới thiệu",
		Status: model.StatusPublished,
		Sections: []model.SectionContent{
			{ID: "a", Type: model.SectionText, Order: 1, IsVisible: true},
			{ID: "b", Type: model.SectionText, Order: 2, IsVisible: true},
		},
	}
	if err := s.SavePage(context.Background(), page); err != nil {
		t.Fatalf("SavePage 失败: %v", err)
	}

	// B 上移
	page.Sections = []model.SectionContent{
		{ID: "b", Type: model.SectionText, Order: 1, IsVisible: true},
		{ID: "a", Type: model.SectionText, Order: 2, IsVisible: true},
	}
	if err := s.SavePage(context.Background(), page); err != nil {
		t.Fatalf("二次 SavePage 失败: %v", err)
	}

	got, _ := s.Page("gioi-thieu")
	if got.Sections[0].ID != "b" || got.Sections[0].Order != 1 {
		t.Errorf("内存区块顺序 = %+v", got.Sections)
	}
	persisted := backend.pages["gioi-thieu"]
	if persisted.Sections[0].ID != "b" {
		t.Errorf("持久化区块顺序 = %+v", persisted.Sections)
	}
}

// ==================== 文章生命周期 ====================

func TestBlogPostSaveAndDelete(t *testing.T) {
	s, _ := newTestStore(t)

	p := model.BlogPost{
		ID:        "x",
		Title:     "T",
		Slug:      "t",
		Category:  model.CategoryEvent,
		Status:    model.StatusPublished,
		EventDate: "2024-01-01T00:00:00.000Z",
	}
	if _, err := s.SaveBlogPost(context.Background(), p); err != nil {
		t.Fatalf("SaveBlogPost 失败: %v", err)
	}

	got, ok := s.findBlogPost("x")
	if !ok {
		t.Fatal("保存后找不到文章 x")
	}
	if got.EventDate != "2024-01-01T00:00:00.000Z" {
		t.Errorf("eventDate = %q", got.EventDate)
	}

	if err := s.DeleteBlogPost(context.Background(), "x"); err != nil {
		t.Fatalf("DeleteBlogPost 失败: %v", err)
	}
	if _, ok := s.findBlogPost("x"); ok {
		t.Error("删除后文章仍在")
	}
}

// ==================== 表单提交 ====================

func TestSubmissionsNewestFirstAndStatusFlow(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, _ := s.AddSubmission(ctx, model.FormSubmission{Type: model.SubmissionGeneral, Name: "Anh Ba"})
	second, _ := s.AddSubmission(ctx, model.FormSubmission{Type: model.SubmissionLeader, Name: "Chị Tư"})

	subs := s.Submissions()
	if len(subs) != 2 {
		t.Fatalf("提交数 = %d", len(subs))
	}
	if subs[0].ID != second.ID {
		t.Errorf("最新提交应在最前: %+v", subs)
	}
	if subs[0].Status != model.SubmissionNew {
		t.Errorf("新提交状态 = %q", subs[0].Status)
	}
	if first.ID == "" || len(first.ID) != 9 {
		t.Errorf("生成的 id = %q, 期望 9 位", first.ID)
	}

	if err := s.UpdateSubmissionStatus(ctx, first.ID, model.SubmissionRead); err != nil {
		t.Fatalf("状态更新失败: %v", err)
	}
	got, _ := s.findSubmission(first.ID)
	if got.Status != model.SubmissionRead {
		t.Errorf("状态 = %q", got.Status)
	}

	if err := s.UpdateSubmissionStatus(ctx, "khong-ton-tai", model.SubmissionRead); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的提交应返回 ErrNotFound, got %v", err)
	}
}

// ==================== 认证 ====================

func TestLoginLogout(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Login(ctx, "admin@alomuachung.vn", "sai-mat-khau"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码应返回 ErrInvalidCredentials, got %v", err)
	}
	if s.CheckAuth() {
		t.Error("登录失败后不应置位")
	}

	if err := s.Login(ctx, "admin@alomuachung.vn", "admin123"); err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if !s.CheckAuth() {
		t.Error("登录成功后应置位")
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if s.CheckAuth() {
		t.Error("登出后应清位")
	}
}

// ==================== 事件应用 ====================

func TestApplyEventUpsertAndDeleteIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	p := testProduct("p-ev")
	payload, _ := json.Marshal(p)
	ev := Event{Kind: KindProduct, Action: ActionUpsert, Key: p.ID, Payload: payload}

	if err := s.ApplyEvent(ev); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if err := s.ApplyEvent(ev); err != nil {
		t.Fatalf("二次 ApplyEvent 失败: %v", err)
	}

	count := 0
	for _, got := range s.Products() {
		if got.ID == p.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("重复应用产生 %d 条记录", count)
	}

	del := Event{Kind: KindProduct, Action: ActionDelete, Key: p.ID}
	if err := s.ApplyEvent(del); err != nil {
		t.Fatalf("删除事件失败: %v", err)
	}
	if _, ok := s.Product(p.ID); ok {
		t.Error("删除事件未生效")
	}
}

func TestApplyEventRoutesPostsByType(t *testing.T) {
	s, _ := newTestStore(t)

	sp := model.SupplierPost{ID: "s1", Title: "NSX", Slug: "nsx", Status: model.StatusPublished}
	payload, _ := json.Marshal(sp)
	ev := Event{Kind: KindPost, Action: ActionUpsert, Key: "s1", PostType: model.PostTypeSupplier, Payload: payload}

	if err := s.ApplyEvent(ev); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if _, ok := s.findSupplierPost("s1"); !ok {
		t.Error("supplier 事件未落到供应商集合")
	}
	if _, ok := s.findBlogPost("s1"); ok {
		t.Error("supplier 事件误入博客集合")
	}
}

func TestApplyEventUnknownKindErrors(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.ApplyEvent(Event{Kind: "bang-la", Action: ActionUpsert, Key: "x"})
	if err == nil {
		t.Fatal("未知事件类型应报错而非静默忽略")
	}
}

func TestApplyEventRejectsInvalidPayload(t *testing.T) {
	s, _ := newTestStore(t)

	before := len(s.Products())

	// 缺 id/name/slug/status/pricing，结构校验应拒绝
	ev := Event{Kind: KindProduct, Action: ActionUpsert, Key: "bad", Payload: []byte(`{"id":""}`)}
	err := s.ApplyEvent(ev)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("期望 SchemaError, got %v", err)
	}
	if got := len(s.Products()); got != before {
		t.Errorf("非法载荷进入缓存: %d -> %d", before, got)
	}
}

func TestRealtimeEventReachesAttachedStore(t *testing.T) {
	backend := newFakeBackend()
	backend.publish = true

	// 两个 Store 挂同一后端，模拟两个进程实例
	s1 := New(backend)
	if err := s1.Init(context.Background()); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	t.Cleanup(s1.Close)

	s2 := New(backend)
	if err := s2.Init(context.Background()); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	t.Cleanup(s2.Close)

	notified := make(chan struct{}, 8)
	s2.Subscribe(func() { notified <- struct{}{} })

	saved, err := s1.SaveProduct(context.Background(), testProduct(""))
	if err != nil {
		t.Fatalf("SaveProduct 失败: %v", err)
	}

	// 等 s2 的实时协程消费事件
	<-notified
	if _, ok := s2.Product(saved.ID); !ok {
		t.Error("s1 的写入未同步到 s2")
	}
}
