package model

import "time"

// ==================== 枚举定义 ====================

// ThemeColor 主题色
type ThemeColor string

const (
	ThemeEmerald ThemeColor = "emerald"
	ThemeBlue    ThemeColor = "blue"
	ThemeRose    ThemeColor = "rose"
	ThemeAmber   ThemeColor = "amber"
	ThemeSlate   ThemeColor = "slate"
	ThemeViolet  ThemeColor = "violet"
)

// ThemeFont 站点字体
type ThemeFont string

const (
	FontInter ThemeFont = "inter"
	FontSerif ThemeFont = "serif"
	FontMono  ThemeFont = "mono"
)

// SectionType 页面区块类型
type SectionType string

const (
	SectionHero      SectionType = "hero"
	SectionText      SectionType = "text"
	SectionFeatures  SectionType = "features"
	SectionCTA       SectionType = "cta"
	SectionDiagram   SectionType = "diagram"
	SectionImageText SectionType = "image-text"
	SectionTimeline  SectionType = "timeline"
	// 动态区块：渲染时从对应集合取数
	SectionProducts SectionType = "products"
	SectionEvents   SectionType = "events"
	SectionBlog     SectionType = "blog"
)

// PublishStatus 页面/文章发布状态
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

// ProductStatus 商品上下架状态
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// BlogCategory 文章分类
type BlogCategory string

const (
	CategorySolution BlogCategory = "solution"
	CategoryStory    BlogCategory = "story"
	CategoryEvent    BlogCategory = "event"
	CategoryTea      BlogCategory = "tea"
)

// SubmissionType 表单类型
type SubmissionType string

const (
	SubmissionLeader   SubmissionType = "leader_registration"
	SubmissionSupplier SubmissionType = "supplier_contact"
	SubmissionGeneral  SubmissionType = "general_contact"
)

// SubmissionStatus 表单处理状态：new -> read -> contacted
type SubmissionStatus string

const (
	SubmissionNew       SubmissionStatus = "new"
	SubmissionRead      SubmissionStatus = "read"
	SubmissionContacted SubmissionStatus = "contacted"
)

// MediaType 媒体类型
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaDocument MediaType = "document"
)

// ==================== 站点配置 ====================

// MenuLink 主导航菜单项
type MenuLink struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsVisible bool   `json:"isVisible"`
	Order     int    `json:"order"`
}

// SocialLinks 社交链接（均可选）
type SocialLinks struct {
	Facebook string `json:"facebook,omitempty"`
	Zalo     string `json:"zalo,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// AIKeys 各 AI 服务商的密钥（可选）
type AIKeys struct {
	Gemini string `json:"gemini,omitempty"`
	OpenAI string `json:"openai,omitempty"`
	Claude string `json:"claude,omitempty"`
	Grok   string `json:"grok,omitempty"`
}

// SiteConfig 站点配置单例，config 表中 key 固定为 "main"
type SiteConfig struct {
	SiteName       string      `json:"siteName" validate:"required"`
	ContactEmail   string      `json:"contactEmail"`
	ContactPhone   string      `json:"contactPhone"`
	PrimaryColor   ThemeColor  `json:"primaryColor" validate:"required"`
	Font           ThemeFont   `json:"font" validate:"required"`
	SEOTitle       string      `json:"seoTitle"`
	SEODescription string      `json:"seoDescription"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	AIKeys         *AIKeys     `json:"aiKeys,omitempty"`
	MainMenu       []MenuLink  `json:"mainMenu"`
}

// ==================== 页面 ====================

// SectionItem 区块内的列表项（时间轴、特性列表等）
type SectionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label,omitempty"` // 如 "Ngày 1-10"
	Image       string `json:"image,omitempty"`
}

// SectionContent 页面区块，Order 决定渲染顺序
type SectionContent struct {
	ID        string        `json:"id" validate:"required"`
	Type      SectionType   `json:"type" validate:"required"`
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle,omitempty"`
	Content   string        `json:"content,omitempty"`
	Image     string        `json:"image,omitempty"`
	CTAText   string        `json:"ctaText,omitempty"`
	CTALink   string        `json:"ctaLink,omitempty"`
	IsVisible bool          `json:"isVisible"`
	Order     int           `json:"order"`
	Items     []SectionItem `json:"items,omitempty"`
}

// PageData 页面，slug 既是路由也是主键，创建后不可变
type PageData struct {
	Slug            string           `json:"slug" validate:"required"`
	Title           string           `json:"title"`
	Sections        []SectionContent `json:"sections" validate:"dive"`
	MetaTitle       string           `json:"metaTitle,omitempty"`
	MetaDescription string           `json:"metaDescription,omitempty"`
	Status          PublishStatus    `json:"status" validate:"required"`
	UpdatedAt       string           `json:"updatedAt"`
}

// ==================== 商品 ====================

// PricingTier 阶梯价：minQuantity 越高价格越低（约定，不强制校验排序）
type PricingTier struct {
	MinQuantity int    `json:"minQuantity"`
	Price       int64  `json:"price"`
	Label       string `json:"label,omitempty"` // 如 "Mua lẻ", "Gom chung (10+)"
}

// Product 商品（"Vườn giải pháp" 解决方案）
type Product struct {
	ID               string        `json:"id" validate:"required"`
	Name             string        `json:"name" validate:"required"`
	Slug             string        `json:"slug" validate:"required"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"shortDescription"`
	Images           []string      `json:"images"`
	Pricing          []PricingTier `json:"pricing" validate:"min=1"`
	Category         string        `json:"category"`
	Status           ProductStatus `json:"status" validate:"required"`
	UpdatedAt        string        `json:"updatedAt"`
}

// ==================== 文章 ====================

// PostLocation 线下活动地址（仅 tea 分类有意义）
type PostLocation struct {
	Address string `json:"address"`
	Link    string `json:"link,omitempty"` // Google Maps 链接
}

// BlogPost 博客文章（"Dưỡng vườn tâm"）
// slug 用于公开路由，系统不强制唯一，冲突时后保存者生效
type BlogPost struct {
	ID         string        `json:"id" validate:"required"`
	Slug       string        `json:"slug" validate:"required"`
	Title      string        `json:"title"`
	Excerpt    string        `json:"excerpt"`
	Content    string        `json:"content"` // 富文本 HTML
	CoverImage string        `json:"coverImage,omitempty"`
	VideoURL   string        `json:"videoUrl,omitempty"`
	Category   BlogCategory  `json:"category" validate:"required"`
	Status     PublishStatus `json:"status" validate:"required"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	Location   *PostLocation `json:"location,omitempty"`  // 仅 tea 分类
	EventDate  string        `json:"eventDate,omitempty"` // 仅 event 分类，ISO 时间串
}

// SupplierPost 供应商/合作方介绍文章
type SupplierPost struct {
	ID         string        `json:"id" validate:"required"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug" validate:"required"`
	Content    string        `json:"content"`
	CoverImage string        `json:"coverImage"`
	VideoURL   string        `json:"videoUrl,omitempty"`
	Status     PublishStatus `json:"status" validate:"required"`
	UpdatedAt  string        `json:"updatedAt"`
}

// ==================== 表单与媒体 ====================

// FormSubmission 公开表单提交记录，仅允许状态流转，不可删除
type FormSubmission struct {
	ID        string                 `json:"id" validate:"required"`
	Type      SubmissionType         `json:"type" validate:"required"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone"`
	Message   string                 `json:"message,omitempty"`
	Status    SubmissionStatus       `json:"status" validate:"required"`
	CreatedAt string                 `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// MediaItem 媒体库条目，URL 可能被页面/商品/文章引用（删除时不做级联检查）
type MediaItem struct {
	ID        string    `json:"id" validate:"required"`
	URL       string    `json:"url" validate:"required"`
	Name      string    `json:"name"`
	Type      MediaType `json:"type" validate:"required"`
	CreatedAt string    `json:"createdAt"`
}

// ==================== 时间工具 ====================

// NowISO 当前 UTC 时间的 ISO 8601 串，与前端 toISOString() 格式一致
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
