package model

// 初始种子数据：后端为空时写入，连接失败时作为内存兜底。
// 文案为品牌方提供的越南语内容，保持原样。

// DefaultConfig 默认站点配置
func DefaultConfig() *SiteConfig {
	return &SiteConfig{
		SiteName:       "Alo Mua Chung",
		ContactEmail:   "lienhe@alomuachung.vn",
		ContactPhone:   "0909.888.999",
		PrimaryColor:   ThemeEmerald,
		Font:           FontInter,
		SEOTitle:       "Alo Mua Chung - Cộng Đồng Tiêu Dùng Thông Minh",
		SEODescription: "Nền tảng kết nối người dùng, Trưởng Nhóm Khu Vực và Nhà sản xuất tử tế. Không bán lẻ, không đa cấp.",
		SocialLinks:    SocialLinks{},
		AIKeys:         &AIKeys{},
		MainMenu: []MenuLink{
			{ID: "1", Name: "Về chúng tôi", Path: "/", IsVisible: true, Order: 1},
			{ID: "2", Name: "Mô hình", Path: "/model", IsVisible: true, Order: 2},
			{ID: "3", Name: "Trưởng Nhóm KV", Path: "/leader", IsVisible: true, Order: 3},
			{ID: "4", Name: "Vườn giải pháp", Path: "/products", IsVisible: true, Order: 4},
			{ID: "5", Name: "Dưỡng vườn tâm", Path: "/blog", IsVisible: true, Order: 5},
		},
	}
}

// InitialPages 初始页面集合（home/model/leader/privacy/terms）
func InitialPages() []PageData {
	now := NowISO()
	return []PageData{
		{
			Slug:            "home",
			Title:           "Trang Chủ",
			Status:          StatusPublished,
			UpdatedAt:       now,
			MetaTitle:       "Trang Chủ - Alo Mua Chung",
			MetaDescription: "Nền tảng mua chung tử tế, kết nối trực tiếp NSX và người dùng.",
			Sections: []SectionContent{
				{
					ID:        "hero",
					Type:      SectionHero,
					Title:     "Chúng tôi không bán hàng – chúng tôi tổ chức mua chung tử tế.",
					Subtitle:  "Kết nối trực tiếp từ Nhà sản xuất tận tâm đến Cộng đồng thông qua những Trưởng Nhóm Khu Vực địa phương.",
					CTAText:   "Tìm hiểu cách hoạt động",
					CTALink:   "/model",
					IsVisible: true,
					Order:     1,
				},
				{
					ID:        "pillars",
					Type:      SectionFeatures,
					Title:     "Lợi ích cho tất cả",
					Subtitle:  "Mô hình win-win-win bền vững dựa trên sự thật.",
					IsVisible: true,
					Order:     2,
					Items: []SectionItem{
						{Title: "Người Dùng", Description: "Sở hữu giải pháp/sản phẩm tốt với giá \"gốc\" nhờ sức mạnh tập thể. An tâm tuyệt đối về nguồn gốc vì Trưởng Nhóm đã kiểm chứng."},
						{Title: "Trưởng Nhóm Khu Vực", Description: "Có thêm thu nhập xứng đáng từ việc chăm sóc cộng đồng. Xây dựng uy tín cá nhân và mang lại giá trị thực."},
						{Title: "Nhà Sản Xuất", Description: "Có kế hoạch sản xuất ổn định nhờ đơn đặt trước (pre-order). Tập trung làm tốt chất lượng thay vì lo marketing."},
					},
				},
				{
					ID:        "trust",
					Type:      SectionImageText,
					Title:     "Khác biệt để bền vững",
					Content:   "Chúng tôi gom đơn định kỳ để tối ưu vận chuyển. Chỉ có 1 tầng Trưởng Nhóm duy nhất. Chia sẻ giá trị giải pháp thực.",
					Image:     "https://picsum.photos/800/600?grayscale",
					IsVisible: true,
					Order:     3,
					Items: []SectionItem{
						{Title: "Không bán lẻ", Description: "Gom đơn để tối ưu chi phí"},
						{Title: "Không đa cấp", Description: "Chỉ 1 tầng Trưởng Nhóm duy nhất"},
						{Title: "Minh bạch 100%", Description: "Về nguồn gốc và giá thành"},
					},
				},
			},
		},
		{
			Slug:      "model",
			Title:     "Mô hình hoạt động",
			Status:    StatusPublished,
			UpdatedAt: now,
			Sections: []SectionContent{
				{ID: "diagram", Type: SectionDiagram, Title: "Sơ đồ luân chuyển", IsVisible: true, Order: 1},
				{
					ID:        "timeline",
					Type:      SectionTimeline,
					Title:     "Quy trình 30 ngày",
					Subtitle:  "Để đảm bảo giá tốt nhất và giải pháp mới nhất, chúng tôi không bán sẵn. Mọi thứ hoạt động theo lịch trình chính xác.",
					IsVisible: true,
					Order:     2,
					Items: []SectionItem{
						{Label: "Ngày 1-10", Title: "Mở cổng đăng ký (Pre-order)", Description: "Cộng đồng đặt giải pháp thông qua Trưởng Nhóm. Trưởng Nhóm tổng hợp số lượng."},
						{Label: "Ngày 11-15", Title: "Chốt đơn & Sản xuất", Description: "NSX nhận số liệu chính xác và bắt đầu đóng gói/sản xuất để đảm bảo chất lượng tốt nhất."},
						{Label: "Ngày 16-25", Title: "Vận chuyển tập trung", Description: "Hàng được chuyển về kho tổng và phân phối đến địa điểm của từng Trưởng Nhóm."},
						{Label: "Ngày 26-30", Title: "Trả hàng & Chăm sóc", Description: "Khách hàng nhận giải pháp tại điểm Trưởng Nhóm hoặc được ship. Trưởng Nhóm hướng dẫn sử dụng."},
					},
				},
			},
		},
		{
			Slug:      "leader",
			Title:     "Dành cho Trưởng Nhóm",
			Status:    StatusPublished,
			UpdatedAt: now,
			Sections: []SectionContent{
				{ID: "hero", Type: SectionHero, Title: "Trở thành trái tim cộng đồng", IsVisible: true, Order: 1},
				{ID: "form", Type: SectionCTA, Title: "Form đăng ký", IsVisible: true, Order: 2},
			},
		},
		{
			Slug:      "privacy",
			Title:     "Chính sách bảo mật",
			Status:    StatusPublished,
			UpdatedAt: now,
			Sections: []SectionContent{
				{
					ID:    "content",
					Type:  SectionText,
					Title: "Chính sách bảo mật thông tin",
					Content: `
<h3>1. Mục đích và phạm vi thu thập</h3>
<p>Để truy cập và sử dụng một số dịch vụ tại Alo Mua Chung, bạn có thể sẽ được yêu cầu đăng ký với chúng tôi thông tin cá nhân (Email, Họ tên, Số ĐT liên lạc...). Mọi thông tin khai báo phải đảm bảo tính chính xác và hợp pháp.</p>

<h3>2. Phạm vi sử dụng thông tin</h3>
<p>Alo Mua Chung thu thập và sử dụng thông tin cá nhân quý khách với mục đích phù hợp và hoàn toàn tuân thủ nội dung của "Chính sách bảo mật" này.</p>
`,
					IsVisible: true,
					Order:     1,
				},
			},
		},
		{
			Slug:      "terms",
			Title:     "Điều khoản sử dụng",
			Status:    StatusPublished,
			UpdatedAt: now,
			Sections: []SectionContent{
				{
					ID:    "content",
					Type:  SectionText,
					Title: "Điều khoản sử dụng",
					Content: `
<h3>1. Hướng dẫn sử dụng website</h3>
<ul>
<li>Người dùng phải đủ 18 tuổi hoặc truy cập dưới sự giám sát của cha mẹ hay người giám hộ hợp pháp.</li>
</ul>

<h3>2. Chính sách Pre-order</h3>
<p>Mô hình của chúng tôi hoạt động dựa trên nguyên tắc gom đơn (mua chung). Do đó, thời gian nhận hàng có thể lâu hơn so với thương mại điện tử thông thường.</p>
`,
					IsVisible: true,
					Order:     1,
				},
			},
		},
	}
}

// InitialProducts 示例商品（商品表为空时写入一条）
func InitialProducts() []Product {
	return []Product{
		{
			ID:               "p1",
			Name:             "Combo Rau Củ Hữu Cơ Đà Lạt",
			Slug:             "combo-rau-cu-huu-co",
			ShortDescription: "Combo 5kg các loại rau củ theo mùa, thu hoạch trong ngày.",
			Description:      "Bao gồm: Cà rốt, Khoai tây, Súp lơ, Cải thảo, Hành tây. Cam kết không thuốc BVTV.",
			Images:           []string{"https://picsum.photos/id/292/600/600", "https://picsum.photos/id/1080/600/600"},
			Pricing: []PricingTier{
				{MinQuantity: 1, Price: 150000, Label: "Mua lẻ"},
				{MinQuantity: 10, Price: 135000, Label: "Gom chung (10+)"},
				{MinQuantity: 50, Price: 120000, Label: "Giá gốc (50+)"},
			},
			Category:  "Nông sản",
			Status:    ProductActive,
			UpdatedAt: NowISO(),
		},
	}
}

// InitialBlogPosts 示例文章（文章表为空时写入）
func InitialBlogPosts() []BlogPost {
	now := NowISO()
	return []BlogPost{
		{
			ID:      "b1",
			Slug:    "song-cham-de-yeu-thuong",
			Title:   "Sống chậm để yêu thương nhiều hơn",
			Excerpt: "Trong guồng quay hối hả của cuộc sống hiện đại, đôi khi chúng ta cần một khoảng lặng để nhìn lại...",
			Content: `
<p>Chúng ta đang sống trong một thế giới mà mọi thứ đều diễn ra quá nhanh. Ăn nhanh, uống nhanh, và thậm chí là yêu thương cũng vội vàng. Nhưng liệu sự nhanh chóng đó có thực sự mang lại hạnh phúc?</p>
<p>Dưỡng vườn tâm là nơi chúng ta cùng nhau chia sẻ những câu chuyện về sự tử tế, về lối sống xanh và cách để tìm lại sự cân bằng trong tâm hồn.</p>
`,
			CoverImage: "https://picsum.photos/800/400?grayscale",
			Status:     StatusPublished,
			Category:   CategoryTea,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:      "b2",
			Slug:    "su-tu-te-trong-tieu-dung",
			Title:   "Sự tử tế trong tiêu dùng: Bắt đầu từ đâu?",
			Excerpt: "Tiêu dùng không chỉ là mua sắm, đó là lá phiếu bạn bầu chọn cho thế giới bạn muốn sống.",
			Content: `
<p>Mỗi lần bạn bỏ tiền ra mua một món hàng, bạn đang ủng hộ cho quy trình sản xuất ra nó. Tại Alo Mua Chung, chúng tôi tin rằng sự tử tế bắt đầu từ việc minh bạch nguồn gốc và chia sẻ lợi ích công bằng với người nông dân.</p>
`,
			CoverImage: "https://picsum.photos/800/401?grayscale",
			Status:     StatusPublished,
			Category:   CategorySolution,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:      "b3",
			Slug:    "buoi-gap-go-chi-em",
			Title:   "Họp mặt chị em cuối tuần: Chia sẻ chuyện bếp núc",
			Excerpt: "Thân mời các chị em tham gia buổi trà chiều chia sẻ về các công thức nấu ăn ngon và lành mạnh.",
			Content: `
<p>Thời gian: 15:00 Thứ 7 tuần này.</p>
<p>Địa điểm: Nhà cộng đồng.</p>
<p>Nội dung: Hướng dẫn làm sữa hạt tại nhà.</p>
`,
			CoverImage: "https://picsum.photos/800/402?grayscale",
			Status:     StatusPublished,
			Category:   CategoryEvent,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}
