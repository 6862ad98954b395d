package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// ==================== 类型定义 ====================

// AIGenerateMode 生成模式
type AIGenerateMode string

const (
	// AIModeBulkBlog 整篇博客（标题+slug+摘要+正文）
	AIModeBulkBlog AIGenerateMode = "bulk_blog"
	// AIModeBulkProduct 整个商品（名称+slug+简介+详情）
	AIModeBulkProduct AIGenerateMode = "bulk_product"
	// AIModeBulkSupplier 整篇供应商介绍
	AIModeBulkSupplier AIGenerateMode = "bulk_supplier"
	// AIModeTitle 单独生成标题
	AIModeTitle AIGenerateMode = "title"
	// AIModePolicy 政策条款类富文本
	AIModePolicy AIGenerateMode = "policy"
	// AIModeContent 通用富文本正文
	AIModeContent AIGenerateMode = "content"
)

// AIGenerateRequest 生成请求
type AIGenerateRequest struct {
	Prompt    string         `json:"prompt" binding:"required"`
	Mode      AIGenerateMode `json:"mode"`
	WordCount int            `json:"wordCount"`
	Outline   string         `json:"outline"`
}

// AIGenerateResult 生成结果。bulk 模式填结构化字段，
// 单字段模式只填 Content。
type AIGenerateResult struct {
	Title            string `json:"title,omitempty"`
	Name             string `json:"name,omitempty"`
	Slug             string `json:"slug,omitempty"`
	Excerpt          string `json:"excerpt,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Content          string `json:"content"`
}

// ==================== 服务 ====================

// AIService 内容生成服务。当前为本地模板生成（不出网），
// 配置中的各家 API Key 先存起来，接入真实服务商时替换 Generate 的实现。
type AIService struct{}

// NewAIService 工厂方法
func NewAIService() *AIService {
	return &AIService{}
}

// Generate 按模式生成内容
func (s *AIService) Generate(ctx context.Context, req AIGenerateRequest) (*AIGenerateResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt 不能为空")
	}

	wordCount := req.WordCount
	if wordCount <= 0 {
		wordCount = 400
	}
	// 正文模板自带固定段落，填充文只占一半配额
	filler := fillerHTML(req.Prompt, wordCount/2)

	switch req.Mode {
	case AIModeBulkBlog:
		title := fmt.Sprintf("Góc nhìn chuyên sâu: %s và những giá trị thực", req.Prompt)
		return &AIGenerateResult{
			Title:   title,
			Slug:    Slugify(title),
			Excerpt: fmt.Sprintf("Khám phá toàn diện về %s. Bài viết chia sẻ những thông tin hữu ích, thiết thực giúp bạn có cái nhìn đúng đắn và áp dụng hiệu quả vào cuộc sống hàng ngày.", req.Prompt),
			Content: blogContentHTML(req.Prompt, filler),
		}, nil

	case AIModeBulkProduct:
		return &AIGenerateResult{
			Name:             req.Prompt,
			Slug:             Slugify(req.Prompt),
			ShortDescription: fmt.Sprintf("Sản phẩm %s thượng hạng, nguồn gốc tự nhiên, được kiểm định nghiêm ngặt bởi đội ngũ Trưởng Nhóm Khu Vực. Mang lại sức khỏe và sự an tâm cho gia đình.", req.Prompt),
			Content:          productContentHTML(req.Prompt, filler),
		}, nil

	case AIModeBulkSupplier:
		title := fmt.Sprintf("Đối tác chiến lược: Nhà sản xuất %s", req.Prompt)
		return &AIGenerateResult{
			Title:   title,
			Slug:    Slugify(title),
			Content: supplierContentHTML(req.Prompt, filler),
		}, nil

	case AIModeTitle:
		return &AIGenerateResult{
			Content: fmt.Sprintf("Giải pháp toàn diện: %s cho cuộc sống hiện đại", req.Prompt),
		}, nil

	case AIModePolicy:
		return &AIGenerateResult{
			Content: policyContentHTML(req.Prompt, filler),
		}, nil

	case AIModeContent, "":
		return &AIGenerateResult{
			Content: genericContentHTML(req.Prompt, filler),
		}, nil

	default:
		return nil, fmt.Errorf("不支持的生成模式: %s", req.Mode)
	}
}

// ==================== 模板 ====================

var fillerSentences = []string{
	"Việc lựa chọn %s không chỉ mang lại giá trị sử dụng mà còn thể hiện phong cách sống của bạn.",
	"Tại Alo Mua Chung, chúng tôi luôn đề cao sự minh bạch và nguồn gốc xuất xứ rõ ràng trong từng sản phẩm.",
	"Sự kết nối giữa người tiêu dùng và nhà sản xuất là chìa khóa để tạo nên một cộng đồng bền vững.",
	"Khi bạn hiểu rõ về %s, bạn sẽ thấy trân trọng hơn công sức của những người làm ra nó.",
	"Chất lượng sản phẩm luôn được đặt lên hàng đầu, đảm bảo an toàn tuyệt đối cho sức khỏe của gia đình bạn.",
	"Chúng ta hãy cùng nhau lan tỏa những giá trị tốt đẹp này đến với nhiều người hơn nữa.",
	"Giải pháp %s thực sự là một bước tiến quan trọng trong việc nâng cao chất lượng cuộc sống.",
}

// fillerHTML 生成凑字数的自然段，每段约 60 词
func fillerHTML(topic string, words int) string {
	var b strings.Builder
	for written := 0; written < words; written += 60 {
		b.WriteString("<p>")
		for i := 0; i < 4; i++ {
			tpl := fillerSentences[rand.Intn(len(fillerSentences))]
			if strings.Contains(tpl, "%s") {
				b.WriteString(fmt.Sprintf(tpl, topic))
			} else {
				b.WriteString(tpl)
			}
			b.WriteByte(' ')
		}
		b.WriteString("</p>")
	}
	return b.String()
}

func blogContentHTML(topic, filler string) string {
	return fmt.Sprintf(`<h3>Đặt vấn đề: Tại sao %[1]s lại quan trọng?</h3>
<p>Trong cuộc sống hiện đại ngày nay, %[1]s đang dần trở thành một chủ đề không thể bỏ qua. Nó không chỉ ảnh hưởng trực tiếp đến chất lượng cuộc sống mà còn tác động đến sự phát triển bền vững của cộng đồng.</p>
<p>Chúng ta thường quá bận rộn và bỏ quên những giá trị cốt lõi. Bài viết này sẽ giúp bạn nhìn nhận lại vấn đề một cách thấu đáo nhất.</p>

<h3>Phân tích chi tiết</h3>
%[2]s

<h3>Những lợi ích không thể bỏ qua</h3>
<ul>
    <li><strong>Cải thiện chất lượng sống:</strong> Mang lại sự an tâm và thoải mái cho tinh thần.</li>
    <li><strong>Gắn kết cộng đồng:</strong> Tạo ra những mối liên kết bền vững dựa trên sự tin tưởng.</li>
    <li><strong>Tiết kiệm và hiệu quả:</strong> Tối ưu hóa nguồn lực và chi phí cho gia đình bạn.</li>
</ul>

<h3>Lời khuyên từ chuyên gia</h3>
<p>Để tận dụng tối đa lợi ích của %[1]s, bạn nên bắt đầu từ những hành động nhỏ nhất. Hãy lắng nghe cơ thể và nhu cầu thực sự của bản thân. Đừng ngần ngại chia sẻ những trải nghiệm này với người thân và bạn bè.</p>

<h3>Kết luận</h3>
<p>Hy vọng những chia sẻ trên đã giúp bạn hiểu rõ hơn về %[1]s. Hãy cùng Alo Mua Chung xây dựng một lối sống tử tế và văn minh ngay từ hôm nay.</p>`, topic, filler)
}

func productContentHTML(name, filler string) string {
	return fmt.Sprintf(`<h3>Giới thiệu sản phẩm %[1]s</h3>
<p>Đây là giải pháp tuyệt vời được chúng tôi tuyển chọn kỹ lưỡng. Sản phẩm được sản xuất theo quy trình khép kín, đảm bảo giữ trọn vẹn giá trị dinh dưỡng và độ tươi ngon. Chúng tôi hiểu rằng, sức khỏe của gia đình bạn là điều quan trọng nhất.</p>

<h3>Ưu điểm vượt trội</h3>
<ul>
    <li><strong>Nguồn gốc minh bạch:</strong> Truy xuất nguồn gốc rõ ràng, trực tiếp từ vùng nguyên liệu sạch.</li>
    <li><strong>Quy trình chuẩn:</strong> Không sử dụng hóa chất độc hại, tuân thủ nghiêm ngặt các tiêu chuẩn an toàn vệ sinh thực phẩm.</li>
    <li><strong>Giá trị thực:</strong> Sản phẩm đến tay người dùng với mức giá tốt nhất nhờ mô hình mua chung, cắt giảm chi phí trung gian.</li>
</ul>

<h3>Thông tin chi tiết</h3>
%[2]s

<h3>Hướng dẫn sử dụng và bảo quản</h3>
<p>Để sản phẩm luôn giữ được chất lượng tốt nhất, vui lòng bảo quản ở nơi khô ráo, thoáng mát. Sử dụng tốt nhất trong thời gian khuyến nghị trên bao bì.</p>

<h3>Cam kết từ Alo Mua Chung</h3>
<p>Chúng tôi cam kết hoàn tiền 100%% nếu sản phẩm không đúng như mô tả. Sự hài lòng của bạn là niềm hạnh phúc của chúng tôi.</p>`, name, filler)
}

func supplierContentHTML(name, filler string) string {
	return fmt.Sprintf(`<h3>Câu chuyện về Nhà sản xuất %[1]s</h3>
<p>Chúng tôi tự hào giới thiệu đối tác chiến lược mới của Alo Mua Chung. Đây là đơn vị tiên phong trong lĩnh vực sản xuất xanh, với sứ mệnh mang lại những sản phẩm tử tế nhất cho cộng đồng.</p>

<h3>Quy trình sản xuất và Tiêu chuẩn chất lượng</h3>
<p>Mỗi sản phẩm làm ra đều chứa đựng tâm huyết của người sản xuất. Từ khâu chọn lựa nguyên liệu đầu vào cho đến quy trình đóng gói thành phẩm, mọi thứ đều được kiểm soát gắt gao.</p>
%[2]s

<h3>Tại sao chúng tôi lựa chọn hợp tác?</h3>
<ul>
    <li><strong>Tâm huyết với nghề:</strong> Đội ngũ sản xuất luôn đặt cái tâm vào từng sản phẩm.</li>
    <li><strong>Công nghệ hiện đại:</strong> Ứng dụng khoa học kỹ thuật để nâng cao chất lượng nhưng vẫn giữ gìn giá trị truyền thống.</li>
    <li><strong>Trách nhiệm xã hội:</strong> Cam kết bảo vệ môi trường và hỗ trợ sinh kế cho người dân địa phương.</li>
</ul>

<p>Sự hợp tác này hứa hẹn sẽ mang đến cho cộng đồng Alo Mua Chung những giải pháp tiêu dùng thông minh và an toàn nhất.</p>`, name, filler)
}

func policyContentHTML(topic, filler string) string {
	return fmt.Sprintf(`<h3>1. Quy định chung</h3>
<p>Chính sách này nhằm đảm bảo quyền lợi tối đa cho các thành viên tham gia nền tảng. Chúng tôi cam kết bảo mật tuyệt đối thông tin cá nhân và tuân thủ các quy định pháp luật hiện hành về an toàn thông tin mạng.</p>
<h3>2. Nội dung chi tiết</h3>
<p>Dựa trên yêu cầu về "%s", chúng tôi quy định rõ ràng về trách nhiệm và quyền hạn của các bên liên quan.</p>
%s
<p>Chúng tôi có quyền thay đổi nội dung chính sách để phù hợp với tình hình thực tế và sẽ thông báo trước cho người dùng.</p>`, topic, filler)
}

func genericContentHTML(topic, filler string) string {
	return fmt.Sprintf(`<p>Chào mừng bạn đến với nội dung về <strong>%s</strong>. Đây là chủ đề mang tính thực tiễn cao và đang được cộng đồng rất quan tâm.</p>

<h3>Nội dung chính</h3>
<p>Vấn đề này mang lại nhiều giá trị thiết thực. Chúng tôi tập trung vào chất lượng, trải nghiệm người dùng và sự bền vững lâu dài.</p>
%s

<h3>Kết luận</h3>
<p>Hy vọng thông tin này hữu ích với bạn. Chúng tôi luôn sẵn sàng lắng nghe và hỗ trợ giải đáp mọi thắc mắc liên quan đến chủ đề này.</p>`, topic, filler)
}

// ==================== 工具函数 ====================

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 标题转 url slug：小写、非字母数字折叠为连字符
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
