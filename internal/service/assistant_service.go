package service

import (
	"fmt"
	"strings"
)

// answerTemplate pairs a keyword group with its canned reply. Groups are
// tested in order; the first group with any keyword appearing in the
// lower-cased question wins.
type answerTemplate struct {
	keywords []string
	reply    string
}

var answerTemplates = []answerTemplate{
	{
		keywords: []string{"giá"},
		reply:    "Giá bán lẻ tham khảo của **%s** dao động tùy theo đại lý và chương trình khuyến mãi hiện tại.",
	},
	{
		keywords: []string{"hạn sử dụng", "hsd", "date"},
		reply:    "Hạn sử dụng của **%s** được in rõ dưới đáy lon và đã được lưu trữ bất biến trên sổ cái xác thực để đảm bảo an toàn.",
	},
	{
		keywords: []string{"bảo quản"},
		reply:    "Bạn nên bảo quản **%s** ở nơi khô ráo, thoáng mát, tránh ánh nắng trực tiếp. Sau khi mở nắp nên dùng hết trong ngày.",
	},
	{
		keywords: []string{"thành phần", "chất lượng"},
		reply:    "**%s** được làm từ 100%% sữa tươi nguyên chất và các nguyên liệu tự nhiên, đạt chuẩn ISO quốc tế.",
	},
	{
		keywords: []string{"chính hãng", "thật giả"},
		reply:    "Bạn có thể hoàn toàn yên tâm. Đây là sản phẩm **%s** CHÍNH HÃNG đã được xác thực qua hệ thống truy xuất nguồn gốc của chúng tôi.",
	},
}

const fallbackReply = "Cảm ơn bạn đã quan tâm đến **%s**. Nếu cần thêm thông tin chi tiết, vui lòng liên hệ hotline 1900 1500."

// defaultProductName stands in when the caller did not supply a product.
const defaultProductName = "Sản phẩm"

// AssistantService answers consumer questions about a product. Deterministic
// and stateless: a fixed, ordered substring table, nothing more.
type AssistantService struct{}

// NewAssistantService constructs an AssistantService.
func NewAssistantService() *AssistantService {
	return &AssistantService{}
}

// Answer maps a free-text question to a canned reply with the product name
// interpolated, falling back to a generic reply when no keyword matches.
func (s *AssistantService) Answer(productName, question string) string {
	name := productName
	if name == "" {
		name = defaultProductName
	}
	q := strings.ToLower(question)

	for _, t := range answerTemplates {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return fmt.Sprintf(t.reply, name)
			}
		}
	}
	return fmt.Sprintf(fallbackReply, name)
}
