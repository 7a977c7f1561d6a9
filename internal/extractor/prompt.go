package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"bomne-rental-backend/internal/domain"
)

// DefaultShopName appears in the assistant brief.
const DefaultShopName = "BOMNE"

type promptDevice struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

type promptRental struct {
	Customer   string `json:"customer"`
	Camera     string `json:"camera"`
	Lens       string `json:"lens"`
	ReturnDate string `json:"return_date"`
}

// SystemPrompt renders the assistant brief with the shop's current inventory
// and open rentals embedded as JSON.
func SystemPrompt(shopName string, g *domain.Grounding, today string) string {
	if g == nil {
		g = &domain.Grounding{}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Bạn là trợ lý quản lý cửa hàng cho thuê máy ảnh %s.\n", shopName)
	if today != "" {
		fmt.Fprintf(&b, "Hôm nay là ngày %s.\n", today)
	}
	b.WriteString("Dưới đây là dữ liệu hiện tại của cửa hàng:\n")
	fmt.Fprintf(&b, "- Máy ảnh: %s\n", mustJSON(devicesForPrompt(g.Cameras)))
	fmt.Fprintf(&b, "- Ống kính: %s\n", mustJSON(devicesForPrompt(g.Lenses)))
	fmt.Fprintf(&b, "- Các đơn đang thuê: %s\n", mustJSON(rentalsForPrompt(g.ActiveRentals)))
	b.WriteString("\nNhiệm vụ của bạn:\n")
	b.WriteString("1. Trả lời các câu hỏi về tình trạng thiết bị (còn trống hay đang cho thuê).\n")
	fmt.Fprintf(&b, "2. Giúp người dùng tạo đơn thuê mới bằng cách gọi hàm %s. ", CreateRentalTool)
	b.WriteString("Nếu người dùng yêu cầu thuê, hãy hỏi đủ thông tin (tên, sđt, thiết bị, ngày thuê) rồi gọi hàm.\n")
	b.WriteString("Trả lời ngắn gọn, thân thiện bằng tiếng Việt.")
	return b.String()
}

func devicesForPrompt(devices []domain.Device) []promptDevice {
	out := make([]promptDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, promptDevice{ID: d.ID, Name: d.Name, Brand: d.Brand})
	}
	return out
}

func rentalsForPrompt(rentals []domain.Rental) []promptRental {
	out := make([]promptRental, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, promptRental{Customer: r.CustomerName, Camera: r.CameraName, Lens: r.LensName, ReturnDate: r.ReturnDate})
	}
	return out
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
