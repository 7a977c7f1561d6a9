package extractor

import (
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// CreateRentalTool is the one function the model may call.
const CreateRentalTool = "createRental"

const createRentalDescription = "Tạo một đơn thuê thiết bị mới"

type toolParam struct {
	Name        string
	Description string
}

var createRentalParams = []toolParam{
	{"customer_name", "Tên khách hàng"},
	{"phone", "Số điện thoại khách hàng"},
	{"camera_name", "Tên máy ảnh muốn thuê (nếu có)"},
	{"lens_name", "Tên ống kính muốn thuê (nếu có)"},
	{"rental_date", "Ngày bắt đầu thuê (YYYY-MM-DD)"},
	{"return_date", "Ngày trả (YYYY-MM-DD)"},
	{"duration", "Thời gian thuê (VD: 2 ngày)"},
}

var createRentalRequired = []string{"customer_name", "rental_date"}

func geminiTools() []*genai.Tool {
	props := make(map[string]*genai.Schema, len(createRentalParams))
	for _, p := range createRentalParams {
		props[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
	}
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        CreateRentalTool,
			Description: createRentalDescription,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   createRentalRequired,
			},
		}},
	}}
}

func openAITools() []openai.Tool {
	props := make(map[string]interface{}, len(createRentalParams))
	for _, p := range createRentalParams {
		props[p.Name] = map[string]interface{}{
			"type":        "string",
			"description": p.Description,
		}
	}
	return []openai.Tool{{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        CreateRentalTool,
			Description: createRentalDescription,
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": props,
				"required":   createRentalRequired,
			},
		},
	}}
}
