package extractor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/utils"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiClient struct {
	client *genai.Client
	model  string
	cfg    Config
}

func NewGemini(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model, cfg: cfg}, nil
}

func (c *GeminiClient) Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	today := ""
	if c.cfg.Now != nil {
		today = utils.DateOf(c.cfg.Now()).String()
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(c.cfg.ShopName, g, today), genai.RoleUser),
		Tools:             geminiTools(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return domain.Extraction{}, apperr.Extraction(err)
	}

	for _, call := range resp.FunctionCalls() {
		if call != nil && call.Name == CreateRentalTool {
			return intentExtraction(intentFromArgs(call.Args)), nil
		}
	}
	return textExtraction(resp.Text()), nil
}
